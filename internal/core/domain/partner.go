package domain

import (
	"errors"
	"time"
)

// PartnerType classifies how a partner works with the courier network.
type PartnerType string

const (
	PartnerAgent  PartnerType = "AGENT"
	PartnerBroker PartnerType = "BROKER"
	PartnerDriver PartnerType = "DRIVER"
)

var partnerTypeLabels = map[PartnerType]string{
	PartnerAgent:  "Agent",
	PartnerBroker: "Broker",
	PartnerDriver: "Truck Driver",
}

var ErrPartnerExists = errors.New("partner already registered")
var ErrPartnerNotFound = errors.New("partner not found")
var ErrInvalidPartnerType = errors.New("invalid partner type")

// Display returns the human-readable label for the partner type.
func (t PartnerType) Display() string {
	if label, ok := partnerTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// IsValid reports whether t is a known partner type.
func (t PartnerType) IsValid() bool {
	_, ok := partnerTypeLabels[t]
	return ok
}

// Partner is an applicant registered through the join-with-us page.
// Email is unique across partners.
type Partner struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	Name        string      `json:"name" bson:"name"`
	PartnerType PartnerType `json:"partner_type" bson:"partner_type"`
	Phone       string      `json:"phone" bson:"phone"`
	Email       string      `json:"email" bson:"email"`
	City        string      `json:"city" bson:"city"`
	Experience  string      `json:"experience,omitempty" bson:"experience,omitempty"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
}
