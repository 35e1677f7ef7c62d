package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/swiftship/courier-portal/internal/core/domain"
	"github.com/swiftship/courier-portal/internal/core/ports"
)

// Handler serves the website pages and the public form endpoints.
type Handler struct {
	tracking ports.TrackingService
	partners ports.PartnerService
	contacts ports.ContactRepository
	log      zerolog.Logger
}

func NewHandler(
	tracking ports.TrackingService,
	partners ports.PartnerService,
	contacts ports.ContactRepository,
	log zerolog.Logger,
) *Handler {
	return &Handler{tracking: tracking, partners: partners, contacts: contacts, log: log}
}

type pageData struct {
	Title string
}

// --- Pages ---

func (h *Handler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", pageData{Title: "Home"})
}

func (h *Handler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about", pageData{Title: "About Us"})
}

func (h *Handler) Service(c echo.Context) error {
	return c.Render(http.StatusOK, "service", pageData{Title: "Our Services"})
}

func (h *Handler) Contact(c echo.Context) error {
	return c.Render(http.StatusOK, "contact", pageData{Title: "Contact"})
}

func (h *Handler) JoinWithUs(c echo.Context) error {
	return c.Render(http.StatusOK, "join_with_us", pageData{Title: "Join With Us"})
}

// --- Tracking lookup ---

// trackingEnvelope is the wire contract the page script depends on. A lookup
// miss is reported in-band with status "error" and HTTP 200; the script
// branches on the status field, never on the HTTP code.
type trackingEnvelope struct {
	Status      string                `json:"status"`
	Consignment *ports.TrackingResult `json:"consignment,omitempty"`
	Message     string                `json:"message,omitempty"`
}

// TrackConsignment handles GET /track-consignment/.
// Without a consignment_number query parameter it renders the tracking page;
// with one it answers the asynchronous lookup with JSON.
func (h *Handler) TrackConsignment(c echo.Context) error {
	if !c.QueryParams().Has("consignment_number") {
		return c.Render(http.StatusOK, "track_consignment", pageData{Title: "Know Your Consignment"})
	}

	number := c.QueryParam("consignment_number")
	result, err := h.tracking.Track(c.Request().Context(), number)
	if err != nil {
		if errors.Is(err, domain.ErrConsignmentNotFound) {
			return c.JSON(http.StatusOK, trackingEnvelope{
				Status:  "error",
				Message: "Consignment not found.",
			})
		}
		h.log.Error().Err(err).Str("consignment", number).Msg("tracking lookup failed")
		return c.JSON(http.StatusOK, trackingEnvelope{
			Status:  "error",
			Message: "Tracking is temporarily unavailable. Please try again.",
		})
	}

	return c.JSON(http.StatusOK, trackingEnvelope{
		Status:      "success",
		Consignment: result,
	})
}

// --- Form submissions ---

type partnerApplicationRequest struct {
	Name        string `json:"name"         form:"name"         validate:"required"`
	PartnerType string `json:"partner_type" form:"partner_type" validate:"required,oneof=AGENT BROKER DRIVER"`
	Phone       string `json:"phone"        form:"phone"        validate:"required"`
	Email       string `json:"email"        form:"email"        validate:"required,email"`
	City        string `json:"city"         form:"city"         validate:"required"`
	Experience  string `json:"experience"   form:"experience"`
}

type submissionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SubmitPartner handles POST /join-with-us/.
func (h *Handler) SubmitPartner(c echo.Context) error {
	var req partnerApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	_, err := h.partners.RegisterPartner(c.Request().Context(), ports.RegisterPartnerInput{
		Name:        req.Name,
		PartnerType: req.PartnerType,
		Phone:       req.Phone,
		Email:       req.Email,
		City:        req.City,
		Experience:  req.Experience,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, submissionResponse{
		Status:  "success",
		Message: "Application received. Our team will contact you shortly.",
	})
}

type contactMessageRequest struct {
	Name    string `json:"name"    form:"name"    validate:"required"`
	Email   string `json:"email"   form:"email"   validate:"required,email"`
	Subject string `json:"subject" form:"subject" validate:"required"`
	Message string `json:"message" form:"message" validate:"required"`
}

// SubmitContact handles POST /contact/.
func (h *Handler) SubmitContact(c echo.Context) error {
	var req contactMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	msg := &domain.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.contacts.Create(c.Request().Context(), msg); err != nil {
		h.log.Error().Err(err).Msg("failed to store contact message")
		return err
	}

	return c.JSON(http.StatusCreated, submissionResponse{
		Status:  "success",
		Message: "Thanks for reaching out. We will get back to you.",
	})
}
