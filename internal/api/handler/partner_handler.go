package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swiftship/courier-portal/internal/core/ports"
)

// PartnerHandler exposes partner applications to the back office.
type PartnerHandler struct {
	service ports.PartnerService
}

func NewPartnerHandler(service ports.PartnerService) *PartnerHandler {
	return &PartnerHandler{service: service}
}

type partnerResponse struct {
	Name        string    `json:"name"`
	PartnerType string    `json:"partner_type"`
	TypeLabel   string    `json:"type_label"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	City        string    `json:"city"`
	Experience  string    `json:"experience,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type listPartnersResponse struct {
	Data       []partnerResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// List handles GET /v1/partners.
//
// @Summary      List partner applications
// @Tags         partners
// @Produce      json
// @Security     BearerAuth
// @Param        type    query     string  false  "Filter by partner type (AGENT, BROKER, DRIVER)"
// @Param        city    query     string  false  "Filter by city"
// @Param        search  query     string  false  "Partial match on name, email or city"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listPartnersResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/partners [get]
func (h *PartnerHandler) List(c echo.Context) error {
	if _, err := ctxRole(c); err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListPartners(c.Request().Context(), ports.ListPartnersInput{
		PartnerType: c.QueryParam("type"),
		City:        c.QueryParam("city"),
		Search:      c.QueryParam("search"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	items := make([]partnerResponse, len(result.Items))
	for i, p := range result.Items {
		items[i] = partnerResponse{
			Name:        p.Name,
			PartnerType: p.PartnerType,
			TypeLabel:   p.TypeLabel,
			Phone:       p.Phone,
			Email:       p.Email,
			City:        p.City,
			Experience:  p.Experience,
			CreatedAt:   p.CreatedAt.UTC(),
		}
	}

	return c.JSON(http.StatusOK, listPartnersResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
