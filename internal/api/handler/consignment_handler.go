package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swiftship/courier-portal/internal/core/ports"
)

const deliveryDateFormat = "2006-01-02"

// ConsignmentHandler handles back-office HTTP requests for consignments.
type ConsignmentHandler struct {
	service ports.ConsignmentService
}

func NewConsignmentHandler(service ports.ConsignmentService) *ConsignmentHandler {
	return &ConsignmentHandler{service: service}
}

// Book handles POST /v1/consignments.
//
// @Summary      Book a new consignment
// @Tags         consignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookConsignmentRequest  true  "Consignment details"
// @Success      201   {object}  bookConsignmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/consignments [post]
func (h *ConsignmentHandler) Book(c echo.Context) error {
	if _, err := ctxRole(c); err != nil {
		return err
	}

	var req bookConsignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	// Format guaranteed by the datetime validation tag.
	estimatedDelivery, _ := time.Parse(deliveryDateFormat, req.EstimatedDelivery)

	result, err := h.service.BookConsignment(c.Request().Context(), ports.BookConsignmentInput{
		Origin:            req.Origin,
		Destination:       req.Destination,
		CurrentLocation:   req.CurrentLocation,
		EstimatedDelivery: estimatedDelivery,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toBookResponse(result))
}

// Get handles GET /v1/consignments/:consignment_number.
//
// @Summary      Get a consignment by number
// @Tags         consignments
// @Produce      json
// @Security     BearerAuth
// @Param        consignment_number  path      string  true  "Consignment number"
// @Success      200                 {object}  consignmentDetailResponse
// @Failure      401                 {object}  errorResponse
// @Failure      404                 {object}  errorResponse
// @Router       /v1/consignments/{consignment_number} [get]
func (h *ConsignmentHandler) Get(c echo.Context) error {
	if _, err := ctxRole(c); err != nil {
		return err
	}

	detail, err := h.service.GetConsignment(c.Request().Context(), c.Param("consignment_number"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toDetailResponse(detail))
}

// List handles GET /v1/consignments.
//
// @Summary      List consignments
// @Tags         consignments
// @Produce      json
// @Security     BearerAuth
// @Param        status       query     string  false  "Filter by status"
// @Param        origin       query     string  false  "Filter by origin"
// @Param        destination  query     string  false  "Filter by destination"
// @Param        search       query     string  false  "Partial match on consignment number"
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Success      200          {object}  listConsignmentsResponse
// @Failure      401          {object}  errorResponse
// @Router       /v1/consignments [get]
func (h *ConsignmentHandler) List(c echo.Context) error {
	if _, err := ctxRole(c); err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListConsignments(c.Request().Context(), ports.ListConsignmentsInput{
		Status:      c.QueryParam("status"),
		Origin:      c.QueryParam("origin"),
		Destination: c.QueryParam("destination"),
		Search:      c.QueryParam("search"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(result))
}
