package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/swiftship/courier-portal/internal/core/domain"
	"github.com/swiftship/courier-portal/internal/core/ports"
)

type stubConsignmentService struct {
	bookFn func(ctx context.Context, in ports.BookConsignmentInput) (*ports.BookConsignmentResult, error)
	getFn  func(ctx context.Context, number string) (*ports.ConsignmentDetail, error)
	listFn func(ctx context.Context, in ports.ListConsignmentsInput) (*ports.ListConsignmentsResult, error)
}

func (s *stubConsignmentService) BookConsignment(ctx context.Context, in ports.BookConsignmentInput) (*ports.BookConsignmentResult, error) {
	return s.bookFn(ctx, in)
}

func (s *stubConsignmentService) GetConsignment(ctx context.Context, number string) (*ports.ConsignmentDetail, error) {
	return s.getFn(ctx, number)
}

func (s *stubConsignmentService) ListConsignments(ctx context.Context, in ports.ListConsignmentsInput) (*ports.ListConsignmentsResult, error) {
	return s.listFn(ctx, in)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("role", "operator")
	return c
}

func TestConsignmentHandler_Book_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubConsignmentService{
		bookFn: func(ctx context.Context, in ports.BookConsignmentInput) (*ports.BookConsignmentResult, error) {
			if in.Origin != "Chennai" || in.Destination != "Mumbai" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.BookConsignmentResult{
				ConsignmentNumber: "CN-1",
				Status:            string(domain.StatusBooked),
				CreatedAt:         time.Now().UTC(),
				EstimatedDelivery: in.EstimatedDelivery,
			}, nil
		},
	}
	handler := NewConsignmentHandler(stub)

	body := strings.NewReader(`{"origin":"Chennai","destination":"Mumbai","estimated_delivery":"2026-09-01"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/consignments", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.Book(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["consignment_number"] != "CN-1" {
		t.Errorf("consignment_number: got %v", resp["consignment_number"])
	}
	if resp["status"] != "BOOKED" {
		t.Errorf("status: got %v", resp["status"])
	}
	links, ok := resp["_links"].(map[string]any)
	if !ok || links["self"] != "/v1/consignments/CN-1" {
		t.Errorf("unexpected links: %v", resp["_links"])
	}
}

func TestConsignmentHandler_Book_RejectsBadDateFormat(t *testing.T) {
	e := newTestEcho()
	stub := &stubConsignmentService{
		bookFn: func(ctx context.Context, in ports.BookConsignmentInput) (*ports.BookConsignmentResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewConsignmentHandler(stub)

	body := strings.NewReader(`{"origin":"Chennai","destination":"Mumbai","estimated_delivery":"01/09/2026"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/consignments", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	err := handler.Book(c)
	if err == nil {
		t.Fatal("expected validation error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestConsignmentHandler_Book_MissingRole(t *testing.T) {
	e := newTestEcho()
	handler := NewConsignmentHandler(&stubConsignmentService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/consignments", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Book(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth claims, got %v", err)
	}
}

func TestConsignmentHandler_Get_ReturnsDetail(t *testing.T) {
	e := newTestEcho()
	now := time.Now().UTC()
	stub := &stubConsignmentService{
		getFn: func(ctx context.Context, number string) (*ports.ConsignmentDetail, error) {
			if number != "CN-1" {
				t.Fatalf("unexpected number: %s", number)
			}
			return &ports.ConsignmentDetail{
				ConsignmentNumber: "CN-1",
				Origin:            "Chennai",
				Destination:       "Mumbai",
				CurrentLocation:   "Nagpur",
				Status:            string(domain.StatusInTransit),
				EstimatedDelivery: now.AddDate(0, 0, 2),
				CreatedAt:         now,
				UpdatedAt:         now,
				History: []ports.HistoryItem{
					{Status: "BOOKED", Location: "Chennai", Timestamp: now, Notes: "booking"},
					{Status: "IN_TRANSIT", Location: "Nagpur", Timestamp: now},
				},
			}, nil
		},
	}
	handler := NewConsignmentHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/consignments/CN-1", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("consignment_number")
	c.SetParamValues("CN-1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	history, ok := resp["history"].([]any)
	if !ok || len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %v", resp["history"])
	}
}

func TestConsignmentHandler_List_PassesFilters(t *testing.T) {
	e := newTestEcho()
	stub := &stubConsignmentService{
		listFn: func(ctx context.Context, in ports.ListConsignmentsInput) (*ports.ListConsignmentsResult, error) {
			if in.Status != "IN_TRANSIT" || in.Page != 2 || in.Limit != 5 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.ListConsignmentsResult{
				Items: []ports.ConsignmentSummary{{ConsignmentNumber: "CN-1"}},
				Total: 6, Page: 2, Limit: 5, TotalPages: 2,
			}, nil
		},
	}
	handler := NewConsignmentHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/consignments?status=IN_TRANSIT&page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	pagination, ok := resp["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("expected pagination block, got %v", resp)
	}
	if pagination["total_pages"] != float64(2) {
		t.Errorf("total_pages: got %v", pagination["total_pages"])
	}
}
