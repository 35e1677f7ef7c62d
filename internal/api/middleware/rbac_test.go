package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRBAC(t *testing.T) {
	cases := []struct {
		name     string
		role     interface{}
		allowed  []string
		wantCode int
	}{
		{"admin on admin route", "admin", []string{"admin"}, http.StatusOK},
		{"operator on shared route", "operator", []string{"admin", "operator"}, http.StatusOK},
		{"operator on admin route", "operator", []string{"admin"}, http.StatusForbidden},
		{"unknown role", "guest", []string{"admin", "operator"}, http.StatusForbidden},
		{"role missing from context", nil, []string{"admin"}, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/partners", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}

			reached := false
			handler := RBAC(tc.allowed...)(func(c echo.Context) error {
				reached = true
				return c.NoContent(http.StatusOK)
			})

			if err := handler(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("status: want %d, got %d", tc.wantCode, rec.Code)
			}
			if tc.wantCode == http.StatusOK && !reached {
				t.Fatal("next handler not called")
			}
			if tc.wantCode == http.StatusForbidden && reached {
				t.Fatal("next handler must not run")
			}
		})
	}
}
