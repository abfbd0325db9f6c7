package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storemgmt/store-management-api/internal/core/domain"
)

func runRBAC(t *testing.T, role string, allowed ...string) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	called := false
	mw := RBAC(allowed...)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return called, handler(c)
}

func TestRBAC_Allows(t *testing.T) {
	called, err := runRBAC(t, domain.RoleAdmin, domain.RoleAdmin, domain.RoleManager)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRBAC_Forbids(t *testing.T) {
	called, err := runRBAC(t, domain.RoleUser, domain.RoleAdmin, domain.RoleManager)
	if called {
		t.Fatalf("next handler must not be called")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRBAC_NoHierarchy(t *testing.T) {
	// ADMIN holds no implicit USER access: membership only.
	called, err := runRBAC(t, domain.RoleAdmin, domain.RoleUser)
	if called {
		t.Fatalf("next handler must not be called")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRBAC_MissingRole(t *testing.T) {
	called, err := runRBAC(t, "", domain.RoleUser)
	if called {
		t.Fatalf("next handler must not be called")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}
