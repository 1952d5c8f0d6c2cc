package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/minjae-ko/tasklist-api/internal/middleware"
)

func TestSetAndGetUserID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	// Before setting — should return zero
	if got := middleware.GetUserID(req); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}

	// After setting
	ctx := middleware.SetUserID(req.Context(), 42)
	req = req.WithContext(ctx)

	if got := middleware.GetUserID(req); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}

func TestSetAndGetRequestID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	if got := middleware.GetRequestID(req); got != "" {
		t.Errorf("expected empty, got %q", got)
	}

	ctx := middleware.SetRequestID(req.Context(), "req-1")
	req = req.WithContext(ctx)

	if got := middleware.GetRequestID(req); got != "req-1" {
		t.Errorf("expected req-1, got %q", got)
	}
}
