package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "")
	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	c, rec := newJSONContext(http.MethodGet, "/health/ready", "")
	if err := NewHealthDependenciesHandler(map[string]Check{"mongodb": ok, "redis": ok}).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, rec = newJSONContext(http.MethodGet, "/health/ready", "")
	if err := NewHealthDependenciesHandler(map[string]Check{"mongodb": ok, "redis": down}).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "degraded" || resp.Dependencies["redis"].Error != "connection refused" || resp.Dependencies["mongodb"].Status != "ok" {
		t.Fatalf("unexpected readiness: %+v", resp)
	}
}
