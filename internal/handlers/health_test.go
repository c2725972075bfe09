package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	vsmocks "findmyfile/internal/vectorstore/mocks"
)

func TestHealthHandler_Healthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := vsmocks.NewMockFileIndex(ctrl)
	files.EXPECT().Count(gomock.Any()).Return(uint64(42), nil)

	handler := NewHealthHandler(files)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Status != "healthy" || resp.Checks["vector_store"] != "ok" {
		t.Errorf("response = %+v, want healthy vector_store=ok", resp)
	}
	if resp.Timestamp == "" {
		t.Error("Timestamp is empty")
	}
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := vsmocks.NewMockFileIndex(ctrl)
	files.EXPECT().Count(gomock.Any()).Return(uint64(0), errors.New("connection refused"))

	handler := NewHealthHandler(files)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Status != "unhealthy" || len(resp.Issues) != 1 {
		t.Errorf("response = %+v, want unhealthy with one issue", resp)
	}
}
