package logging

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func TestLoggingMiddlewareSkipsProbeEndpoints(t *testing.T) {
	var logOutput strings.Builder
	logger := slog.New(slog.NewTextHandler(&logOutput, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	mw := LoggingMiddleware(logger)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	handler := mw(nextHandler)

	for _, path := range []string{"/health", "/metrics"} {
		t.Run(path+" is not logged", func(t *testing.T) {
			logOutput.Reset()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if status := rr.Code; status != http.StatusOK {
				t.Errorf("expected status 200, got %d", status)
			}
			if logs := logOutput.String(); logs != "" {
				t.Errorf("expected no logs for %s, got: %s", path, logs)
			}
		})
	}

	t.Run("regular paths are logged", func(t *testing.T) {
		logOutput.Reset()
		req := httptest.NewRequest(http.MethodGet, "/analytics", nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "test-123"))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		logs := logOutput.String()
		if logs == "" {
			t.Fatal("expected log output for /analytics, got none")
		}
		if !strings.Contains(logs, "request_id=test-123") {
			t.Errorf("expected request_id in logs, got: %s", logs)
		}
		if !strings.Contains(logs, "path=/analytics") {
			t.Errorf("expected path in logs, got: %s", logs)
		}
		if !strings.Contains(logs, "status_code=200") {
			t.Errorf("expected status_code in logs, got: %s", logs)
		}
	})
}

func TestLoggingMiddlewareCapturesStatusAndBytes(t *testing.T) {
	var logOutput strings.Builder
	logger := slog.New(slog.NewTextHandler(&logOutput, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/patients/unknown", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	logs := logOutput.String()
	if !strings.Contains(logs, "status_code=404") {
		t.Errorf("expected status_code=404 in logs, got: %s", logs)
	}
	if !strings.Contains(logs, "bytes_written=7") {
		t.Errorf("expected bytes_written=7 in logs, got: %s", logs)
	}
}
