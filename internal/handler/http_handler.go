package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/pennsieve/customers-service/internal/container"
)

// NewHTTPHandler serves the customers listing to plain net/http callers, e.g. the
// local server. Any method and path is accepted.
func NewHTTPHandler(c container.DependencyContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		if requestID == "" {
			requestID = uuid.NewString()
		}
		logger.Debug("request parameters",
			slog.String("requestID", requestID),
			"method", r.Method,
			"path", r.URL.Path)

		status, body := listCustomers(r.Context(), c.CustomerStore())
		for name, value := range jsonHeaders {
			w.Header().Set(name, value)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}
