package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/CareVault-Health/records-service/internal/telemetry"
	"github.com/gorilla/mux"
)

// statusRecorder captures the response status for after-the-fact recording
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware records request counts, latencies and per-entity
// operation counters for every handled request
func MetricsMiddleware(metrics *telemetry.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}

			durationMs := float64(time.Since(start).Microseconds()) / 1000.0
			metrics.RecordHTTPRequest(r.Context(), r.Method, route, recorder.status, durationMs)

			// Mutations that succeeded also bump the per-entity counter
			if recorder.status < 300 && r.Method != http.MethodGet {
				operation := strings.ToLower(r.Method)
				switch {
				case strings.HasPrefix(route, "/api/patients"):
					metrics.RecordPatientOperation(r.Context(), operation)
				case strings.HasPrefix(route, "/api/appointments"):
					metrics.RecordAppointmentOperation(r.Context(), operation)
				case strings.HasPrefix(route, "/api/prescriptions"):
					metrics.RecordPrescriptionOperation(r.Context(), operation)
				}
			}
		})
	}
}
