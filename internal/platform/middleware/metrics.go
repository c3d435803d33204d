// Copyright (c) 2026 Funtush. All rights reserved.

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/parthibdhar/Funtush-Server/internal/platform/metrics"
)

// Metrics records request counts and latency labelled by chi route pattern.
// Unmatched routes share the "unmatched" label to keep cardinality bounded.
func Metrics(registry *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(recorder, request)

			route := "unmatched"
			if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
				if pattern := routeContext.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			registry.HTTPRequests.WithLabelValues(request.Method, route, strconv.Itoa(recorder.status)).Inc()
			registry.HTTPDuration.WithLabelValues(request.Method, route).Observe(time.Since(startTime).Seconds())
		})
	}
}
