// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package metrics owns the Prometheus collectors of the API.

A [Registry] is created once in main and injected into the HTTP middleware and
into the services that count domain events. Tests create their own registry so
collectors never clash on the global default.
*/
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "funtush"

// Registry bundles the collectors and the registry they are registered on.
type Registry struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	ReviewsCreated  prometheus.Counter
	FavoritesAdded  prometheus.Counter
	CatalogImports  *prometheus.CounterVec
	WriteConflicts  *prometheus.CounterVec
	UsersRegistered prometheus.Counter
	FilesUploaded   prometheus.Counter
}

// New creates and registers every collector.
func New() *Registry {
	registry := prometheus.NewRegistry()

	metrics := &Registry{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ReviewsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_created_total",
			Help:      "Reviews accepted by the review aggregator.",
		}),
		FavoritesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorites_added_total",
			Help:      "Movies added to a favourites list.",
		}),
		CatalogImports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_imports_total",
			Help:      "Bulk replace imports by entity and outcome.",
		}, []string{"entity", "outcome"}),
		WriteConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "write_conflicts_total",
			Help:      "Optimistic version conflicts by entity.",
		}, []string{"entity"}),
		UsersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "Accounts created through registration.",
		}),
		FilesUploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_uploaded_total",
			Help:      "Files stored in blob storage.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.HTTPRequests,
		metrics.HTTPDuration,
		metrics.ReviewsCreated,
		metrics.FavoritesAdded,
		metrics.CatalogImports,
		metrics.WriteConflicts,
		metrics.UsersRegistered,
		metrics.FilesUploaded,
	)

	return metrics
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
