// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Catalogue: listing defaults and sample sizes.
  - Locking: per-entity lock keys and retry budgets.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "funtush-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Catalogue

const (
	// TopRatedLimit is the size of the top-rated listing.
	TopRatedLimit = 10

	// RandomSampleSize is the number of movies returned by the random listing.
	RandomSampleSize = 8

	// MaxUploadBytes bounds multipart uploads.
	MaxUploadBytes = 20 << 20
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "funtush.app"

	// HeaderXRequestID carries the correlation id in and out of the API.
	HeaderXRequestID = "X-Request-ID"
)

// # JSON Field Identifiers

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Locking

const (
	// LockPrefixMovie scopes per-movie read-modify-write sections.
	LockPrefixMovie = "lock:movie:"

	// LockPrefixUser scopes per-user read-modify-write sections.
	LockPrefixUser = "lock:user:"

	// LockTTL bounds how long a crashed holder can block an entity.
	LockTTL = 10 * time.Second

	// LockWait is how long a request waits to acquire an entity lock.
	LockWait = 5 * time.Second

	// MaxWriteAttempts bounds optimistic retries after a version conflict.
	MaxWriteAttempts = 3
)

// # Database Schemas

const (
	SchemaCatalog = "catalog"
	SchemaUsers   = "users"
)
