// Copyright (c) 2026 Funtush. All rights reserved.

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/parthibdhar/Funtush-Server/internal/api"
	"github.com/parthibdhar/Funtush-Server/internal/catalog/category"
	"github.com/parthibdhar/Funtush-Server/internal/catalog/movie"
	"github.com/parthibdhar/Funtush-Server/internal/platform/blob"
	"github.com/parthibdhar/Funtush-Server/internal/platform/config"
	"github.com/parthibdhar/Funtush-Server/internal/platform/constants"
	"github.com/parthibdhar/Funtush-Server/internal/platform/lock"
	"github.com/parthibdhar/Funtush-Server/internal/platform/metrics"
	"github.com/parthibdhar/Funtush-Server/internal/platform/sec"
	"github.com/parthibdhar/Funtush-Server/internal/upload"
	"github.com/parthibdhar/Funtush-Server/internal/users/account"
	"github.com/parthibdhar/Funtush-Server/internal/users/auth"
)

func init() {
	sec.PasswordCost = bcrypt.MinCost
}

type apiResponse struct {
	Data json.RawMessage `json:"data"`
	Code string          `json:"code"`
}

func newApp(t *testing.T, checks []api.HealthCheck) (http.Handler, *auth.Service) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := metrics.New()
	locker := lock.NewMemoryLocker(ctx)

	tokens, err := sec.NewTokenService("test-secret", constants.AuthIssuer, time.Hour)
	require.NoError(t, err)

	users := auth.NewMemoryRepository()
	movieService := movie.NewService(movie.NewMemoryRepository(), locker, registry, movie.RatingBounds{Min: 1, Max: 5}, logger)
	authService := auth.NewService(users, tokens, registry, logger)
	accountService := account.NewService(users, movieService, authService, locker, registry, logger)

	liveness, readiness := api.NewHealthHandlers(checks, logger)
	router := api.NewRouter(ctx, &config.Config{Environment: "test"}, logger, registry,
		api.Security{Verifier: tokens, Loader: authService},
		api.Handlers{
			Liveness:  liveness,
			Readiness: readiness,
			Movie:     movie.NewHandler(movieService),
			Category:  category.NewHandler(category.NewService(category.NewMemoryRepository(), registry, logger)),
			Auth:      auth.NewHandler(authService),
			Account:   account.NewHandler(accountService),
			Upload:    upload.NewHandler(upload.NewService(blob.Disabled{}, registry, logger)),
		})

	return router, authService
}

func call(t *testing.T, handler http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var response apiResponse
	if strings.HasPrefix(recorder.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	}
	return recorder, response
}

func login(t *testing.T, handler http.Handler, path, body string) string {
	t.Helper()

	recorder, response := call(t, handler, http.MethodPost, path, "", body)
	require.Less(t, recorder.Code, 300, recorder.Body.String())

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(response.Data, &session))
	return session.Token
}

/*
TestRouter_EndToEnd walks a user journey across every mounted domain.
*/
func TestRouter_EndToEnd(t *testing.T) {
	app, authService := newApp(t, nil)
	require.NoError(t, authService.EnsureAdmin(context.Background(), "root@example.com", "rootpass"))

	adminToken := login(t, app, "/api/v1/users/login", `{"email":"root@example.com","password":"rootpass"}`)
	userToken := login(t, app, "/api/v1/users/register", `{"fullName":"Ada","email":"ada@example.com","password":"secret1"}`)

	// ── 1. Seed the catalogue ──
	recorder, _ := call(t, app, http.MethodPost, "/api/v1/movies/import", userToken, "")
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder, _ = call(t, app, http.MethodPost, "/api/v1/movies/import", adminToken, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder, _ = call(t, app, http.MethodPost, "/api/v1/categories/import", adminToken, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	// ── 2. Browse ──
	recorder, response := call(t, app, http.MethodGet, "/api/v1/movies/rated/top", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var top []movie.Movie
	require.NoError(t, json.Unmarshal(response.Data, &top))
	require.NotEmpty(t, top)
	movieID := top[0].ID

	// ── 3. Review and like ──
	recorder, _ = call(t, app, http.MethodPost, "/api/v1/movies/"+movieID+"/reviews", userToken, `{"rating":5,"comment":"Great"}`)
	assert.Equal(t, http.StatusCreated, recorder.Code)

	recorder, response = call(t, app, http.MethodPost, "/api/v1/movies/"+movieID+"/reviews", userToken, `{"rating":4,"comment":"Again"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "ALREADY_REVIEWED", response.Code)

	recorder, _ = call(t, app, http.MethodPost, "/api/v1/users/favorites", userToken, `{"movieId":"`+movieID+`"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// ── 4. Upload is off without storage ──
	recorder, response = call(t, app, http.MethodPost, "/api/v1/upload", userToken, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", response.Code)

	// ── 5. Deleted accounts lose access ──
	recorder, _ = call(t, app, http.MethodDelete, "/api/v1/users", userToken, "")
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder, response = call(t, app, http.MethodGet, "/api/v1/users/favorites", userToken, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "UNAUTHORIZED", response.Code)
}

/*
TestRouter_TokenInvalid rejects forged bearer tokens.
*/
func TestRouter_TokenInvalid(t *testing.T) {
	app, _ := newApp(t, nil)

	recorder, response := call(t, app, http.MethodGet, "/api/v1/users/favorites", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "TOKEN_INVALID", response.Code)
}

/*
TestRouter_Probes covers liveness, readiness and the metrics endpoint.
*/
func TestRouter_Probes(t *testing.T) {
	tests := []struct {
		name   string
		probe  func(context.Context) error
		status int
	}{
		{"ready", func(context.Context) error { return nil }, http.StatusOK},
		{"degraded", func(context.Context) error { return errors.New("connection refused") }, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newApp(t, []api.HealthCheck{{Name: "store", Probe: tt.probe}})

			recorder, _ := call(t, app, http.MethodGet, "/ready", "", "")
			assert.Equal(t, tt.status, recorder.Code)

			recorder, _ = call(t, app, http.MethodGet, "/health", "", "")
			assert.Equal(t, http.StatusOK, recorder.Code)
		})
	}

	app, _ := newApp(t, nil)
	call(t, app, http.MethodGet, "/health", "", "")

	recorder, _ := call(t, app, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "funtush_http_requests_total")
}
