// Copyright (c) 2026 Funtush. All rights reserved.

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/ctxutil"
	"github.com/parthibdhar/Funtush-Server/internal/platform/metrics"
	"github.com/parthibdhar/Funtush-Server/internal/platform/middleware"
	"github.com/parthibdhar/Funtush-Server/internal/platform/sec"
)

type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token == "good" || token == "ghost" {
		return &sec.AuthClaims{UserID: token}, nil
	}
	return nil, sec.ErrInvalidToken
}

type stubLoader struct{ admin bool }

func (loader stubLoader) LoadIdentity(_ context.Context, userID string) (*sec.AuthClaims, error) {
	if userID == "ghost" {
		return nil, apperr.NotFound("User")
	}
	return &sec.AuthClaims{UserID: userID, IsAdmin: loader.admin}, nil
}

func newRouter(loader stubLoader) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(stubVerifier{}, loader))

	router.Get("/open", func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			writer.Write([]byte("anonymous"))
			return
		}
		writer.Write([]byte(claims.UserID))
	})
	router.With(middleware.RequireAuth).Get("/private", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})
	router.With(middleware.RequireAdmin).Get("/admin", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})
	return router
}

func serve(handler http.Handler, path, authorization string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body.Code
}

/*
TestAuthenticate covers anonymous, valid, forged and orphaned tokens.
*/
func TestAuthenticate(t *testing.T) {
	router := newRouter(stubLoader{})

	recorder := serve(router, "/open", "")
	assert.Equal(t, "anonymous", recorder.Body.String())

	recorder = serve(router, "/open", "Bearer good")
	assert.Equal(t, "good", recorder.Body.String())

	recorder = serve(router, "/open", "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, apperr.CodeTokenInvalid, errorCode(t, recorder))

	recorder = serve(router, "/open", "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, apperr.CodeUnauthorized, errorCode(t, recorder))

	recorder = serve(router, "/open", "Bearer ghost")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, apperr.CodeUnauthorized, errorCode(t, recorder))
}

/*
TestRequireAdmin uses the stored flag returned by the loader.
*/
func TestRequireAdmin(t *testing.T) {
	memberRouter := newRouter(stubLoader{admin: false})
	adminRouter := newRouter(stubLoader{admin: true})

	assert.Equal(t, http.StatusUnauthorized, serve(memberRouter, "/private", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(memberRouter, "/private", "Bearer good").Code)

	assert.Equal(t, http.StatusUnauthorized, serve(memberRouter, "/admin", "").Code)

	recorder := serve(memberRouter, "/admin", "Bearer good")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, apperr.CodeForbidden, errorCode(t, recorder))

	assert.Equal(t, http.StatusNoContent, serve(adminRouter, "/admin", "Bearer good").Code)
}

/*
TestRequestID echoes or mints the correlation header.
*/
func TestRequestID(t *testing.T) {
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(ctxutil.GetRequestID(request.Context())))
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "abc")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "abc", recorder.Body.String())
	assert.Equal(t, "abc", recorder.Header().Get("X-Request-ID"))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

/*
TestPanicRecovery converts a panic into a JSON 500.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

/*
TestRateLimiter rejects once the burst is spent.
*/
func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewRateLimiter(ctx, 0.001, 2)
	handler := limiter.Handler(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, recorder.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

/*
TestMetrics labels requests by route pattern.
*/
func TestMetrics(t *testing.T) {
	registry := metrics.New()
	router := chi.NewRouter()
	router.Use(middleware.Metrics(registry))
	router.Get("/movies/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/movies/42", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(registry.HTTPRequests.WithLabelValues("GET", "/movies/{id}", "200")))
}
