// Copyright (c) 2026 Funtush. All rights reserved.

package category_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthibdhar/Funtush-Server/internal/catalog/category"
	"github.com/parthibdhar/Funtush-Server/internal/platform/ctxutil"
	"github.com/parthibdhar/Funtush-Server/internal/platform/sec"
)

func newRouter(claims *sec.AuthClaims) http.Handler {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Mount("/categories", category.NewHandler(newService()).Routes())
	return router
}

/*
TestHTTP_Categories walks import, create and list as an admin.
*/
func TestHTTP_Categories(t *testing.T) {
	router := newRouter(&sec.AuthClaims{UserID: "admin", IsAdmin: true})

	send := func(method, path, body string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))
		return recorder
	}

	assert.Equal(t, http.StatusCreated, send(http.MethodPost, "/categories/import", "").Code)
	assert.Equal(t, http.StatusCreated, send(http.MethodPost, "/categories", `{"title":"Documentary"}`).Code)
	assert.Equal(t, http.StatusConflict, send(http.MethodPost, "/categories", `{"title":"Documentary"}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(http.MethodPost, "/categories", `{"title":""}`).Code)

	recorder := send(http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []category.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data)
}

/*
TestHTTP_CategoriesForbidden keeps writes admin only.
*/
func TestHTTP_CategoriesForbidden(t *testing.T) {
	router := newRouter(&sec.AuthClaims{UserID: "user"})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"title":"X"}`)))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/categories", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}
