// Copyright (c) 2026 Funtush. All rights reserved.

package movie_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthibdhar/Funtush-Server/internal/catalog/movie"
	"github.com/parthibdhar/Funtush-Server/internal/platform/ctxutil"
	"github.com/parthibdhar/Funtush-Server/internal/platform/sec"
)

var (
	adminClaims = &sec.AuthClaims{UserID: "0190f000-0000-7000-8000-00000000aaaa", IsAdmin: true, FullName: "Admin"}
	userClaims  = &sec.AuthClaims{UserID: "0190f000-0000-7000-8000-00000000bbbb", FullName: "Ada", Image: "ada.png"}
)

type apiResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

func newAPI(t *testing.T) (http.Handler, fixture) {
	t.Helper()
	f := newFixture(t, movie.NewMemoryRepository())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			switch request.Header.Get("X-Test-Identity") {
			case "admin":
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), adminClaims))
			case "user":
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), userClaims))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Mount("/movies", movie.NewHandler(f.service).Routes())

	return router, f
}

func call(t *testing.T, handler http.Handler, method, path, identity, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if identity != "" {
		request.Header.Set("X-Test-Identity", identity)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var response apiResponse
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	}
	return recorder, response
}

/*
TestHTTP_ImportAccess restricts imports to admins.
*/
func TestHTTP_ImportAccess(t *testing.T) {
	api, _ := newAPI(t)

	tests := []struct {
		name     string
		identity string
		status   int
		code     string
	}{
		{"anonymous", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"regular user", "user", http.StatusForbidden, "FORBIDDEN"},
		{"admin", "admin", http.StatusCreated, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, response := call(t, api, http.MethodPost, "/movies/import", tt.identity, "")
			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.code, response.Code)
		})
	}
}

/*
TestHTTP_ListMovies renders the listing payload and the empty case.
*/
func TestHTTP_ListMovies(t *testing.T) {
	api, _ := newAPI(t)

	recorder, response := call(t, api, http.MethodGet, "/movies", "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "NOT_FOUND", response.Code)

	recorder, _ = call(t, api, http.MethodPost, "/movies/import", "admin",
		`[{"name":"One","time":"95","year":2020},{"name":"Two","rate":"4.5"},{"name":"Three"}]`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder, response = call(t, api, http.MethodGet, "/movies?pageNumber=2", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var result movie.ListResult
	require.NoError(t, json.Unmarshal(response.Data, &result))
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 3, result.TotalMovies)
	assert.Len(t, result.Movies, 1)

	recorder, response = call(t, api, http.MethodGet, "/movies?year=soon", "", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", response.Code)
}

/*
TestHTTP_ReviewFlow posts a review with a string rating and rejects a repeat.
*/
func TestHTTP_ReviewFlow(t *testing.T) {
	api, _ := newAPI(t)

	recorder, response := call(t, api, http.MethodPost, "/movies", "admin", `{"name":"Reviewed","category":"Drama"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created movie.Movie
	require.NoError(t, json.Unmarshal(response.Data, &created))
	assert.Equal(t, adminClaims.UserID, created.CreatedBy)

	path := "/movies/" + created.ID + "/reviews"

	recorder, _ = call(t, api, http.MethodPost, path, "", `{"rating":4}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder, response = call(t, api, http.MethodPost, path, "user", `{"rating":"4","comment":"Solid"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var reviewed movie.Movie
	require.NoError(t, json.Unmarshal(response.Data, &reviewed))
	assert.Equal(t, 4.0, reviewed.Rate)
	assert.Equal(t, "Ada", reviewed.Reviews[0].UserName)
	assert.Equal(t, "ada.png", reviewed.Reviews[0].UserImage)

	recorder, response = call(t, api, http.MethodPost, path, "user", `{"rating":5}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "ALREADY_REVIEWED", response.Code)
}

/*
TestHTTP_CreateMovie_Casts accepts the cast list as plain names and keeps its order.
*/
func TestHTTP_CreateMovie_Casts(t *testing.T) {
	api, _ := newAPI(t)

	recorder, response := call(t, api, http.MethodPost, "/movies", "admin",
		`{"name":"Heat","casts":["Al Pacino"," Robert De Niro ","Val Kilmer"]}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created movie.Movie
	require.NoError(t, json.Unmarshal(response.Data, &created))
	assert.Equal(t, []string{"Al Pacino", "Robert De Niro", "Val Kilmer"}, created.Casts)

	recorder, response = call(t, api, http.MethodPut, "/movies/"+created.ID, "admin", `{"casts":["Ashley Judd"]}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated movie.Movie
	require.NoError(t, json.Unmarshal(response.Data, &updated))
	assert.Equal(t, []string{"Ashley Judd"}, updated.Casts)

	recorder, response = call(t, api, http.MethodPost, "/movies", "admin", `{"name":"Blank","casts":["  "]}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", response.Code)
}

/*
TestHTTP_UpdateMovie applies present fields only.
*/
func TestHTTP_UpdateMovie(t *testing.T) {
	api, _ := newAPI(t)

	_, response := call(t, api, http.MethodPost, "/movies", "admin", `{"name":"Draft","language":"English","year":2001}`)
	var created movie.Movie
	require.NoError(t, json.Unmarshal(response.Data, &created))

	recorder, response := call(t, api, http.MethodPut, "/movies/"+created.ID, "admin", `{"year":"2010","description":""}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated movie.Movie
	require.NoError(t, json.Unmarshal(response.Data, &updated))
	assert.Equal(t, 2010, updated.Year)
	assert.Equal(t, "English", updated.Language)
	assert.Equal(t, "Draft", updated.Name)

	recorder, response = call(t, api, http.MethodPut, "/movies/"+created.ID, "admin", `{"year":"twenty"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", response.Code)

	recorder, _ = call(t, api, http.MethodPut, "/movies/not-a-uuid", "admin", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHTTP_DeleteAll reports the removed count.
*/
func TestHTTP_DeleteAll(t *testing.T) {
	api, _ := newAPI(t)

	recorder, _ := call(t, api, http.MethodPost, "/movies/import", "admin", `[{"name":"A"},{"name":"B"}]`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder, response := call(t, api, http.MethodDelete, "/movies", "admin", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"deleted":2}`, string(response.Data))
}
