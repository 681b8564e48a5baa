// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/passage/internal/platform/middleware"
	"github.com/taibuivan/passage/internal/platform/sec"
	"github.com/taibuivan/passage/internal/users/account"
)

// newAccountRouter mounts the profile endpoints behind a real session check
// and returns a cookie holding a valid session for user-1.
func newAccountRouter(t *testing.T, repo account.ProfileRepository) (http.Handler, *http.Cookie) {
	t.Helper()

	tokens, err := sec.NewTokenService("account-test-signing-secret", "passage", time.Hour)
	require.NoError(t, err)

	handler := account.NewHandler(newService(repo), middleware.RequireSession(tokens))
	router := chi.NewRouter()
	router.Route("/api/users", handler.RegisterRoutes)

	token, _, err := tokens.Issue("user-1")
	require.NoError(t, err)

	return router, &http.Cookie{Name: "token", Value: token}
}

func serve(router http.Handler, method, path, body string, cookie *http.Cookie) (*httptest.ResponseRecorder, map[string]any) {
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	decoded := map[string]any{}
	_ = json.Unmarshal(recorder.Body.Bytes(), &decoded)
	return recorder, decoded
}

func TestGetUser_HTTP(t *testing.T) {
	router, cookie := newAccountRouter(t, newMemProfileRepository(annUser))

	recorder, body := serve(router, http.MethodGet, "/api/users/getuser", "", cookie)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user-1", body["_id"])
	assert.Equal(t, "Ann", body["name"])
	assert.Equal(t, "ann@x.com", body["email"])
	assert.NotContains(t, body, "passwordHash")
	assert.NotContains(t, body, "token")

	anonymous, body := serve(router, http.MethodGet, "/api/users/getuser", "", nil)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)
	assert.Equal(t, "Not authorized, please login", body["message"])
}

func TestGetUser_DeletedAccount(t *testing.T) {
	router, cookie := newAccountRouter(t, newMemProfileRepository())

	recorder, body := serve(router, http.MethodGet, "/api/users/getuser", "", cookie)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "User not found", body["message"])
}

func TestUpdateUser_HTTP(t *testing.T) {
	repo := newMemProfileRepository(annUser)
	router, cookie := newAccountRouter(t, repo)

	recorder, body := serve(router, http.MethodPatch, "/api/users/updateuser", `{"bio":"hi","email":"evil@x.com"}`, cookie)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "hi", body["bio"])
	assert.Equal(t, "Ann", body["name"])
	assert.Equal(t, "ann@x.com", body["email"])
	assert.Equal(t, "hi", repo.users["user-1"].Bio)

	invalid, body := serve(router, http.MethodPatch, "/api/users/updateuser", `{"bio":`, cookie)
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])

	anonymous, _ := serve(router, http.MethodPatch, "/api/users/updateuser", `{"bio":"x"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)
	assert.Equal(t, "hi", repo.users["user-1"].Bio)
}
