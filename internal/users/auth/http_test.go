// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/passage/internal/platform/middleware"
	"github.com/taibuivan/passage/internal/users/auth"
)

func newRouter(f *fixture) http.Handler {
	handler := auth.NewHandler(f.service, middleware.RequireSession(f.tokens))

	router := chi.NewRouter()
	router.Route("/api/users", handler.RegisterRoutes)
	return router
}

// call performs a request against handler and returns the recorder.
func call(handler http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "token" {
			return cookie
		}
	}
	t.Fatal("response did not set the session cookie")
	return nil
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestAccountScenario walks the register, change password and login sequence
exactly as the frontend drives it.
*/
func TestAccountScenario(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	registered := call(router, http.MethodPost, "/api/users/register", `{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, registered.Code)

	body := decodeBody(t, registered)
	for _, field := range []string{"_id", "name", "email", "photo", "phone", "bio", "token"} {
		assert.Contains(t, body, field)
	}
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "passwordHash")

	cookie := sessionCookie(t, registered)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	assert.Equal(t, body["token"], cookie.Value)

	wrongOld := call(router, http.MethodPatch, "/api/users/changepassword", `{"oldPassword":"nope12","password":"secret2"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, wrongOld.Code)
	assert.Equal(t, "Old password is incorrect", decodeBody(t, wrongOld)["message"])

	changed := call(router, http.MethodPatch, "/api/users/changepassword", `{"oldPassword":"secret1","password":"secret2"}`, cookie)
	assert.Equal(t, http.StatusOK, changed.Code)

	oldLogin := call(router, http.MethodPost, "/api/users/login", `{"email":"ann@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, oldLogin.Code)
	assert.Equal(t, "Invalid Email or Password", decodeBody(t, oldLogin)["message"])
	assert.Empty(t, oldLogin.Result().Cookies(), "a failed login must not set a session")

	newLogin := call(router, http.MethodPost, "/api/users/login", `{"email":"ann@x.com","password":"secret2"}`)
	assert.Equal(t, http.StatusOK, newLogin.Code)
	assert.Equal(t, body["_id"], decodeBody(t, newLogin)["_id"])
}

func TestChangePassword_RequiresSession(t *testing.T) {
	router := newRouter(newFixture(t))

	recorder := call(router, http.MethodPatch, "/api/users/changepassword", `{"oldPassword":"secret1","password":"secret2"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "Not authorized, please login", decodeBody(t, recorder)["message"])
}

func TestLogoutAndLoginStatus(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	registered := call(router, http.MethodPost, "/api/users/register", `{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, registered.Code)
	cookie := sessionCookie(t, registered)

	loggedIn := call(router, http.MethodGet, "/api/users/loggedin", "", cookie)
	assert.Equal(t, "true", strings.TrimSpace(loggedIn.Body.String()))

	anonymous := call(router, http.MethodGet, "/api/users/loggedin", "")
	assert.Equal(t, "false", strings.TrimSpace(anonymous.Body.String()))

	for i := 0; i < 2; i++ {
		logout := call(router, http.MethodGet, "/api/users/logout", "", cookie)
		assert.Equal(t, http.StatusOK, logout.Code)
		assert.Equal(t, "Successfully logged out", decodeBody(t, logout)["message"])

		cleared := sessionCookie(t, logout)
		assert.Empty(t, cleared.Value)
		assert.Less(t, cleared.MaxAge, 0)
	}
}

func TestRegister_InvalidJSON(t *testing.T) {
	router := newRouter(newFixture(t))

	recorder := call(router, http.MethodPost, "/api/users/register", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, recorder)["code"])
}

func TestForgotAndResetPassword_HTTP(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	registered := call(router, http.MethodPost, "/api/users/register", `{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, registered.Code)

	unknown := call(router, http.MethodPost, "/api/users/forgotpassword", `{"email":"bob@x.com"}`)
	assert.Equal(t, http.StatusNotFound, unknown.Code)
	assert.Equal(t, "User does not exist", decodeBody(t, unknown)["message"])

	var resetURL string
	f.mailer.On("SendPasswordReset", mock.Anything, "ann@x.com", "Ann", mock.Anything).
		Run(func(args mock.Arguments) { resetURL = args.String(3) }).
		Return(nil).Once()

	sent := call(router, http.MethodPost, "/api/users/forgotpassword", `{"email":"ann@x.com"}`)
	require.Equal(t, http.StatusOK, sent.Code)
	assert.Equal(t, map[string]any{"success": true, "message": "Reset Email Sent"}, decodeBody(t, sent))

	rawToken := strings.TrimPrefix(resetURL, testFrontendURL+"/resetpassword/")

	reset := call(router, http.MethodPut, "/api/users/resetpassword/"+rawToken, `{"password":"secret9"}`)
	assert.Equal(t, http.StatusOK, reset.Code)

	reused := call(router, http.MethodPut, "/api/users/resetpassword/"+rawToken, `{"password":"secret8"}`)
	assert.Equal(t, http.StatusBadRequest, reused.Code)
	assert.Equal(t, "RESET_TOKEN_INVALID", decodeBody(t, reused)["code"])

	login := call(router, http.MethodPost, "/api/users/login", `{"email":"ann@x.com","password":"secret9"}`)
	assert.Equal(t, http.StatusOK, login.Code)

	f.mailer.AssertExpectations(t)
}
