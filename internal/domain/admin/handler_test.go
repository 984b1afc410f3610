package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petgroom/petgroom-api/internal/middleware"
)

type statusEnvelope struct {
	Success bool           `json:"success"`
	Data    StatusResponse `json:"data"`
}

func TestLoginStatusLogoutOverHTTP(t *testing.T) {
	router := NewHandler(newTestService(t), false).Routes()

	// wrong password
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// missing fields
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"infinity"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	status := func(c *http.Cookie) StatusResponse {
		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		if c != nil {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var env statusEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		return env.Data
	}

	assert.False(t, status(nil).IsAuthenticated)
	assert.True(t, status(session).IsAuthenticated)

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(session)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.False(t, status(session).IsAuthenticated, "token is revoked after logout")

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
