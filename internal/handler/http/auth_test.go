package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoogleCallback_RejectsMissingStateCookie(t *testing.T) {
	h := &AuthHandlerImpl{}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/auth/oauth/callback/google?code=abc&state=xyz", nil)
	w := httptest.NewRecorder()

	h.GoogleCallback(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "OAuth state mismatch")
}

func TestGoogleCallback_RejectsStateMismatch(t *testing.T) {
	h := &AuthHandlerImpl{}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/auth/oauth/callback/google?code=abc&state=forged", nil)
	r.AddCookie(&http.Cookie{Name: "state", Value: "expected"})
	w := httptest.NewRecorder()

	h.GoogleCallback(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "OAuth state mismatch")
}
