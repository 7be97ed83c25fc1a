package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func protected(t *testing.T) http.Handler {
	t.Helper()
	return Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := GetAdminFromContext(r.Context())
		require.NoError(t, err)
		w.Write([]byte(session.Email)) //nolint:errcheck
	}))
}

func TestAuthenticate_ValidToken(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := NewAdminToken(testSecret, "admin@hackfest.dev", time.Hour, now)
	require.NoError(t, err)
	require.Equal(t, now.Add(time.Hour), expiresAt)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/registrations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "admin@hackfest.dev", rec.Body.String())
}

func TestAuthenticate_QueryToken(t *testing.T) {
	token, _, err := NewAdminToken(testSecret, "admin@hackfest.dev", time.Hour, time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ws/admin/registrations?token="+token, nil)
	rec := httptest.NewRecorder()
	protected(t).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_Rejects(t *testing.T) {
	expired, _, err := NewAdminToken(testSecret, "admin@hackfest.dev", time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	foreign, _, err := NewAdminToken([]byte("other-secret"), "admin@hackfest.dev", time.Hour, time.Now())
	require.NoError(t, err)
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "admin@hackfest.dev", "role": "admin"}).
		SignedString(testSecret)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing", "", ErrMissingToken.Error()},
		{"wrong scheme", "Basic abc", ErrMissingToken.Error()},
		{"garbage", "Bearer not-a-jwt", ErrInvalidToken.Error()},
		{"expired", "Bearer " + expired, ErrInvalidToken.Error()},
		{"foreign signature", "Bearer " + foreign, ErrInvalidToken.Error()},
		{"no expiry", "Bearer " + noExp, ErrInvalidToken.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/registrations", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected(t).ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tt.want, body["error"])
		})
	}
}

func TestAuthorize(t *testing.T) {
	token, _, err := NewAdminToken(testSecret, "admin@hackfest.dev", time.Hour, time.Now())
	require.NoError(t, err)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	for role, want := range map[string]int{RoleAdmin: http.StatusNoContent, "viewer": http.StatusForbidden} {
		h := Authenticate(testSecret)(Authorize(role)(ok))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, want, rec.Code, role)
	}
}

func TestGetAdminFromContext_Missing(t *testing.T) {
	_, err := GetAdminFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.Error(t, err)
}
