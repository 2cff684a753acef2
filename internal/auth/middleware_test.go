package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *TokenService) {
	t.Helper()
	tokens := newTestTokens(t)
	return NewAuthenticator(tokens, zap.NewNop().Sugar()), tokens
}

// echoIdentity writes 200 and records the identity seen by the handler.
func echoIdentity(seen *Identity, present *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen, *present = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequired(t *testing.T) {
	a, tokens := newTestAuthenticator(t)
	valid, err := tokens.Issue(9, PurposeSession, time.Hour)
	require.NoError(t, err)
	expired, err := tokens.Issue(9, PurposeSession, -time.Minute)
	require.NoError(t, err)
	reset, err := tokens.Issue(9, PurposeReset, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantID     int64
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "scheme only", header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer garbage", wantStatus: http.StatusForbidden},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusForbidden},
		{name: "reset token", header: "Bearer " + reset, wantStatus: http.StatusForbidden},
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantID: 9},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK, wantID: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen Identity
			var present bool
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			a.Required(echoIdentity(&seen, &present)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, present)
				assert.Equal(t, tt.wantID, seen.UserID)
			} else {
				assert.False(t, present)
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	a, tokens := newTestAuthenticator(t)
	valid, err := tokens.Issue(5, PurposeSession, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name        string
		header      string
		wantPresent bool
	}{
		{name: "anonymous", header: ""},
		{name: "invalid token degrades", header: "Bearer nope"},
		{name: "valid token", header: "Bearer " + valid, wantPresent: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen Identity
			var present bool
			req := httptest.NewRequest(http.MethodGet, "/api/artworks/user/alice", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			a.Optional(echoIdentity(&seen, &present)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantPresent, present)
			if tt.wantPresent {
				assert.Equal(t, int64(5), seen.UserID)
			}
		})
	}
}

func TestViewerID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, ViewerID(req.Context()))

	ctx := WithIdentity(req.Context(), Identity{UserID: 11})
	got := ViewerID(ctx)
	require.NotNil(t, got)
	assert.Equal(t, int64(11), *got)
}
