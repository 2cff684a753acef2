package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/valmaiimtiyaz/artzybackend/pkg/utilities"
)

// Authenticator resolves the bearer token of a request into an Identity.
type Authenticator struct {
	tokens *TokenService
	logger *zap.SugaredLogger
}

func NewAuthenticator(tokens *TokenService, logger *zap.SugaredLogger) *Authenticator {
	return &Authenticator{tokens: tokens, logger: logger}
}

// Required rejects requests without a valid session token:
// 401 when no token is presented, 403 when it does not verify.
func (a *Authenticator) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			utilities.WriteError(w, http.StatusUnauthorized, "Token required!")
			return
		}
		claims, err := a.tokens.Verify(token, PurposeSession)
		if err != nil {
			a.logger.Debugw("token rejected", "path", r.URL.Path, "err", err)
			utilities.WriteError(w, http.StatusForbidden, "Token invalid or expired")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), Identity{UserID: claims.UserID})))
	})
}

// Optional attaches an identity when a valid session token is present and
// otherwise lets the request through anonymously.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			if claims, err := a.tokens.Verify(token, PurposeSession); err == nil {
				r = r.WithContext(WithIdentity(r.Context(), Identity{UserID: claims.UserID}))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
