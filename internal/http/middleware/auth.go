// Package middleware contains the http.Handler wrappers shared by the
// router: the auth gate, request logging, CORS and body size limits.
package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aanand-mishra/hostel-api/internal/auth"
	"github.com/aanand-mishra/hostel-api/internal/utils/response"
)

// Fixed 401 messages. Verifier details are logged, never returned.
const (
	MsgTokenMissing = "Unauthorized - Token missing"
	MsgTokenInvalid = "Unauthorized - Invalid token"
)

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate runs the gate's decision for one request: it returns the
// verified claims, or an error wrapping auth.ErrMissingToken or
// auth.ErrInvalidToken.
func Authenticate(r *http.Request, v auth.Verifier) (*auth.Claims, error) {
	token, ok := bearerToken(r)
	if !ok {
		return nil, auth.ErrMissingToken
	}

	claims, err := v.Verify(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", auth.ErrInvalidToken, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: verifier returned no claims", auth.ErrInvalidToken)
	}
	return claims, nil
}

// RequireAuth gates next behind a verified bearer token. Verification
// happens on every request; nothing is cached between calls.
func RequireAuth(v auth.Verifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := Authenticate(r, v)
			if err != nil {
				msg := MsgTokenInvalid
				if errors.Is(err, auth.ErrMissingToken) {
					msg = MsgTokenMissing
				}
				log.Warn("request rejected by auth gate",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()))
				response.Unauthorized(w, msg)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
