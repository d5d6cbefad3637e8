package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"github.com/redsthan/Group-project---Goods-DB/internal/modules/user"
)

type ctxKey struct{}

// Verifier validates bearer tokens and resolves the account they name into
// the request context.
type Verifier struct {
	users  *user.Service
	secret []byte
}

func NewVerifier(users *user.Service, secret string) *Verifier {
	return &Verifier{users: users, secret: []byte(secret)}
}

// Authenticate rejects requests without a valid bearer token and loads the
// token's account for the handlers downstream.
func (v *Verifier) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		claims := &jwt.StandardClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return v.secret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			http.Error(w, "invalid token subject", http.StatusUnauthorized)
			return
		}
		u, err := v.users.GetUser(r.Context(), id)
		if err != nil {
			// the account may have been deleted since the token was issued
			http.Error(w, "unknown account", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// WithUser stores the authenticated account in the context.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the account Authenticate stored, if any.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*user.User)
	return u, ok
}
