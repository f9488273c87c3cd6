package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/config"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserID extracts the authenticated user's id injected by Auth.
func UserID(r *http.Request) (uuid.UUID, bool) {
	id, ok := r.Context().Value(userIDKey).(uuid.UUID)
	return id, ok
}

// WithUserID returns a request carrying the given user id; used by tests to
// exercise protected handlers without a token.
func WithUserID(r *http.Request, id uuid.UUID) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey, id))
}

// Auth verifies the JWT cookie and injects the user id into the request
// context. Everything behind it can trust that id unconditionally.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie("token")
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(config.Envs.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		sub, _ := claims["userId"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, WithUserID(r, userID))
	})
}
