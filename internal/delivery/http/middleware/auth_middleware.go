package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ryderthieu/hospital-management-sub003/pkg/jwt"
	"github.com/ryderthieu/hospital-management-sub003/pkg/response"
)

type contextKey string

const (
	DoctorIDKey contextKey = "doctor_id"
	EmailKey    contextKey = "email"
	TokenIDKey  contextKey = "token_id"
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
}

func NewAuthMiddleware(jwtService *jwt.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), DoctorIDKey, claims.DoctorID)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDoctorIDFromContext extracts the authenticated doctor's id from context
func GetDoctorIDFromContext(ctx context.Context) (int, bool) {
	doctorID, ok := ctx.Value(DoctorIDKey).(int)
	return doctorID, ok
}

// GetEmailFromContext extracts the authenticated doctor's email from context
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}
