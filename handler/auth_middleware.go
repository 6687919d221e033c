package handler

import (
	"context"
	"net/http"
	"strings"

	"answerly/common"
	"answerly/config"
	"answerly/model"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
	ClaimsKey   contextKey = "claims"
)

// bearerToken locates the access credential: the accessToken cookie first,
// then the Authorization header as fallback.
func bearerToken(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) == 2 && strings.ToLower(headerParts[0]) == "bearer" {
		return headerParts[1]
	}
	return ""
}

// AuthMiddleware is the sole authorization checkpoint for protected routes.
// It verifies the access token and attaches the decoded claims to the
// request context. Role enforcement happens elsewhere.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			appErr := common.NewAppError(http.StatusUnauthorized, "Access denied. No token provided.", nil)
			appErr.Send(w)
			return
		}

		claims := &model.AppClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(config.AppConfig.JWT.AccessSecret), nil
		})

		if err != nil || !token.Valid {
			appErr := common.NewAppError(http.StatusUnauthorized, "Invalid or expired token.", err)
			appErr.Send(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
		ctx = context.WithValue(ctx, ClaimsKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware guards admin-only routes. It must run after AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(UserRoleKey).(string)

		if !ok || role != string(model.RoleAdmin) {
			appErr := common.NewAppError(http.StatusForbidden, "Access denied. Admin privileges required.", nil)
			appErr.Send(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
