package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"riviera/globals"
	"riviera/rbac"
	"riviera/rdx"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
)

// JWT claims
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if websocket.IsWebSocketUpgrade(r) {
			// websocket handlers validate their own token query param
			next(w, r, ps)
			return
		}

		header := r.Header.Get("Authorization")
		claims, err := ValidateJWT(header)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		// The session hash is the revocation list: logout and role changes
		// drop the entry, invalidating tokens that are otherwise still valid.
		raw := strings.TrimPrefix(header, "Bearer ")
		stored, err := rdx.RdxHget("sessions", claims.UserID)
		if err == redis.Nil || (err == nil && stored != raw) {
			http.Error(w, "Session expired", http.StatusUnauthorized)
			return
		}
		if err != nil && err != redis.Nil {
			// redis down: fall back to signature-only validation
			log.Printf("session lookup failed for %s: %v", claims.UserID, err)
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, globals.RoleKey, claims.Role)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireRole gates a route behind a capability: the token's role must hold
// it. Runs Authenticate first.
func RequireRole(cap rbac.Capability, next httprouter.Handle) httprouter.Handle {
	return Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		role, _ := r.Context().Value(globals.RoleKey).(string)
		if !rbac.Can(rbac.Role(role), cap) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r, ps)
	})
}

// ValidateJWT parses a "Bearer <token>" header value.
func ValidateJWT(tokenString string) (*Claims, error) {
	if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("unauthorized")
	}
	return claims, nil
}
