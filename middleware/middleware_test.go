package middleware

import (
	"testing"
	"time"

	"riviera/globals"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, userID, role string, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestValidateJWT(t *testing.T) {
	token := signedToken(t, "u42", "client", time.Hour)

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if claims.UserID != "u42" || claims.Role != "client" {
		t.Errorf("claims = %s/%s, want u42/client", claims.UserID, claims.Role)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"missing prefix", token},
		{"wrong prefix", "Token " + token},
		{"garbage", "Bearer not.a.jwt"},
	}
	for _, c := range cases {
		if _, err := ValidateJWT(c.header); err == nil {
			t.Errorf("%s: expected an error", c.name)
		}
	}
}

func TestValidateJWTExpired(t *testing.T) {
	token := signedToken(t, "u42", "client", -time.Minute)
	if _, err := ValidateJWT("Bearer " + token); err == nil {
		t.Error("expired token accepted")
	}
}
