package globals

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// JwtSecret is assigned in init, after the .env file is loaded.
var JwtSecret []byte

// Every package that reads configuration imports globals, so loading the
// .env file here guarantees it happens before any of their init code runs.
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	JwtSecret = []byte(EnvOr("JWT_SECRET", "change_me_in_production"))
}

// EnvOr returns the environment value for key, or fallback when unset.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var Ctx = context.Background()
