package testutil

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"myContacts/internal/db"
	"myContacts/models"
)

var dbNameCleaner = strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "&", "_")

// OpenInMemoryDB opens an in-memory SQLite database named after the running
// test and applies migrations. The database is closed on test cleanup.
func OpenInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	// Shared cache keeps the schema visible if the pool reconnects.
	d, err := db.Open("file:" + dbNameCleaner.Replace(t.Name()) + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// GenerateSessionToken returns a signed HS256 token carrying the claims the
// session issuer writes. A non-positive ttl produces an already expired token.
func GenerateSessionToken(t *testing.T, secret string, userID int64, name string, role models.Role, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"uid":  userID,
		"name": name,
		"role": string(role),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}
