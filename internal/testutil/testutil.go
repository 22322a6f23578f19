package testutil

import (
	"database/sql"
	"testing"

	"parkscout/internal/db"
	"parkscout/internal/wire"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// Caller is responsible for closing the DB, typically via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// We use a shared cache memory database so that multiple connections share the same DB if needed.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// NewTestCipher returns a Cipher with the legacy default key/nonce pair.
func NewTestCipher(t *testing.T) *wire.Cipher {
	t.Helper()
	c, err := wire.NewCipher([]byte("ThisIsASecretKey"), []byte("ThisIsASecretN"))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	return c
}
