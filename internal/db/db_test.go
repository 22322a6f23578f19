package db

import (
	"path/filepath"
	"testing"
)

func TestOpenAppliesMigrationsAndSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parking.db")

	d, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := d.Exec(`INSERT INTO users (username, password_hash) VALUES ('alice', 'hash')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopening must not re-run migrations and must see the committed row.
	d2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = d2.Close() })

	var username string
	if err := d2.QueryRow(`SELECT username FROM users WHERE username = 'alice'`).Scan(&username); err != nil {
		t.Fatalf("row lost across restart: %v", err)
	}
	var applied int
	if err := d2.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("schema_migrations: %v", err)
	}
	if applied == 0 {
		t.Fatal("no migrations recorded")
	}
}

func TestOpenEnforcesForeignKeys(t *testing.T) {
	d, err := Open("file:dbtest-fk?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	// parking_history.user_id carries a foreign key; _foreign_keys=1 in the
	// DSN must make SQLite enforce it on every connection.
	if _, err := d.Exec(`INSERT INTO parking_history (user_id, parking_date, parking_time) VALUES (12345, 'd', 't')`); err == nil {
		t.Fatal("dangling user_id accepted; foreign keys are off")
	}
}
