package models

// User represents a registered account.
// It maps to the `users` table in SQLite.
// PasswordHash is a bcrypt hash and must never appear in a response envelope.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	IsAdmin      bool   `db:"is_admin" json:"is_admin"`
}
