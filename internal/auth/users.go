package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// EnsureUser creates the user if the username is free; existing users are
// left untouched. Used to seed a first admin on fresh installs.
func EnsureUser(ctx context.Context, db *sql.DB, username, password, role string) error {
	var exists int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, username).Scan(&exists)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		uuid.NewString(), username, string(hash), role, time.Now().Unix())
	return err
}
