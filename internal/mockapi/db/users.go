package db

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var ErrUserDuplicate = errors.New("user already exists")

// CreateUser inserts a new user, hashing the plaintext password with bcrypt.
func (s *Store) CreateUser(login, password, totpSecret string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO users (login, password_hash, totp_secret) VALUES (?, ?, ?)`,
		login, hash, totpSecret,
	)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return ErrUserDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by login. Returns (nil, nil) when absent.
func (s *Store) GetUser(login string) (*User, error) {
	u := &User{}
	err := s.db.QueryRow(
		`SELECT login, password_hash, totp_secret, created_at FROM users WHERE login = ?`, login,
	).Scan(&u.Login, &u.PasswordHash, &u.TOTPSecret, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user when login/password match, nil otherwise.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *Store) Authenticate(login, password string) (*User, error) {
	u, err := s.GetUser(login)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil, nil
	}
	return u, nil
}
