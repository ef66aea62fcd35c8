package db

import (
	"fmt"
	"strings"
	"time"
)

// CreateAuthorization inserts a new token record and fills in its assigned
// ID and timestamps.
func (s *Store) CreateAuthorization(a *Authorization) error {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := s.db.Exec(
		`INSERT INTO authorizations
			(user_login, token, note, note_url, scopes, app_name, app_url, app_client_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.UserLogin, a.Token, a.Note, a.NoteURL, strings.Join(a.Scopes, ","),
		a.AppName, a.AppURL, a.AppClientID, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert authorization: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("authorization id: %w", err)
	}
	a.ID = id
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

// ListAuthorizations returns all issued records for a user, oldest first.
func (s *Store) ListAuthorizations(login string) ([]Authorization, error) {
	rows, err := s.db.Query(
		`SELECT id, user_login, token, note, note_url, scopes, app_name, app_url, app_client_id, created_at, updated_at
		FROM authorizations WHERE user_login = ? ORDER BY id`, login,
	)
	if err != nil {
		return nil, fmt.Errorf("list authorizations: %w", err)
	}
	defer rows.Close()

	var out []Authorization
	for rows.Next() {
		var a Authorization
		var scopes string
		if err := rows.Scan(&a.ID, &a.UserLogin, &a.Token, &a.Note, &a.NoteURL, &scopes,
			&a.AppName, &a.AppURL, &a.AppClientID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan authorization: %w", err)
		}
		if scopes != "" {
			a.Scopes = strings.Split(scopes, ",")
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
