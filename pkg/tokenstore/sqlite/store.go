// Package sqlite is a tokenstore.Store driver on modernc.org/sqlite.
// Secret columns are sealed with a cryptox.Sealer when one is supplied.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/okapi/pkg/cryptox"
	"github.com/aussiebroadwan/okapi/pkg/tokenstore"
	_ "modernc.org/sqlite"
)

type Store struct {
	db     *sql.DB
	sealer *cryptox.Sealer
	dsn    string
}

var _ tokenstore.Store = (*Store)(nil)

// NewStore opens the database at dsn. A nil sealer stores secrets in clear,
// which is only acceptable for tests.
func NewStore(dsn string, sealer *cryptox.Sealer) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		sealer: sealer,
		dsn:    dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Load(ctx context.Context, id string) (tokenstore.Tokens, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT access_token, refresh_token, session_key, session_secret_key, updated_at
		FROM session_tokens
		WHERE id = ?`, id)

	var (
		access, refresh, sessionSecret []byte
		sessionKey                     sql.NullString
		updatedAt                      int64
	)
	if err := row.Scan(&access, &refresh, &sessionKey, &sessionSecret, &updatedAt); err != nil {
		return tokenstore.Tokens{}, mapNotFound(err)
	}

	t := tokenstore.Tokens{
		SessionKey: mapNullString(sessionKey),
		UpdatedAt:  time.UnixMilli(updatedAt).UTC(),
	}

	var err error
	if t.AccessToken, err = s.open(access); err != nil {
		return tokenstore.Tokens{}, fmt.Errorf("access_token: %w", err)
	}
	if t.RefreshToken, err = s.open(refresh); err != nil {
		return tokenstore.Tokens{}, fmt.Errorf("refresh_token: %w", err)
	}
	if t.SessionSecretKey, err = s.open(sessionSecret); err != nil {
		return tokenstore.Tokens{}, fmt.Errorf("session_secret_key: %w", err)
	}

	return t, nil
}

func (s *Store) Save(ctx context.Context, id string, t tokenstore.Tokens) error {
	access, err := s.seal(t.AccessToken)
	if err != nil {
		return err
	}
	refresh, err := s.seal(t.RefreshToken)
	if err != nil {
		return err
	}
	sessionSecret, err := s.seal(t.SessionSecretKey)
	if err != nil {
		return err
	}

	updatedAt := t.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_tokens (id, access_token, refresh_token, session_key, session_secret_key, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			access_token       = excluded.access_token,
			refresh_token      = excluded.refresh_token,
			session_key        = excluded.session_key,
			session_secret_key = excluded.session_secret_key,
			updated_at         = excluded.updated_at`,
		id, access, refresh, mapStringNull(t.SessionKey), sessionSecret, updatedAt.UnixMilli(),
	)
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE id = ?`, id)
	return err
}

// seal encrypts a secret column value. Empty strings are stored as NULL.
func (s *Store) seal(v string) ([]byte, error) {
	if v == "" {
		return nil, nil
	}
	if s.sealer == nil {
		return []byte(v), nil
	}
	return s.sealer.Seal([]byte(v))
}

func (s *Store) open(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	if s.sealer == nil {
		return string(b), nil
	}
	plain, err := s.sealer.Open(b)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return tokenstore.ErrNotFound
	}
	return err
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
