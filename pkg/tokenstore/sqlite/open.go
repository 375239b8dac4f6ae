package sqlite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aussiebroadwan/okapi/pkg/cryptox"
)

// Options configures Open.
type Options struct {
	Path       string // Required: database file
	Passphrase string // Optional: seals stored secrets (clear text when empty)
	SaltFile   string // Required with Passphrase: created on first use
}

// Open opens the token database at opts.Path and applies pending migrations.
// With a passphrase, secrets are sealed with a key derived from it and the
// salt kept in opts.SaltFile.
func Open(opts Options) (*Store, error) {
	if opts.Path == "" {
		return nil, errors.New("token database path is required")
	}

	var sealer *cryptox.Sealer
	if opts.Passphrase != "" {
		if opts.SaltFile == "" {
			return nil, errors.New("salt file is required with a passphrase")
		}

		salt, err := loadOrCreateSalt(opts.SaltFile)
		if err != nil {
			return nil, err
		}

		key, err := cryptox.DeriveKey(opts.Passphrase, salt)
		if err != nil {
			return nil, fmt.Errorf("failed to derive token key: %w", err)
		}

		sealer, err = cryptox.NewSealer(key)
		if err != nil {
			return nil, err
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", opts.Path)
	store, err := NewStore(dsn, sealer)
	if err != nil {
		return nil, fmt.Errorf("failed to open token database: %w", err)
	}

	if err := store.ApplyMigrations(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to apply token database migrations: %w", err)
	}

	return store, nil
}

// loadOrCreateSalt reads the salt file, creating it on first use.
func loadOrCreateSalt(path string) ([]byte, error) {
	salt, err := os.ReadFile(path)
	if err == nil {
		if len(salt) < cryptox.SaltLength {
			return nil, fmt.Errorf("salt file %s is too short", path)
		}
		return salt, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read salt file: %w", err)
	}

	salt, err = cryptox.NewSalt()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, salt, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write salt file: %w", err)
	}
	return salt, nil
}
