// Package sqlite implements a persistent SQLite-backed preference store.
// It uses modernc.org/sqlite (pure Go, no CGO) with WAL mode so language
// choices survive restarts and redeployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tolkabot/tolka/internal/core"
	"github.com/tolkabot/tolka/internal/prefs"

	_ "modernc.org/sqlite" // SQLite driver registration
)

func init() {
	core.RegisterModule(&Module{})
}

// Compile-time interface guards.
var (
	_ prefs.Store       = (*prefStore)(nil)
	_ core.Configurable = (*Module)(nil)
	_ core.Provisioner  = (*Module)(nil)
	_ core.Validator    = (*Module)(nil)
	_ core.Stopper      = (*Module)(nil)
)

// Module implements the prefs.sqlite module: a SQLite-backed prefs.Store
// registered as the "prefs.store" service.
type Module struct {
	config Config
	db     *sql.DB
	logger *slog.Logger
	store  *prefStore
}

// prefStore implements prefs.Store backed by SQLite.
type prefStore struct {
	db *sql.DB
}

// ModuleInfo implements core.Module.
func (m *Module) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "prefs.sqlite",
		New: func() core.Module { return &Module{} },
	}
}

// Configure implements core.Configurable.
func (m *Module) Configure(node *yaml.Node) error {
	if err := node.Decode(&m.config); err != nil {
		return fmt.Errorf("sqlite: decode config: %w", err)
	}
	m.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (m *Module) Provision(ctx *core.AppContext) error {
	m.config.defaults()
	m.logger = ctx.Logger

	if m.config.Path == "" {
		m.config.Path = filepath.Join(ctx.DataDir, defaultDBFile)
	}

	if dir := filepath.Dir(m.config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("sqlite: create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", m.config.Path)
	if err != nil {
		return fmt.Errorf("sqlite: open %s: %w", m.config.Path, err)
	}

	// SQLite handles one writer at a time; limit pool to 1 connection
	// so PRAGMAs apply consistently.
	db.SetMaxOpenConns(1)

	if m.config.walEnabled() {
		if _, err := db.ExecContext(context.TODO(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return fmt.Errorf("sqlite: enable WAL: %w", err)
		}
	}

	if _, err := db.ExecContext(context.TODO(), fmt.Sprintf("PRAGMA busy_timeout=%d", m.config.BusyTimeout)); err != nil {
		_ = db.Close()
		return fmt.Errorf("sqlite: set busy_timeout: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return err
	}

	m.db = db
	m.store = &prefStore{db: db}

	ctx.RegisterService("prefs.store", m.store)

	m.logger.Info("sqlite preference store provisioned",
		"path", m.config.Path,
		"wal", m.config.walEnabled(),
	)

	return nil
}

// Validate implements core.Validator.
func (m *Module) Validate() error {
	if err := m.config.validate(); err != nil {
		return err
	}
	if err := m.db.PingContext(context.TODO()); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}

// Stop implements core.Stopper.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("sqlite preference store stopping")
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// Language implements prefs.Store.
func (s *prefStore) Language(ctx context.Context, userID string) (string, error) {
	var code string
	err := s.db.QueryRowContext(ctx,
		"SELECT language FROM user_prefs WHERE user_id = ?", userID).Scan(&code)
	if errors.Is(err, sql.ErrNoRows) {
		return "", prefs.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("sqlite: read preference: %w", err)
	}
	return code, nil
}

// SetLanguage implements prefs.Store.
func (s *prefStore) SetLanguage(ctx context.Context, userID, code string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_prefs (user_id, language, updated_at)
		 VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		 ON CONFLICT(user_id) DO UPDATE SET
		   language = excluded.language,
		   updated_at = excluded.updated_at`,
		userID, code)
	if err != nil {
		return fmt.Errorf("sqlite: store preference: %w", err)
	}
	return nil
}
