package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/Tiliavir/trivial-meal-tracker/internal/config"
	"github.com/Tiliavir/trivial-meal-tracker/internal/firestore"
	"github.com/Tiliavir/trivial-meal-tracker/internal/ledger"
	"github.com/Tiliavir/trivial-meal-tracker/internal/report"
	"github.com/Tiliavir/trivial-meal-tracker/internal/storage"
)

// errConfig marks configuration problems, which exit with 1 instead of 2.
var errConfig = errors.New("invalid configuration")

// session is one command's view of the user's ledger. Mutations are
// mirrored to the configured store and flushed by close.
type session struct {
	cfg    config.Config
	ledger *ledger.Ledger
	mirror *storage.Mirror
	closer io.Closer
}

// loadConfig reads the config file and the .env files.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return cfg
}

// openSession loads the ledger from the configured store.
func openSession(ctx context.Context) *session {
	return openSessionWith(ctx, loadConfig())
}

func openSessionWith(ctx context.Context, cfg config.Config) *session {
	p, closer, err := newProvider(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errConfig) {
			os.Exit(1)
		}
		os.Exit(2)
	}

	key := userKey(cfg)
	snap, err := storage.OpenWithGoals(ctx, p, key, cfg.Goals.DailyGoals())
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading state: %v\n", err)
		os.Exit(2)
	}

	mirror := storage.NewMirror(ctx, p, key, log.New(os.Stderr, "tmt: ", 0))
	return &session{
		cfg:    cfg,
		ledger: ledger.New(snap, ledger.WithObserver(mirror.Observe)),
		mirror: mirror,
		closer: closer,
	}
}

// close waits for pending saves. Lost changes exit with 2.
func (s *session) close() {
	err := s.mirror.Close()
	if s.closer != nil {
		if cerr := s.closer.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: closing store: %v\n", cerr)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: not all changes were saved.")
		os.Exit(2)
	}
}

// fail flushes pending saves, prints the message and exits with 1.
func (s *session) fail(format string, args ...any) {
	s.close()
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// print renders markdown to stdout with the configured display options.
func (s *session) print(md string) {
	printMarkdown(s.cfg, md)
}

func printMarkdown(cfg config.Config, md string) {
	opts := report.Options{
		Plain:    plainOutput || cfg.Display.Plain,
		WordWrap: cfg.Display.WordWrap,
	}
	if err := report.Print(os.Stdout, md, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		fmt.Print(md)
	}
}

// userKey is the document key of the configured store. The on-device store
// holds a single user.
func userKey(cfg config.Config) string {
	if cfg.Storage.ResolvedMode() == config.ModeLocal {
		return ""
	}
	return cfg.Storage.UserKey
}

// newProvider builds the store selected by the storage mode. The returned
// closer, if any, releases its resources.
func newProvider(ctx context.Context, cfg config.Config) (storage.Provider, io.Closer, error) {
	base, err := storage.BaseDir()
	if err != nil {
		return nil, nil, err
	}

	mode := cfg.Storage.ResolvedMode()
	if mode != config.ModeLocal && cfg.Storage.UserKey == "" {
		return nil, nil, fmt.Errorf("%w: storage.user_key is required for mode %q", errConfig, mode)
	}

	switch mode {
	case config.ModeLocal:
		return storage.NewLocal(base), nil, nil

	case config.ModeSQLite:
		dsn := cfg.Storage.DSN
		if dsn == "" {
			if err := os.MkdirAll(base, 0o700); err != nil {
				return nil, nil, fmt.Errorf("creating data directory: %w", err)
			}
			dsn = filepath.Join(base, "tmt.db")
		}
		db, err := storage.OpenSQL(ctx, storage.DriverSQLite, dsn)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil

	case config.ModePostgres:
		if cfg.Storage.DSN == "" {
			return nil, nil, fmt.Errorf("%w: storage.dsn is required for mode %q", errConfig, mode)
		}
		db, err := storage.OpenSQL(ctx, storage.DriverPostgres, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil

	case config.ModeFirestore:
		if cfg.Firestore.ProjectID == "" {
			return nil, nil, fmt.Errorf("%w: firestore.project_id is required for mode %q", errConfig, mode)
		}
		hc, err := firestore.HTTPClient(ctx, authConfig(cfg), os.Stderr)
		if err != nil {
			return nil, nil, fmt.Errorf("authenticating with Google: %w", err)
		}
		client := firestore.NewClient(hc, firestore.Options{
			ProjectID: cfg.Firestore.ProjectID,
			Database:  cfg.Firestore.Database,
		})
		return firestore.NewProvider(client, cfg.Firestore.Collection), nil, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown storage mode %q", errConfig, mode)
}

func authConfig(cfg config.Config) firestore.AuthConfig {
	return firestore.AuthConfig{
		ClientID:     cfg.Firestore.ClientID,
		ClientSecret: cfg.Firestore.ClientSecret,
	}
}
