// Package storage persists ledger snapshots. A Provider loads the whole
// state of a user key and saves patches at collection level; Mirror attaches
// a Provider to a ledger as an asynchronous observer.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

// ErrNotFound is returned by Provider.Load when nothing was ever saved
// under the key.
var ErrNotFound = errors.New("no saved state")

// Provider is a persistence backend.
type Provider interface {
	// Load returns the stored snapshot of userKey or ErrNotFound.
	Load(ctx context.Context, userKey string) (model.Snapshot, error)
	// Save replaces every collection present in p and leaves the rest as
	// stored. Missing state is created.
	Save(ctx context.Context, userKey string, p model.Patch) error
}

// BaseDir returns the root data directory (~/.tmt).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tmt"), nil
}

// Open loads the state of key, initializing a new user with empty
// collections and the default goals.
func Open(ctx context.Context, p Provider, key string) (model.Snapshot, error) {
	return OpenWithGoals(ctx, p, key, model.DefaultGoals())
}

// OpenWithGoals is Open with the goals assigned to a new user.
func OpenWithGoals(ctx context.Context, p Provider, key string, goals model.DailyGoals) (model.Snapshot, error) {
	s, err := p.Load(ctx, key)
	if err == nil {
		s.Normalize()
		return s, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return model.Snapshot{}, err
	}
	s = model.NewSnapshot()
	s.DailyGoals = goals
	if err := p.Save(ctx, key, model.FullPatch(s)); err != nil {
		return model.Snapshot{}, fmt.Errorf("initializing state: %w", err)
	}
	return s, nil
}
