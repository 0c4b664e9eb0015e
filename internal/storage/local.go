package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

// Local keeps one JSON file per collection in Dir. It is the on-device
// mode: there is a single user and the key passed to Load and Save is
// ignored.
type Local struct {
	Dir string
}

// NewLocal returns a Local provider rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{Dir: dir}
}

// Collection files, named after the snapshot keys.
const (
	mealsFile   = "meals.json"
	journalFile = "journal.json"
	plannedFile = "plannedMeals.json"
	recipesFile = "savedRecipes.json"
	goalsFile   = "dailyGoals.json"
)

// Load reads every collection file. Missing files keep their defaults;
// ErrNotFound is returned only when none exists.
func (l *Local) Load(ctx context.Context, _ string) (model.Snapshot, error) {
	s := model.NewSnapshot()
	targets := []struct {
		name string
		v    any
	}{
		{mealsFile, &s.Meals},
		{journalFile, &s.Journal},
		{plannedFile, &s.PlannedMeals},
		{recipesFile, &s.SavedRecipes},
		{goalsFile, &s.DailyGoals},
	}

	found := false
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return model.Snapshot{}, err
		}
		ok, err := l.readJSON(t.name, t.v)
		if err != nil {
			return model.Snapshot{}, err
		}
		found = found || ok
	}
	if !found {
		return model.Snapshot{}, ErrNotFound
	}
	s.Normalize()
	return s, nil
}

// Save atomically rewrites the file of every collection present in p.
// The journal is written before the meal log it drains, so a failed
// end of day leaves the meals on disk.
func (l *Local) Save(ctx context.Context, _ string, p model.Patch) error {
	writes := []struct {
		name string
		v    any
		set  bool
	}{
		{journalFile, p.Journal, p.Journal != nil},
		{mealsFile, p.Meals, p.Meals != nil},
		{plannedFile, p.PlannedMeals, p.PlannedMeals != nil},
		{recipesFile, p.SavedRecipes, p.SavedRecipes != nil},
		{goalsFile, p.DailyGoals, p.DailyGoals != nil},
	}
	for _, w := range writes {
		if !w.set {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.writeJSON(w.name, w.v); err != nil {
			return err
		}
	}
	return nil
}

// readJSON decodes Dir/name into v. A corrupt file is moved aside to
// name.corrupt and reported.
func (l *Local) readJSON(name string, v any) (bool, error) {
	path := filepath.Join(l.Dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return false, fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return true, nil
}

func (l *Local) writeJSON(name string, v any) error {
	if err := os.MkdirAll(l.Dir, 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	path := filepath.Join(l.Dir, name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
