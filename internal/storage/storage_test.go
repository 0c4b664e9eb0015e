package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/storage"
)

func eggsPatch() model.Patch {
	meals := []model.MealEntry{{ID: "m1", Name: "Eggs", Calories: 240, Protein: 18, Carbs: 2, Fats: 18, Time: "08:30"}}
	return model.Patch{Meals: &meals}
}

func TestLocalLoadNotExist(t *testing.T) {
	p := storage.NewLocal(t.TempDir())
	_, err := p.Load(context.Background(), "")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Load on empty dir = %v, want ErrNotFound", err)
	}
}

func TestLocalSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	p := storage.NewLocal(dir)
	ctx := context.Background()

	if err := p.Save(ctx, "ignored", eggsPatch()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "meals.json")); err != nil {
		t.Fatalf("meals.json not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "journal.json")); !os.IsNotExist(err) {
		t.Errorf("journal.json written for a meals-only patch")
	}

	s, err := p.Load(ctx, "other key")
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if len(s.Meals) != 1 || s.Meals[0].Name != "Eggs" {
		t.Errorf("Meals = %+v", s.Meals)
	}
	if s.Journal == nil || len(s.Journal) != 0 {
		t.Errorf("Journal = %#v, want empty non-nil", s.Journal)
	}
	if s.DailyGoals != model.DefaultGoals() {
		t.Errorf("DailyGoals = %+v, want defaults", s.DailyGoals)
	}
}

func TestLocalCorruptFileBackedUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := storage.NewLocal(dir).Load(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for corrupt JSON, got nil")
	}
	if _, err2 := os.Stat(path + ".corrupt"); os.IsNotExist(err2) {
		t.Error("expected backup file to exist after corrupt JSON")
	}
}

func TestLocalFailedArchiveKeepsMeals(t *testing.T) {
	dir := t.TempDir()
	p := storage.NewLocal(dir)
	ctx := context.Background()
	if err := p.Save(ctx, "", eggsPatch()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// A directory in place of the temp file makes the journal write fail.
	if err := os.Mkdir(filepath.Join(dir, "journal.json.tmp"), 0o700); err != nil {
		t.Fatal(err)
	}

	meals := []model.MealEntry{}
	journal := []model.JournalDay{{
		Date:   "2026-02-27",
		Meals:  *eggsPatch().Meals,
		Totals: model.NutritionTotals{Calories: 240, Protein: 18, Carbs: 2, Fats: 18},
	}}
	if err := p.Save(ctx, "", model.Patch{Meals: &meals, Journal: &journal}); err == nil {
		t.Fatal("Save with an unwritable journal returned nil")
	}

	s, err := p.Load(ctx, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Meals) != 1 {
		t.Errorf("meal log has %d entries after a failed archive, want 1", len(s.Meals))
	}
}

func TestOpenInitializesNewUser(t *testing.T) {
	ctx := context.Background()
	p := storage.NewLocal(t.TempDir())
	goals := model.DailyGoals{Calories: 1800, Protein: 120, Carbs: 200, Fats: 60}

	s, err := storage.OpenWithGoals(ctx, p, "", goals)
	if err != nil {
		t.Fatalf("OpenWithGoals: %v", err)
	}
	if s.DailyGoals != goals || len(s.Meals) != 0 {
		t.Errorf("new snapshot = %+v", s)
	}

	// The initial state is persisted, so a second open loads it.
	again, err := storage.Open(ctx, p, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if again.DailyGoals != goals {
		t.Errorf("reopened goals = %+v, want %+v", again.DailyGoals, goals)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "tmt.db")
	db, err := storage.OpenSQL(ctx, storage.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("OpenSQL: %v", err)
	}
	defer db.Close()

	if _, err := db.Load(ctx, "alice"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Load unknown key = %v, want ErrNotFound", err)
	}

	goals := model.DailyGoals{Calories: 2200}
	if err := db.Save(ctx, "alice", model.Patch{DailyGoals: &goals}); err != nil {
		t.Fatalf("Save goals: %v", err)
	}
	if err := db.Save(ctx, "alice", eggsPatch()); err != nil {
		t.Fatalf("Save meals: %v", err)
	}

	s, err := db.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Meals) != 1 || s.DailyGoals.Calories != 2200 {
		t.Errorf("Load = %+v; want the meals patch merged over the goals", s)
	}

	if _, err := db.Load(ctx, "bob"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("keys are not isolated: %v", err)
	}
}

func TestSQLiteMigrationsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "tmt.db")
	for i := 0; i < 2; i++ {
		db, err := storage.OpenSQL(ctx, storage.DriverSQLite, dsn)
		if err != nil {
			t.Fatalf("OpenSQL #%d: %v", i+1, err)
		}
		db.Close()
	}
}

func TestOpenSQLUnknownDriver(t *testing.T) {
	if _, err := storage.OpenSQL(context.Background(), "mysql", ""); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
