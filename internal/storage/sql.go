package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

// Driver names accepted by OpenSQL.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SQL stores each user key as one row of user_state, one JSON text column
// per collection.
type SQL struct {
	db     *sql.DB
	driver string
}

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "user_state",
		sql: `
CREATE TABLE IF NOT EXISTS user_state (
  user_key TEXT PRIMARY KEY,
  meals TEXT NOT NULL DEFAULT '[]',
  journal TEXT NOT NULL DEFAULT '[]',
  planned_meals TEXT NOT NULL DEFAULT '[]',
  saved_recipes TEXT NOT NULL DEFAULT '[]',
  daily_goals TEXT,
  updated_at TEXT NOT NULL
);
`,
	},
}

// OpenSQL connects to dsn with driver (DriverSQLite or DriverPostgres) and
// applies pending migrations.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQL, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported SQL driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}
	s := &SQL{db: db, driver: driver}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection pool.
func (s *SQL) Close() error {
	return s.db.Close()
}

func (s *SQL) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at TEXT NOT NULL
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := s.db.QueryRowContext(ctx, s.rebind(`SELECT 1 FROM schema_migrations WHERE version = ?`), m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.ExecContext(ctx, s.rebind(`INSERT INTO schema_migrations(version, name, applied_at) VALUES(?, ?, ?)`),
			m.version, m.name, time.Now().UTC().Format(time.RFC3339)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}
	return nil
}

// Load reads the row of userKey.
func (s *SQL) Load(ctx context.Context, userKey string) (model.Snapshot, error) {
	var meals, journal, planned, recipes string
	var goals sql.NullString
	err := s.db.QueryRowContext(ctx, s.rebind(`
SELECT meals, journal, planned_meals, saved_recipes, daily_goals
FROM user_state WHERE user_key = ?`), userKey).Scan(&meals, &journal, &planned, &recipes, &goals)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("load user state: %w", err)
	}

	snap := model.NewSnapshot()
	columns := []struct {
		name string
		raw  sql.NullString
		v    any
	}{
		{"meals", sql.NullString{String: meals, Valid: true}, &snap.Meals},
		{"journal", sql.NullString{String: journal, Valid: true}, &snap.Journal},
		{"planned_meals", sql.NullString{String: planned, Valid: true}, &snap.PlannedMeals},
		{"saved_recipes", sql.NullString{String: recipes, Valid: true}, &snap.SavedRecipes},
		{"daily_goals", goals, &snap.DailyGoals},
	}
	for _, c := range columns {
		if !c.raw.Valid {
			continue
		}
		if err := json.Unmarshal([]byte(c.raw.String), c.v); err != nil {
			return model.Snapshot{}, fmt.Errorf("decode %s column: %w", c.name, err)
		}
	}
	snap.Normalize()
	return snap, nil
}

// Save upserts the row of userKey, writing only the columns present in p.
func (s *SQL) Save(ctx context.Context, userKey string, p model.Patch) error {
	cols := []string{"user_key", "updated_at"}
	args := []any{userKey, time.Now().UTC().Format(time.RFC3339Nano)}
	add := func(col string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s column: %w", col, err)
		}
		cols = append(cols, col)
		args = append(args, string(data))
		return nil
	}
	present := []struct {
		col string
		v   any
		set bool
	}{
		{"meals", p.Meals, p.Meals != nil},
		{"journal", p.Journal, p.Journal != nil},
		{"planned_meals", p.PlannedMeals, p.PlannedMeals != nil},
		{"saved_recipes", p.SavedRecipes, p.SavedRecipes != nil},
		{"daily_goals", p.DailyGoals, p.DailyGoals != nil},
	}
	for _, c := range present {
		if !c.set {
			continue
		}
		if err := add(c.col, c.v); err != nil {
			return err
		}
	}

	if _, err := s.db.ExecContext(ctx, s.rebind(upsertQuery(cols)), args...); err != nil {
		return fmt.Errorf("save user state: %w", err)
	}
	return nil
}

// upsertQuery builds an INSERT ... ON CONFLICT statement understood by both
// SQLite and PostgreSQL. cols[0] is the conflict key.
func upsertQuery(cols []string) string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	sets := make([]string, 0, len(cols)-1)
	for _, c := range cols[1:] {
		sets = append(sets, c+" = excluded."+c)
	}
	return fmt.Sprintf("INSERT INTO user_state (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(cols, ", "), marks, cols[0], strings.Join(sets, ", "))
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQL) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	return rebindDollar(query)
}

func rebindDollar(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
