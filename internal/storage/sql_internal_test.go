package storage

import "testing"

func TestRebindDollar(t *testing.T) {
	got := rebindDollar(`SELECT 1 FROM t WHERE a = ? AND b = ?`)
	if want := `SELECT 1 FROM t WHERE a = $1 AND b = $2`; got != want {
		t.Errorf("rebindDollar = %q, want %q", got, want)
	}
}

func TestUpsertQuery(t *testing.T) {
	got := upsertQuery([]string{"user_key", "updated_at", "meals"})
	want := "INSERT INTO user_state (user_key, updated_at, meals) VALUES (?, ?, ?) " +
		"ON CONFLICT (user_key) DO UPDATE SET updated_at = excluded.updated_at, meals = excluded.meals"
	if got != want {
		t.Errorf("upsertQuery =\n%s\nwant\n%s", got, want)
	}
}
