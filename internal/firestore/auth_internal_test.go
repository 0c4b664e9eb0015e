package firestore

import (
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

type staticSource struct{ tok *oauth2.Token }

func (s staticSource) Token() (*oauth2.Token, error) { return s.tok, nil }

func TestLoadTokenMissing(t *testing.T) {
	tok, err := loadToken(filepath.Join(t.TempDir(), "none.json"))
	if err != nil || tok != nil {
		t.Fatalf("loadToken = %v, %v; want nil, nil", tok, err)
	}
}

func TestSavingTokenSourcePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth", "google_tokens.json")
	want := &oauth2.Token{AccessToken: "abc", RefreshToken: "r", Expiry: time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)}

	ts := &savingTokenSource{ts: staticSource{want}, path: path}
	if _, err := ts.Token(); err != nil {
		t.Fatal(err)
	}

	got, err := loadToken(path)
	if err != nil {
		t.Fatalf("loadToken: %v", err)
	}
	if got == nil || got.AccessToken != "abc" || got.RefreshToken != "r" || !got.Expiry.Equal(want.Expiry) {
		t.Errorf("persisted token = %+v", got)
	}
}

func TestAuthConfigTokenFileDefault(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	path, err := AuthConfig{}.tokenFile()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/home/tester", ".tmt", "auth", "google_tokens.json"); path != want {
		t.Errorf("tokenFile = %q, want %q", path, want)
	}
}
