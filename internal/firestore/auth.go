package firestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

var requiredScopes = []string{
	"https://www.googleapis.com/auth/datastore",
}

// Google's OAuth2 endpoints for the limited-input device flow.
const (
	deviceAuthURL = "https://oauth2.googleapis.com/device/code"
	tokenURL      = "https://oauth2.googleapis.com/token"
)

// AuthConfig identifies the OAuth client and where its tokens are kept.
type AuthConfig struct {
	ClientID     string
	ClientSecret string
	// TokenFile defaults to ~/.tmt/auth/google_tokens.json.
	TokenFile string
}

func (a AuthConfig) tokenFile() (string, error) {
	if a.TokenFile != "" {
		return a.TokenFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tmt", "auth", "google_tokens.json"), nil
}

func (a AuthConfig) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     a.ClientID,
		ClientSecret: a.ClientSecret,
		Scopes:       requiredScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: deviceAuthURL,
			TokenURL:      tokenURL,
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// loadToken loads a previously saved token. A missing file yields nil.
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to re-authenticate): %w", path, err)
	}
	return &tok, nil
}

// saveToken persists tok with an atomic write.
func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// Login runs the device code flow unconditionally and stores the token.
// Instructions for the user are written to w.
func Login(ctx context.Context, a AuthConfig, w io.Writer) error {
	path, err := a.tokenFile()
	if err != nil {
		return err
	}
	tok, err := deviceFlow(ctx, a.oauth2Config(), w)
	if err != nil {
		return err
	}
	return saveToken(path, tok)
}

// HTTPClient returns an HTTP client authorized for Firestore. It uses the
// saved token, refreshing it when needed, and falls back to the device code
// flow when no usable token exists. Refreshed tokens are persisted.
func HTTPClient(ctx context.Context, a AuthConfig, w io.Writer) (*http.Client, error) {
	path, err := a.tokenFile()
	if err != nil {
		return nil, err
	}
	cfg := a.oauth2Config()

	tok, err := loadToken(path)
	if err != nil {
		// Corrupt token: warn and re-auth.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		tok = nil
	}

	if tok != nil && !tok.Valid() && tok.RefreshToken != "" {
		refreshed, err := cfg.TokenSource(ctx, tok).Token()
		if err == nil {
			if err2 := saveToken(path, refreshed); err2 != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not save refreshed token: %v\n", err2)
			}
			tok = refreshed
		} else {
			fmt.Fprintf(os.Stderr, "Token refresh failed (%v), re-authenticating...\n", err)
			tok = nil
		}
	}

	if tok == nil || (!tok.Valid() && tok.RefreshToken == "") {
		tok, err = deviceFlow(ctx, cfg, w)
		if err != nil {
			return nil, err
		}
		if err := saveToken(path, tok); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save token: %v\n", err)
		}
	}

	ts := &savingTokenSource{ts: cfg.TokenSource(ctx, tok), path: path}
	return oauth2.NewClient(ctx, ts), nil
}

func deviceFlow(ctx context.Context, cfg *oauth2.Config, w io.Writer) (*oauth2.Token, error) {
	resp, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device auth request failed: %w", err)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "To sign in, use a web browser to open the page:")
	fmt.Fprintf(w, "  %s\n", resp.VerificationURI)
	fmt.Fprintf(w, "Enter the code: %s\n", resp.UserCode)
	fmt.Fprintln(w)

	tok, err := cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("device authentication failed: %w", err)
	}
	return tok, nil
}

// savingTokenSource wraps a TokenSource and persists refreshed tokens.
type savingTokenSource struct {
	ts   oauth2.TokenSource
	path string
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		// Best-effort save; ignore errors.
		_ = saveToken(s.path, tok)
		s.last = tok.AccessToken
	}
	return tok, nil
}
