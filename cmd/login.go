package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-meal-tracker/internal/firestore"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Google for the Firestore store",
	Long: `Sign in to Google with the device-code flow and cache the token in
~/.tmt/auth/google_tokens.json. Needs firestore.client_id (and usually
firestore.client_secret) in ~/.tmt/config.json.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if cfg.Firestore.ClientID == "" {
		fmt.Fprintln(os.Stderr, "firestore.client_id is not set in ~/.tmt/config.json")
		os.Exit(1)
	}

	if err := firestore.Login(cmd.Context(), authConfig(cfg), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Login failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Signed in. Tokens are cached for the next commands.")
	return nil
}
