// Package main provides the alcheck command: an HTTP lookup server and a
// one-shot lookup for a published allowlist spreadsheet.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	_ "github.com/JonMunkholm/alcheck/internal/core/schemas" // Register built-in schemas
)

var sourceURL string

var rootCmd = &cobra.Command{
	Use:   "alcheck",
	Short: "Allowlist eligibility lookup",
	Long: "alcheck loads a published spreadsheet export and answers, for an email address, " +
		"which allowlist flags the address holds.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if sourceURL != "" {
			return os.Setenv("SOURCE_URL", sourceURL)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceURL, "source-url", "", "Published export URL (overrides SOURCE_URL)")
}

// exitError carries a process exit code. A nil err exits silently.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	_ = godotenv.Overload()

	if err := rootCmd.Execute(); err != nil {
		code := 1
		var ee *exitError
		if errors.As(err, &ee) {
			code = ee.code
			err = ee.err
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(code)
	}
}
