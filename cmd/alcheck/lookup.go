package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JonMunkholm/alcheck/internal/config"
	"github.com/JonMunkholm/alcheck/internal/core"
	"github.com/JonMunkholm/alcheck/internal/logging"
	"github.com/JonMunkholm/alcheck/internal/web/templates"
	"github.com/spf13/cobra"
)

// Exit codes of the lookup command.
const (
	exitMatched   = 0
	exitNoMatch   = 1
	exitLoadError = 2
)

var lookupPlain bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <email>",
	Short: "Look up one email address",
	Long: `Fetch the spreadsheet once and print the flags held by <email>.

Exit status is 0 when the address is found, 1 when it is not found or
empty, and 2 when the spreadsheet could not be loaded.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookupCmd,
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupPlain, "plain", false, "Print the flags as key=value lines")
	rootCmd.AddCommand(lookupCmd)
}

func runLookupCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// stdout carries the answer; logs go to stderr.
	slog.SetDefault(logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format))

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	res, err := a.service.Find(cmd.Context(), args[0])
	printResult(cmd.OutOrStdout(), a.service.Schema(), res, lookupPlain)
	return lookupExit(res, err)
}

// lookupExit converts a lookup outcome into the command's exit status.
func lookupExit(res core.Result, err error) error {
	switch res.Outcome {
	case core.OutcomeMatched:
		return nil
	case core.OutcomeLoadError:
		return &exitError{code: exitLoadError, err: fmt.Errorf("%s", core.FormatUserError(err))}
	case core.OutcomeInvalid:
		return &exitError{code: exitNoMatch, err: fmt.Errorf("%s", core.FormatUserError(err))}
	default:
		return &exitError{code: exitNoMatch}
	}
}

// printResult writes the headline and one line per flag. In plain mode the
// lines carry the same pills as the web page.
func printResult(w io.Writer, schema core.Schema, res core.Result, plain bool) {
	if res.Outcome == core.OutcomeInvalid || res.Outcome == core.OutcomeLoadError {
		return
	}

	if plain {
		for _, f := range schema.Flags {
			fmt.Fprintf(w, "%s=%t\n", f.Key, res.Flag(f.Key) == core.FlagYes)
		}
		return
	}

	fmt.Fprintf(w, "%s %s\n", res.Identifier, res.Headline())
	for _, f := range schema.Flags {
		icon, text := templates.PillNoIcon, templates.PillNoText
		if res.Flag(f.Key) == core.FlagYes {
			icon, text = templates.PillYesIcon, templates.PillYesText
		}
		fmt.Fprintf(w, "  %s %-20s %s\n", icon, f.Label, text)
	}
}
