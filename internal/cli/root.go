package cli

import (
	goerrors "errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/updatefeed/updatefeed/internal/build"
	"github.com/updatefeed/updatefeed/internal/commits"
	"github.com/updatefeed/updatefeed/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "updatefeed",
	Short: "Turn your commit history into a deduplicated updates feed",
	Long: `updatefeed converts a repository's commit history into a changelog
emitted simultaneously as plain text, JSON, and an RSS feed.

Commit messages are filtered, redacted, grouped by calendar date, and merged
against a persisted seen-commit index so incremental runs are idempotent:
every commit contributes at most one line, ever. The canonical store is
updates.txt; updates.json and updates.rss are always re-derived from it.`,
	Example: `  # Generate updates.txt / updates.json / updates.rss from the local repo
  updatefeed generate

  # Rebuild everything from scratch, ignoring the seen index
  updatefeed generate --force

  # Mask and hide sensitive terms
  updatefeed generate --confidential "aws,stripe" --hide "password"

  # Install the post-commit hook so the feed stays current
  updatefeed hook install`,
	Version:       build.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			commits.SetDebugLogger(log.Printf)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to project config file (default .updatefeed/config.yml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// Execute runs the root command. Structured CLI errors are printed with
// category and remediation guidance; everything else is printed plainly.
// ExitErrors pass through silently, their cause already reported.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if goerrors.As(err, &exitErr) {
		return err
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
	} else {
		errors.PrintError(errors.NewRuntimeError(err.Error()))
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if goerrors.As(err, &exitErr) {
		return exitErr.Code
	}
	if cliErr := errors.AsCLIError(err); cliErr != nil && cliErr.Category == errors.Argument {
		return ExitInvalidArguments
	}
	return ExitGenerateFailed
}
