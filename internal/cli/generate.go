package cli

import (
	goerrors "errors"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/updatefeed/updatefeed/internal/commits"
	"github.com/updatefeed/updatefeed/internal/config"
	"github.com/updatefeed/updatefeed/internal/errors"
	"github.com/updatefeed/updatefeed/internal/hook"
	"github.com/updatefeed/updatefeed/internal/output"
	"github.com/updatefeed/updatefeed/internal/scaffold"
	"github.com/updatefeed/updatefeed/internal/updates"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate updates.txt, updates.json, and updates.rss from commits",
	Long: `Generate fetches the commit history (local repository, or hosting API
when remote credentials are configured), filters and redacts the messages,
groups them by calendar date, and merges the result into the canonical
updates.txt. The JSON and RSS artifacts are re-derived from that text, and
the seen-commit index keeps incremental runs idempotent.

Fetch failures abort before any file on disk is modified.`,
	Example: `  updatefeed generate
  updatefeed generate --out public --site-url https://example.com
  updatefeed generate --strip-branch --hide "internal codename"
  updatefeed generate --force`,
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("root", "", "Project directory to read commits from")
	generateCmd.Flags().String("out", "", "Output directory for the artifacts")
	generateCmd.Flags().String("site-url", "", "Link prefix for RSS items")
	generateCmd.Flags().Int("max-count", 0, "Maximum commits to fetch")
	generateCmd.Flags().String("since", "", "Cutoff (RFC 3339 or yyyy-MM-dd)")
	generateCmd.Flags().String("keep", "", "Override filter pattern (case-insensitive)")
	generateCmd.Flags().Bool("strip-branch", false, "Strip a leading [branch] prefix from messages")
	generateCmd.Flags().String("confidential", "", "Comma-separated terms to mask")
	generateCmd.Flags().String("hide", "", "Comma-separated terms to delete")
	generateCmd.Flags().Bool("force", false, "Discard prior state and rebuild from the full commit window")
	generateCmd.Flags().String("remote-token", "", "Hosting API token")
	generateCmd.Flags().String("remote-owner", "", "Remote repository owner")
	generateCmd.Flags().String("remote-repo", "", "Remote repository name")
	generateCmd.Flags().Bool("lock", false, "Serialize against concurrent runs via a lock file")
	generateCmd.Flags().Bool("quiet", false, "Suppress per-artifact output")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Configuration, "loading configuration",
			"Check .updatefeed/config.yml for syntax or value errors",
			"Run 'updatefeed init' to write a commented default config")
	}

	applyGenerateFlags(cmd, cfg)
	force, _ := cmd.Flags().GetBool("force")
	useLock, _ := cmd.Flags().GetBool("lock")
	quiet, _ := cmd.Flags().GetBool("quiet")

	pcfg, err := pipelineConfig(cfg, force)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Configuration, "invalid configuration")
	}

	if useLock {
		if err := hook.AcquireRunLock(pcfg.OutputDir); err != nil {
			errors.PrintError(errors.NewRuntimeError(err.Error(),
				"Wait for the running generation to finish",
				"Delete the lock file if the holder crashed: "+hook.LockPath(pcfg.OutputDir)))
			return NewExitError(ExitLocked)
		}
		defer hook.ReleaseRunLock(pcfg.OutputDir)
	}

	var spin *spinner.Spinner
	caps := output.DetectTerminalCapabilities()
	if !quiet && caps.IsTTY && cfg.RemoteToken != "" && cfg.RemoteOwner != "" && cfg.RemoteRepo != "" {
		spin = spinner.New(spinner.CharSets[caps.SpinnerCharSet()], 100*time.Millisecond)
		spin.Suffix = fmt.Sprintf(" fetching commits from %s/%s...", cfg.RemoteOwner, cfg.RemoteRepo)
		spin.Start()
	}

	result, err := updates.Generate(cmd.Context(), pcfg)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return generateError(err)
	}

	if !quiet {
		out := cmd.OutOrStdout()
		output.PrintRunHeader(out)
		output.PrintArtifact(out, "text", result.TxtPath)
		output.PrintArtifact(out, "json", result.JSONPath)
		output.PrintArtifact(out, "rss", result.RSSPath)
		output.PrintArtifact(out, "index", result.IndexPath)
		output.PrintSummary(out, fmt.Sprintf("%d update blocks in %s", len(result.Items), result.OutDir))
	}
	return nil
}

// applyGenerateFlags overrides loaded configuration with explicitly set
// flags. Flag > env > config file > default.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Configuration) {
	if cmd.Flags().Changed("root") {
		cfg.Root, _ = cmd.Flags().GetString("root")
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir, _ = cmd.Flags().GetString("out")
	}
	if cmd.Flags().Changed("site-url") {
		cfg.SiteURL, _ = cmd.Flags().GetString("site-url")
	}
	if cmd.Flags().Changed("max-count") {
		cfg.MaxCommitCount, _ = cmd.Flags().GetInt("max-count")
	}
	if cmd.Flags().Changed("since") {
		cfg.Since, _ = cmd.Flags().GetString("since")
	}
	if cmd.Flags().Changed("keep") {
		cfg.KeepPattern, _ = cmd.Flags().GetString("keep")
	}
	if cmd.Flags().Changed("strip-branch") {
		cfg.StripBranch, _ = cmd.Flags().GetBool("strip-branch")
	}
	if cmd.Flags().Changed("confidential") {
		cfg.ConfidentialTerms, _ = cmd.Flags().GetString("confidential")
	}
	if cmd.Flags().Changed("hide") {
		cfg.HideTerms, _ = cmd.Flags().GetString("hide")
	}
	if cmd.Flags().Changed("remote-token") {
		cfg.RemoteToken, _ = cmd.Flags().GetString("remote-token")
	}
	if cmd.Flags().Changed("remote-owner") {
		cfg.RemoteOwner, _ = cmd.Flags().GetString("remote-owner")
	}
	if cmd.Flags().Changed("remote-repo") {
		cfg.RemoteRepo, _ = cmd.Flags().GetString("remote-repo")
	}
}

// pipelineConfig converts the loaded configuration into a pipeline Config,
// resolving the since cutoff, the term lists, and the output directory.
func pipelineConfig(cfg *config.Configuration, force bool) (updates.Config, error) {
	since, err := cfg.SinceTime()
	if err != nil {
		return updates.Config{}, err
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = scaffold.DetectOutputDir(cfg.Root)
	}

	return updates.Config{
		Root:              cfg.Root,
		OutputDir:         outDir,
		SiteURL:           cfg.SiteURL,
		MaxCommitCount:    cfg.MaxCommitCount,
		Since:             since,
		KeepPattern:       cfg.KeepPattern,
		StripBranch:       cfg.StripBranch,
		ConfidentialTerms: cfg.ConfidentialTermList(),
		HideTerms:         cfg.HideTermList(),
		Force:             force,
		RemoteToken:       cfg.RemoteToken,
		RemoteOwner:       cfg.RemoteOwner,
		RemoteRepo:        cfg.RemoteRepo,
	}, nil
}

// generateError translates pipeline failures into categorized CLI errors
// with remediation guidance.
func generateError(err error) error {
	var notFound *commits.RepositoryNotFoundError
	if goerrors.As(err, &notFound) {
		return errors.WrapWithMessage(err, errors.Repository, "fetching commits",
			"Run updatefeed inside a git repository, or pass --root",
			"Configure remote_token, remote_owner, and remote_repo to use the hosting API instead")
	}

	var fetchErr *commits.RemoteFetchError
	if goerrors.As(err, &fetchErr) {
		return errors.WrapWithMessage(err, errors.Remote, "fetching commits",
			"Check the remote owner and repository name",
			"Verify the API token has read access to the repository")
	}

	var parseErr *commits.RemoteParseError
	if goerrors.As(err, &parseErr) {
		return errors.WrapWithMessage(err, errors.Remote, "fetching commits",
			"The hosting API returned an unexpected body; retry, and check for API changes")
	}

	return errors.WrapWithMessage(err, errors.Runtime, "generating updates")
}
