package cli

import (
	"github.com/spf13/cobra"

	"github.com/updatefeed/updatefeed/internal/errors"
	"github.com/updatefeed/updatefeed/internal/hook"
	"github.com/updatefeed/updatefeed/internal/output"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the post-commit hook that keeps the feed current",
}

var hookInstallCmd = &cobra.Command{
	Use:          "install",
	Short:        "Install the post-commit hook",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		root, _ := cmd.Flags().GetString("root")
		path, err := hook.Install(root)
		if err != nil {
			return errors.WrapWithMessage(err, errors.Repository, "installing hook",
				"Run inside the repository root, or pass --root",
				"If a foreign post-commit hook exists, add 'updatefeed generate --lock --quiet' to it manually")
		}
		output.PrintArtifact(cmd.OutOrStdout(), "hook", path)
		return nil
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:          "uninstall",
	Short:        "Remove the post-commit hook",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		root, _ := cmd.Flags().GetString("root")
		if err := hook.Uninstall(root); err != nil {
			return errors.WrapWithMessage(err, errors.Repository, "uninstalling hook")
		}
		output.PrintSummary(cmd.OutOrStdout(), "post-commit hook removed")
		return nil
	},
}

func init() {
	hookCmd.PersistentFlags().String("root", ".", "Repository root")
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
	rootCmd.AddCommand(hookCmd)
}
