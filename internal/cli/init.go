package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/updatefeed/updatefeed/internal/config"
	"github.com/updatefeed/updatefeed/internal/errors"
	"github.com/updatefeed/updatefeed/internal/output"
	"github.com/updatefeed/updatefeed/internal/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config and optional framework endpoint files",
	Long: `Init writes a commented default config to .updatefeed/config.yml and,
when --framework is given, scaffolds an endpoint file that serves the
generated artifacts for that framework.`,
	Example: `  updatefeed init
  updatefeed init --framework nextjs
  updatefeed init --framework sveltekit --root ./web`,
	SilenceUsage: true,
	RunE:         runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("root", ".", "Project directory to initialize")
	initCmd.Flags().String("framework", "", fmt.Sprintf("Scaffold an endpoint for a framework (%v)", scaffold.Frameworks()))
}

func runInit(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	framework, _ := cmd.Flags().GetString("framework")
	out := cmd.OutOrStdout()

	configPath := filepath.Join(root, config.ProjectConfigPath())
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "creating config directory")
		}
		if err := os.WriteFile(configPath, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "writing default config")
		}
		output.PrintArtifact(out, "config", configPath)
	} else {
		output.PrintWarning(out, "config already exists at "+configPath)
	}

	if framework == "" {
		return nil
	}

	written, err := scaffold.Generate(scaffold.Framework(framework), root)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Argument, "scaffolding endpoint",
			fmt.Sprintf("Choose one of the supported frameworks: %v", scaffold.Frameworks()))
	}
	for _, path := range written {
		output.PrintArtifact(out, "file", path)
	}
	if len(written) == 0 {
		output.PrintWarning(out, "endpoint files already exist, nothing written")
	}
	return nil
}
