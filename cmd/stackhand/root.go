// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"stackhand/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"

	// verbose enables debug logging.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string
	// pkgScope pre-selects the package to operate on by name.
	pkgScope string

	rootCmd = &cobra.Command{
		Use:   "stackhand",
		Short: "An interactive front-end for the stack build tool",
		Long: TitleStyle.Render("stackhand") + SubtitleStyle.Render(" - an interactive front-end for stack") + `

stackhand finds the enclosing Haskell project, lists its packages and
buildable targets, and turns your choices into correctly quoted stack
invocations. Finished output is scanned for coverage reports and
haddock indexes, which can be opened automatically.

` + SubtitleStyle.Render("Examples:") + `
  stackhand build           Build a target of the current package
  stackhand test --edit     Edit the test command line before it runs
  stackhand targets         List the current package's targets
  stackhand versions text   Show installed versions of a package
  stackhand watch           Re-scan the project when manifests change`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/stackhand/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&pkgScope, "package", "p", "", "operate on the named package instead of the current one")

	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(haddockCmd)
	rootCmd.AddCommand(packagesCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(installedCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Execute runs the CLI through fang for consistent styling and exits
// non-zero on error.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	return cfg, nil
}
