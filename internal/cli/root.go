// Package cli implements the docsync command tree.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aezell/docsync/internal/app"
	"github.com/aezell/docsync/internal/config"
	"github.com/aezell/docsync/internal/nav"
	"github.com/aezell/docsync/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "docsync",
	Short: "Generate, review and commit repository READMEs",
	Long: `docsync sends a repository URL to the analysis service, types the
generated README into view and lists the issues the service found, each
with a side-by-side before/after diff.

Without a subcommand the interactive client is started.

Examples:
  docsync                                   # interactive client
  docsync --local                           # against a local service
  docsync analyze https://github.com/o/r    # print document and issues
  docsync serve                             # run the mock service`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: applyGlobalFlags,
	RunE:              runUI,
}

func init() {
	rootCmd.PersistentFlags().Bool("local", false, "use the local analysis service (same as "+config.EnvVar+"=local)")
	rootCmd.PersistentFlags().String("config", "", "config file (.yaml, .yml or .toml)")

	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(complexityCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func applyGlobalFlags(cmd *cobra.Command, args []string) error {
	local, _ := cmd.Flags().GetBool("local")
	if local {
		if err := os.Setenv(config.EnvVar, "local"); err != nil {
			return fmt.Errorf("setting %s: %w", config.EnvVar, err)
		}
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newOrchestrator wires a fresh session to svc. Each non-interactive run
// gets its own session.
func newOrchestrator(svc app.Service) *app.Orchestrator {
	store := session.New()
	return app.New(svc, store, nav.New(store))
}

// readSource reads path, or stdin when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// stdinIsTerminal reports whether the command reads from an interactive
// terminal.
func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && isTerminal(f)
}

func warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(os.Stderr, msg)
}
