package cli

import (
	"fmt"
	"os"

	"github.com/aezell/docsync/internal/debug"
	"github.com/aezell/docsync/internal/service"
	"github.com/aezell/docsync/internal/tui"
	"github.com/spf13/cobra"
)

const defaultDebugFile = "docsync-debug.log"

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive client (default)",
	Long: `Open the full-screen client. Enter a repository URL on the Analyze
view; the README and Issues views unlock once an analysis completes.
Complexity is always available. Press ? for key bindings.

Set DOCSYNC_DEBUG=1 to log to DOCSYNC_DEBUG_FILE (default docsync-debug.log).`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := os.Getenv("DOCSYNC_DEBUG_FILE")
	if path == "" {
		path = defaultDebugFile
	}
	logFile, err := debug.ToFile(path)
	if err != nil {
		return fmt.Errorf("opening debug log: %w", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	base := cfg.ServiceBase()
	debug.Log("service base %s", base)
	return tui.Run(tui.Options{
		Service:     service.NewClient(base),
		ServiceBase: base,
		Config:      cfg,
	})
}
