package cli

import (
	"fmt"

	"github.com/aezell/docsync/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the mock analysis service",
	Long: `Run a local stand-in for the analysis service. It answers every
analysis with a canned document and three sample issues, and accepts
commits without touching any repository.

Point the client at it with --local or DOCSYNC_ENV=local.

Endpoints:
  GET  /health   Health check
  POST /analyze  {"repo_url": ...} -> {"readme": ..., "bugs": [...]}
  POST /commit   {"repo_url": ..., "readme_content": ...} -> {"success", "message", "url"}`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1", "address to listen on")
	serveCmd.Flags().IntP("port", "p", 5000, "port to listen on")
	serveCmd.Flags().Duration("latency", 0, "artificial delay before each response")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	port, _ := cmd.Flags().GetInt("port")
	latency, _ := cmd.Flags().GetDuration("latency")

	listen := fmt.Sprintf("%s:%d", addr, port)
	srv := api.New(listen, api.WithLatency(latency))
	return srv.ListenAndServe()
}
