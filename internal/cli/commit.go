package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/aezell/docsync/internal/app"
	"github.com/aezell/docsync/internal/service"
	"github.com/aezell/docsync/internal/tui"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit URL",
	Short: "Commit a README to a repository",
	Long: `Send a document to the service, which commits it as README.md to the
repository. Asks for confirmation unless --yes is given; when stdin is not
a terminal --yes is required.

Examples:
  docsync commit https://github.com/o/r                 # commits ./README.md
  docsync commit https://github.com/o/r -f docs/new.md
  cat README.md | docsync commit https://github.com/o/r -f - --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runCommit,
}

func init() {
	commitCmd.Flags().StringP("file", "f", "README.md", "document to commit, or - for stdin")
	commitCmd.Flags().BoolP("yes", "y", false, "commit without asking")
	commitCmd.Flags().Bool("open", false, "open the committed file in the browser")
}

func runCommit(cmd *cobra.Command, args []string) error {
	repoURL := strings.TrimSpace(args[0])
	path, _ := cmd.Flags().GetString("file")

	doc, err := readSource(cmd, path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(doc) == "" {
		return fmt.Errorf("%s is empty; nothing to commit", path)
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if path == "-" || !stdinIsTerminal(cmd) {
			return fmt.Errorf("refusing to commit without confirmation; pass --yes")
		}
		ok, err := confirmCommit(path, repoURL)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "Commit cancelled.")
			return nil
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	res, err := newOrchestrator(service.NewClient(cfg.ServiceBase())).CommitDocument(cmd.Context(), repoURL, doc)
	if err != nil {
		return fmt.Errorf("committing document: %w", err)
	}

	out := cmd.OutOrStdout()
	msg := res.Message
	if msg == "" {
		msg = "Document committed"
	}
	fmt.Fprintln(out, msg)
	if res.URL == "" {
		return nil
	}
	fmt.Fprintln(out, res.URL)

	if open, _ := cmd.Flags().GetBool("open"); open {
		if err := tui.OpenBrowser(res.URL); err != nil {
			warnf("Warning: could not open %s: %v", res.URL, err)
		}
	}
	return nil
}

func confirmCommit(path, repoURL string) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Commit %s to %s?", path, app.DisplayName(repoURL))).
				Description("The service writes it as README.md on the default branch").
				Value(&confirmed).
				Affirmative("Commit").
				Negative("Cancel"),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirming commit: %w", err)
	}
	return confirmed, nil
}
