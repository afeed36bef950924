package cli

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/aezell/docsync/internal/app"
	"github.com/aezell/docsync/internal/config"
	"github.com/aezell/docsync/internal/diff"
	"github.com/aezell/docsync/internal/model"
	"github.com/aezell/docsync/internal/service"
	"github.com/aezell/docsync/internal/typewriter"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze URL...",
	Short: "Analyze repositories and print the document and issues",
	Long: `Analyze one or more repositories without the interactive client.
Each URL runs in its own session; up to --parallel requests are in flight.

Exit codes:
  0 - every analysis succeeded
  1 - at least one analysis failed`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("format", "f", "text", "output format: text, json, markdown, html")
	analyzeCmd.Flags().IntP("parallel", "p", 4, "maximum concurrent requests")
	analyzeCmd.Flags().Duration("timeout", 2*time.Minute, "per-repository request timeout")
	analyzeCmd.Flags().Bool("no-color", false, "disable coloured text output")
}

// report is the outcome of one repository's analysis.
type report struct {
	RepoURL  string
	Name     string
	Document string
	Issues   []model.Issue
	Err      error
}

var formats = map[string]func(io.Writer, []report, config.Config) error{
	"text":     outputText,
	"json":     outputJSON,
	"markdown": outputMarkdown,
	"html":     outputHTML,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	write, ok := formats[format]
	if !ok {
		return fmt.Errorf("unknown format %q (want text, json, markdown or html)", format)
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color.NoColor = true
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	parallel, _ := cmd.Flags().GetInt("parallel")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	client := service.NewClient(cfg.ServiceBase())
	reports := analyzeAll(cmd.Context(), client, args, parallel, timeout)

	if err := write(cmd.OutOrStdout(), reports, cfg); err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
			warnf("%s: %v", r.RepoURL, r.Err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(reports))
	}
	return nil
}

// analyzeAll runs every URL through its own orchestrator. Failures are
// recorded per report and never cancel the other requests.
func analyzeAll(ctx context.Context, svc app.Service, urls []string, parallel int, timeout time.Duration) []report {
	if ctx == nil {
		ctx = context.Background()
	}
	reports := make([]report, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))
	for i, u := range urls {
		g.Go(func() error {
			rctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			out, err := newOrchestrator(svc).RunAnalysis(rctx, u)
			reports[i] = report{
				RepoURL:  strings.TrimSpace(u),
				Name:     out.DisplayName,
				Document: out.Document,
				Issues:   out.Issues,
				Err:      err,
			}
			if err == nil {
				warnf("Analyzed %s in %s", out.DisplayName, time.Since(start).Round(time.Millisecond))
			}
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

var severityColors = map[model.Severity]*color.Color{
	model.SeverityCritical: color.New(color.FgRed, color.Bold),
	model.SeverityMedium:   color.New(color.FgYellow),
	model.SeverityLow:      color.New(color.FgCyan),
}

var headerColor = color.New(color.FgMagenta, color.Bold)

func outputText(w io.Writer, reports []report, _ config.Config) error {
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if r.Err != nil {
			fmt.Fprintf(w, "%s  failed: %v\n", headerColor.Sprint(r.RepoURL), r.Err)
			continue
		}
		fmt.Fprintf(w, "%s  %s\n\n", headerColor.Sprint(r.Name), r.RepoURL)
		if strings.TrimSpace(r.Document) == "" {
			fmt.Fprintln(w, "(empty document)")
		} else {
			fmt.Fprintln(w, strings.TrimRight(r.Document, "\n"))
		}

		fmt.Fprintf(w, "\nIssues: %s\n", model.Summary(r.Issues))
		for _, is := range r.Issues {
			sev := severityColors[is.Severity].Sprintf("%-8s", is.Severity)
			loc := ""
			if is.LocationLabel != "" {
				loc = " (" + is.LocationLabel + ")"
			}
			fmt.Fprintf(w, "  %s %s%s\n", sev, is.Title, loc)
		}
	}
	return nil
}

type jsonReport struct {
	RepoURL string                `json:"repo_url"`
	Name    string                `json:"name,omitempty"`
	Readme  string                `json:"readme"`
	Summary string                `json:"summary,omitempty"`
	Issues  []service.IssueRecord `json:"issues"`
	Error   string                `json:"error,omitempty"`
}

func outputJSON(w io.Writer, reports []report, _ config.Config) error {
	out := make([]jsonReport, 0, len(reports))
	for _, r := range reports {
		jr := jsonReport{RepoURL: r.RepoURL, Issues: []service.IssueRecord{}}
		if r.Err != nil {
			jr.Error = r.Err.Error()
			out = append(out, jr)
			continue
		}
		jr.Name = r.Name
		jr.Readme = r.Document
		jr.Summary = model.Summary(r.Issues)
		for _, is := range r.Issues {
			jr.Issues = append(jr.Issues, service.FromIssue(is))
		}
		out = append(out, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func outputMarkdown(w io.Writer, reports []report, _ config.Config) error {
	for _, r := range reports {
		if r.Err != nil {
			fmt.Fprintf(w, "## %s\n\nAnalysis failed: %v\n\n", r.RepoURL, r.Err)
			continue
		}
		fmt.Fprintf(w, "## %s\n\n", r.Name)
		fmt.Fprintf(w, "%s\n\n", strings.TrimRight(r.Document, "\n"))
		fmt.Fprintf(w, "### Issues\n\n**%s**\n\n", model.Summary(r.Issues))
		if len(r.Issues) == 0 {
			continue
		}
		fmt.Fprintln(w, "| Severity | Issue | Location |")
		fmt.Fprintln(w, "|----------|-------|----------|")
		for _, is := range r.Issues {
			loc := is.LocationLabel
			if loc != "" {
				loc = "`" + loc + "`"
			}
			fmt.Fprintf(w, "| %s | %s | %s |\n", is.Severity, strings.ReplaceAll(is.Title, "|", `\|`), loc)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func outputHTML(w io.Writer, reports []report, cfg config.Config) error {
	conv := typewriter.HTML()
	palette := diff.NewPalette(cfg.UI.Style)

	fmt.Fprint(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>docsync report</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 960px; margin: 40px auto; padding: 0 20px; background: #282a36; color: #f8f8f2; }
  h1, h2 { color: #bd93f9; }
  a { color: #8be9fd; }
  .readme { background: #343746; padding: 16px 24px; border-radius: 8px; }
  .issue { border-top: 1px solid #44475a; padding: 12px 0; }
  .sev-critical { color: #ff5555; font-weight: bold; }
  .sev-medium { color: #f1fa8c; }
  .sev-low { color: #8be9fd; }
  .location { color: #6272a4; }
  .tag { background: #44475a; padding: 2px 8px; border-radius: 4px; font-size: 0.85em; }
  .panes { display: grid; grid-template-columns: 1fr 1fr; gap: 8px; }
  .pane { background: #21222c; border-radius: 4px; overflow-x: auto; font-family: monospace; font-size: 0.9em; }
  .pane.removed { border-left: 3px solid #ff5555; }
  .pane.added { border-left: 3px solid #50fa7b; }
  .row { white-space: pre; }
  .num { color: #6272a4; display: inline-block; width: 3em; text-align: right; padding-right: 8px; }
  .failed { color: #ff5555; }
  footer { margin-top: 32px; color: #6272a4; font-size: 0.85em; }
`)
	for _, c := range []diff.Class{diff.ClassKeyword, diff.ClassString, diff.ClassComment, diff.ClassFunction} {
		if col := palette.Color(c); col != "" {
			fmt.Fprintf(w, "  .%s { color: %s; }\n", c.CSSClass(), col)
		}
	}
	fmt.Fprint(w, `</style>
</head>
<body>
<h1>docsync report</h1>
`)

	for _, r := range reports {
		if r.Err != nil {
			fmt.Fprintf(w, "<h2>%s</h2>\n<p class=\"failed\">Analysis failed: %s</p>\n",
				html.EscapeString(r.RepoURL), html.EscapeString(r.Err.Error()))
			continue
		}

		doc, err := conv.Convert(r.Document)
		if err != nil {
			return fmt.Errorf("rendering document for %s: %w", r.Name, err)
		}
		fmt.Fprintf(w, "<h2>%s</h2>\n<div class=\"readme\">\n%s</div>\n", html.EscapeString(r.Name), doc)
		fmt.Fprintf(w, "<h2>Issues</h2>\n<p>%s</p>\n", html.EscapeString(model.Summary(r.Issues)))
		for _, is := range r.Issues {
			writeIssueHTML(w, is)
		}
	}

	fmt.Fprintln(w, `<footer>Generated by <strong>docsync</strong></footer>
</body>
</html>`)
	return nil
}

func writeIssueHTML(w io.Writer, is model.Issue) {
	fmt.Fprintf(w, "<div class=\"issue\">\n<h3>%s</h3>\n", html.EscapeString(is.Title))
	fmt.Fprintf(w, "<p><span class=\"sev-%s\">%s</span> <span class=\"location\">%s</span>",
		is.Severity, is.Severity, html.EscapeString(is.LocationLabel))
	if is.Category != "" {
		fmt.Fprintf(w, " <span class=\"tag\">%s</span>", html.EscapeString(is.Category))
	}
	fmt.Fprintln(w, "</p>")
	if is.Problem != "" {
		fmt.Fprintf(w, "<p><strong>Problem:</strong> %s</p>\n", html.EscapeString(is.Problem))
	}
	if is.Suggestion != "" {
		fmt.Fprintf(w, "<p><strong>Suggestion:</strong> %s</p>\n", html.EscapeString(is.Suggestion))
	}
	if is.HasCode() {
		panes := diff.RenderDiff(is.CodeBefore, is.CodeAfter)
		fmt.Fprintln(w, `<div class="panes">`)
		writePaneHTML(w, "removed", panes.Removed)
		writePaneHTML(w, "added", panes.Added)
		fmt.Fprintln(w, `</div>`)
	}
	fmt.Fprintln(w, "</div>")
}

func writePaneHTML(w io.Writer, side string, lines []diff.DiffLine) {
	fmt.Fprintf(w, "<div class=\"pane %s\">\n", side)
	for _, l := range lines {
		fmt.Fprintf(w, "<div class=\"row\"><span class=\"num\">%d</span>%s</div>\n", l.Number, l.Text)
	}
	fmt.Fprintln(w, "</div>")
}
