package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aezell/docsync/internal/analysis"
	"github.com/aezell/docsync/internal/api"
	"github.com/aezell/docsync/internal/config"
	"github.com/aezell/docsync/internal/model"
	"github.com/aezell/docsync/internal/service"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func init() {
	color.NoColor = true
}

// resetFlags restores every flag to its default; cobra keeps flag values
// between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// mockService starts the mock service and points a config file at it.
func mockService(t *testing.T) (*api.Server, string) {
	t.Helper()
	srv := api.New("")
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := fmt.Sprintf("service:\n  local_url: %s\n", ts.URL)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvVar, "local")
	return srv, path
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, want := range []string{"ui", "analyze", "commit", "complexity", "serve", "version"} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}
}

func TestVersionOutput(t *testing.T) {
	// version vars are set via ldflags; in tests they have their defaults
	if version != "dev" {
		t.Errorf("expected default version %q, got %q", "dev", version)
	}
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "docsync dev") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestAnalyzeJSON(t *testing.T) {
	_, cfgPath := mockService(t)

	out, err := execute(t, "", "analyze", "--config", cfgPath, "--format", "json",
		"https://github.com/acme/widgets.git")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var reports []jsonReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	r := reports[0]
	if r.Name != "acme/widgets" {
		t.Errorf("name = %q", r.Name)
	}
	if !strings.Contains(r.Readme, "git clone https://github.com/acme/widgets.git") {
		t.Errorf("unexpected readme:\n%s", r.Readme)
	}
	if len(r.Issues) != 3 {
		t.Errorf("expected 3 issues, got %d", len(r.Issues))
	}
	if r.Summary != "1 critical, 1 medium, 1 low" {
		t.Errorf("summary = %q", r.Summary)
	}
}

func TestAnalyzeReportsFailures(t *testing.T) {
	_, cfgPath := mockService(t)

	out, err := execute(t, "", "analyze", "--config", cfgPath, "--format", "json",
		"https://github.com/acme/widgets", "not-a-url")
	if err == nil || !strings.Contains(err.Error(), "1 of 2 analyses failed") {
		t.Fatalf("expected a partial failure, got %v", err)
	}

	var reports []jsonReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].Error != "" {
		t.Errorf("first analysis should succeed, got %q", reports[0].Error)
	}
	if reports[1].Error != "could not identify the repository from the URL" {
		t.Errorf("second error = %q", reports[1].Error)
	}
}

func TestAnalyzeTextAndMarkdown(t *testing.T) {
	_, cfgPath := mockService(t)

	out, err := execute(t, "", "analyze", "--config", cfgPath, "--format", "text",
		"https://github.com/acme/widgets")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"acme/widgets", "Issues: 1 critical, 1 medium, 1 low", "critical", "(feature/login)"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "", "analyze", "--config", cfgPath, "--format", "markdown",
		"https://github.com/acme/widgets")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "| critical | SQL injection in authentication | `feature/login` |") {
		t.Errorf("markdown table missing row:\n%s", out)
	}
}

func TestAnalyzeHTML(t *testing.T) {
	_, cfgPath := mockService(t)

	out, err := execute(t, "", "analyze", "--config", cfgPath, "--format", "html",
		"https://github.com/acme/widgets")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"<h2>Description</h2>",
		`<span class="token-keyword">await</span>`,
		`<div class="pane removed">`,
		".token-keyword {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html output missing %q", want)
		}
	}
}

func TestAnalyzeUnknownFormat(t *testing.T) {
	_, err := execute(t, "", "analyze", "--format", "yaml", "https://github.com/acme/widgets")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}

type countingService struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (c *countingService) Analyze(ctx context.Context, repoURL string) (*service.AnalyzeResult, error) {
	n := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	if strings.Contains(repoURL, "broken") {
		return nil, &service.ServiceError{Op: "analyze", Status: 500, Message: service.GenericAnalyzeError}
	}
	return &service.AnalyzeResult{
		Document: "# " + repoURL,
		Issues:   []model.Issue{{Title: "t", Severity: model.SeverityLow}},
	}, nil
}

func (c *countingService) Commit(ctx context.Context, repoURL, content string) (*service.CommitResult, error) {
	return &service.CommitResult{}, nil
}

func TestAnalyzeAllKeepsOrderAndLimit(t *testing.T) {
	svc := &countingService{}
	urls := []string{
		"https://github.com/a/one",
		"https://github.com/a/broken",
		"https://github.com/a/three",
		"https://github.com/a/four",
	}

	reports := analyzeAll(context.Background(), svc, urls, 2, time.Second)

	if len(reports) != len(urls) {
		t.Fatalf("expected %d reports, got %d", len(urls), len(reports))
	}
	for i, r := range reports {
		if r.RepoURL != urls[i] {
			t.Errorf("report %d is for %s", i, r.RepoURL)
		}
	}
	var se *service.ServiceError
	if !errors.As(reports[1].Err, &se) {
		t.Errorf("expected a service error for the broken repo, got %v", reports[1].Err)
	}
	if reports[2].Err != nil || reports[2].Name != "a/three" {
		t.Errorf("a failure should not affect other repos: %+v", reports[2])
	}
	if p := svc.peak.Load(); p > 2 {
		t.Errorf("expected at most 2 concurrent requests, saw %d", p)
	}
}

func TestCommitRequiresConfirmation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	os.WriteFile(path, []byte("# doc\n"), 0o644)

	_, err := execute(t, "", "commit", "https://github.com/acme/widgets", "--file", path)
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Errorf("expected confirmation error, got %v", err)
	}
}

func TestCommitWithYes(t *testing.T) {
	srv, cfgPath := mockService(t)

	out, err := execute(t, "# Widgets\n", "commit", "--config", cfgPath,
		"https://github.com/acme/widgets", "--file", "-", "--yes")
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if !strings.Contains(out, "README.md committed successfully!") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "https://github.com/acme/widgets/blob/main/README.md") {
		t.Errorf("expected the commit URL, got %q", out)
	}
	if doc, ok := srv.Committed("https://github.com/acme/widgets"); !ok || doc != "# Widgets\n" {
		t.Errorf("service stored %q, %v", doc, ok)
	}
}

func TestCommitEmptyDocument(t *testing.T) {
	_, err := execute(t, "  \n", "commit", "https://github.com/acme/widgets", "--file", "-", "--yes")
	if err == nil || !strings.Contains(err.Error(), "nothing to commit") {
		t.Errorf("expected empty document error, got %v", err)
	}
}

func TestComplexityText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sort.js")
	if err := os.WriteFile(path, []byte(analysis.BubbleSortSample), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "complexity", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Complexity: O(n²) (bad)", "Bottlenecks:", "Nested loops", "merge sort"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestComplexityJSONFromStdin(t *testing.T) {
	out, err := execute(t, analysis.BubbleSortSample, "complexity", "--format", "json", "--skip", "loop_nesting", "-")
	if err != nil {
		t.Fatal(err)
	}
	var est jsonEstimate
	if err := json.Unmarshal([]byte(out), &est); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	for _, f := range est.Findings {
		if f.Pass == "loop_nesting" {
			t.Errorf("skipped pass reported a finding: %+v", f)
		}
	}
}

func TestComplexityBlankSnippet(t *testing.T) {
	_, err := execute(t, "   ", "complexity", "-")
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected a validation error, got %v", err)
	}
}
