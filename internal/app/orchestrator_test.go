package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/aezell/docsync/internal/model"
	"github.com/aezell/docsync/internal/nav"
	"github.com/aezell/docsync/internal/service"
	"github.com/aezell/docsync/internal/session"
)

type fakeService struct {
	analyzeCalls int
	commitCalls  int
	result       *service.AnalyzeResult
	commit       *service.CommitResult
	err          error
}

func (f *fakeService) Analyze(ctx context.Context, repoURL string) (*service.AnalyzeResult, error) {
	f.analyzeCalls++
	return f.result, f.err
}

func (f *fakeService) Commit(ctx context.Context, repoURL, content string) (*service.CommitResult, error) {
	f.commitCalls++
	return f.commit, f.err
}

func setup(svc Service) (*Orchestrator, *session.Store, *nav.Navigator) {
	store := session.New()
	n := nav.New(store)
	return New(svc, store, n), store, n
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://example.com/acme/widgets.git", "acme/widgets"},
		{"https://github.com/acme/widgets", "acme/widgets"},
		{"https://github.com/acme/widgets/", "acme/widgets"},
		{"  https://github.com/acme/widgets.git  ", "acme/widgets"},
		{"widgets.git", "widgets"},
		{"acme/widgets", "acme/widgets"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.in); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRunAnalysisSuccess(t *testing.T) {
	svc := &fakeService{result: &service.AnalyzeResult{
		Document: "# Widgets",
		Issues:   []model.Issue{{Title: "one", Severity: model.SeverityCritical}},
	}}
	o, store, n := setup(svc)

	out, err := o.RunAnalysis(context.Background(), "  https://example.com/acme/widgets.git ")
	if err != nil {
		t.Fatalf("RunAnalysis: %v", err)
	}
	if out.DisplayName != "acme/widgets" {
		t.Errorf("display name %q", out.DisplayName)
	}
	if out.RepoURL != "https://example.com/acme/widgets.git" {
		t.Errorf("repo url not trimmed: %q", out.RepoURL)
	}
	if out.Generation != 1 || store.Generation() != 1 {
		t.Errorf("expected generation 1, got %d/%d", out.Generation, store.Generation())
	}
	if !store.Completed() || store.Document() != "# Widgets" || store.IssueCount() != 1 {
		t.Errorf("store not updated: %+v", store.Snapshot())
	}
	if n.Current() != nav.ViewReadme {
		t.Errorf("expected readme view, got %s", n.Current())
	}
	if o.Analyzing() {
		t.Error("busy state not released")
	}
}

func TestRunAnalysisEmptyInput(t *testing.T) {
	svc := &fakeService{}
	o, store, n := setup(svc)

	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := o.RunAnalysis(context.Background(), in)
		var ve *model.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("input %q: expected ValidationError, got %v", in, err)
		}
	}
	if svc.analyzeCalls != 0 {
		t.Errorf("expected no network calls, got %d", svc.analyzeCalls)
	}
	if store.Completed() || n.Current() != nav.ViewInput {
		t.Error("validation failure changed state")
	}
}

func TestRunAnalysisFailureLeavesStateUntouched(t *testing.T) {
	svc := &fakeService{result: &service.AnalyzeResult{Document: "# First"}}
	o, store, n := setup(svc)
	if _, err := o.RunAnalysis(context.Background(), "https://x/a/b"); err != nil {
		t.Fatal(err)
	}
	if err := n.Request(nav.ViewInput); err != nil {
		t.Fatal(err)
	}
	before := store.Snapshot()

	svc.err = &service.ServiceError{Op: "analyze", Status: 500, Message: service.GenericAnalyzeError}
	_, err := o.RunAnalysis(context.Background(), "https://x/c/d")
	if err == nil || err.Error() != service.GenericAnalyzeError {
		t.Fatalf("expected generic service error, got %v", err)
	}

	after := store.Snapshot()
	if after.Generation != before.Generation || after.Document != before.Document || after.RepoURL != before.RepoURL {
		t.Errorf("failed analysis mutated session: %+v -> %+v", before, after)
	}
	if n.Current() != nav.ViewInput {
		t.Errorf("failed analysis changed view to %s", n.Current())
	}
	if o.Analyzing() {
		t.Error("busy state not released after failure")
	}
}

func TestBeginAnalysisBusy(t *testing.T) {
	o, _, _ := setup(&fakeService{})
	t1, err := o.BeginAnalysis("https://x/a/b")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := o.BeginAnalysis("https://x/c/d"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy while in flight, got %v", err)
	}
	o.CompleteAnalysis(t1, nil, errors.New("down"))
	if _, err := o.BeginAnalysis("https://x/c/d"); err != nil {
		t.Errorf("expected control re-enabled, got %v", err)
	}
}

func TestCompleteAnalysisNilResult(t *testing.T) {
	o, store, _ := setup(&fakeService{})
	tk, _ := o.BeginAnalysis("https://x/a/b")
	out, err := o.CompleteAnalysis(tk, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Document != "" || len(out.Issues) != 0 || !store.Completed() {
		t.Errorf("unexpected outcome %+v", out)
	}
}

// Scenario: the service answers 500 with no body.
func TestRunAnalysisAgainstHTTP500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	o, store, n := setup(service.NewClient(srv.URL))
	_, err := o.RunAnalysis(context.Background(), "https://example.com/acme/widgets.git")
	if err == nil || err.Error() != service.GenericAnalyzeError {
		t.Fatalf("expected generic message, got %v", err)
	}
	if n.Current() != nav.ViewInput || store.Completed() {
		t.Error("expected to remain on input with an empty session")
	}
}

// Scenario: the service returns an empty document and no issues.
func TestRunAnalysisEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"bugs": [], "readme": ""}`)
	}))
	defer srv.Close()

	o, store, n := setup(service.NewClient(srv.URL))
	out, err := o.RunAnalysis(context.Background(), "https://example.com/acme/widgets.git")
	if err != nil {
		t.Fatal(err)
	}
	if out.Document != "" || len(out.Issues) != 0 {
		t.Errorf("unexpected outcome %+v", out)
	}
	if !store.Completed() || n.Current() != nav.ViewReadme {
		t.Error("empty payload should still complete the analysis")
	}
}

func TestCommitDocument(t *testing.T) {
	svc := &fakeService{commit: &service.CommitResult{Message: "done", URL: "https://x"}}
	o, _, _ := setup(svc)

	res, err := o.CommitDocument(context.Background(), "https://x/a/b", "# Doc")
	if err != nil {
		t.Fatal(err)
	}
	if res.Message != "done" {
		t.Errorf("unexpected result %+v", res)
	}
	if o.Committing() {
		t.Error("commit control not released")
	}
}

func TestCommitDocumentRequiresDocument(t *testing.T) {
	svc := &fakeService{}
	o, _, _ := setup(svc)

	_, err := o.CommitDocument(context.Background(), "https://x/a/b", "")
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
	_, err = o.CommitDocument(context.Background(), " ", "# Doc")
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for missing repo, got %v", err)
	}
	if svc.commitCalls != 0 {
		t.Errorf("expected no commit calls, got %d", svc.commitCalls)
	}
}

func TestCommitFailureReleasesControl(t *testing.T) {
	svc := &fakeService{err: &service.ServiceError{Op: "commit", Status: 500, Message: "nope"}}
	o, _, _ := setup(svc)

	if _, err := o.CommitDocument(context.Background(), "https://x/a/b", "# Doc"); err == nil || err.Error() != "nope" {
		t.Errorf("expected service error, got %v", err)
	}
	if o.Committing() {
		t.Error("commit control not released after failure")
	}
}

func TestCommitIndependentOfAnalysis(t *testing.T) {
	svc := &fakeService{commit: &service.CommitResult{Message: "ok"}}
	o, _, _ := setup(svc)

	if _, err := o.BeginAnalysis("https://x/a/b"); err != nil {
		t.Fatal(err)
	}
	if _, err := o.CommitDocument(context.Background(), "https://x/a/b", "# Doc"); err != nil {
		t.Errorf("commit blocked by in-flight analysis: %v", err)
	}
	if _, err := o.BeginCommit("https://x/a/b", "# Doc"); err != nil {
		t.Fatal(err)
	}
	if _, err := o.BeginAnalysis("x"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected analysis still busy, got %v", err)
	}
}

func TestAnalysisProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		svc := &fakeService{result: &service.AnalyzeResult{Document: "# D"}}
		o, store, n := setup(svc)

		blank := rapid.StringMatching(`[ \t\n]{0,6}`).Draw(t, "blank")
		if _, err := o.RunAnalysis(context.Background(), blank); err == nil {
			t.Fatalf("blank input %q accepted", blank)
		}
		if svc.analyzeCalls != 0 || store.Completed() {
			t.Fatalf("blank input reached the service or mutated the session")
		}
		if err := n.Request(nav.ViewIssues); !errors.Is(err, nav.ErrNavigationDenied) {
			t.Fatalf("gated view reachable before analysis: %v", err)
		}

		repo := rapid.StringMatching(`https://[a-z]{1,8}\.com/[a-z]{1,8}/[a-z]{1,8}(\.git)?`).Draw(t, "repo")
		out, err := o.RunAnalysis(context.Background(), repo)
		if err != nil {
			t.Fatalf("RunAnalysis(%q): %v", repo, err)
		}
		if !store.Completed() || n.Current() != nav.ViewReadme || out.Generation != 1 {
			t.Fatalf("unexpected state after success: gen=%d view=%s", out.Generation, n.Current())
		}
		if strings.HasSuffix(out.DisplayName, ".git") || strings.Count(out.DisplayName, "/") != 1 {
			t.Fatalf("bad display name %q", out.DisplayName)
		}

		views := rapid.SliceOfN(rapid.SampledFrom(nav.Views), 1, 20).Draw(t, "views")
		for _, v := range views {
			if err := n.Request(v); err != nil {
				t.Fatalf("request %s after success: %v", v, err)
			}
		}
	})
}
