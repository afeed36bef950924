// Package app coordinates an analysis session: it validates input, calls the
// analysis service, records the result in the session store and moves the
// navigator to the results view. It also runs the commit flow.
//
// Each operation is split into Begin / network step / Complete so that an
// event loop can run the network step off its own goroutine while every
// state change stays on the caller's goroutine. Run* and CommitDocument
// chain the three steps for synchronous callers.
package app

import (
	"context"
	"errors"
	"strings"

	"github.com/aezell/docsync/internal/debug"
	"github.com/aezell/docsync/internal/model"
	"github.com/aezell/docsync/internal/nav"
	"github.com/aezell/docsync/internal/service"
	"github.com/aezell/docsync/internal/session"
)

// ErrBusy is returned when the control for an operation is disabled because
// the same operation is still in flight.
var ErrBusy = errors.New("operation already in progress")

// Service is the subset of the analysis service the orchestrator needs.
type Service interface {
	Analyze(ctx context.Context, repoURL string) (*service.AnalyzeResult, error)
	Commit(ctx context.Context, repoURL, content string) (*service.CommitResult, error)
}

// AnalysisTicket identifies one in-flight analysis.
type AnalysisTicket struct {
	RepoURL string
	seq     uint64
}

// Outcome describes a successful analysis.
type Outcome struct {
	Generation  uint64
	RepoURL     string
	DisplayName string
	Document    string
	Issues      []model.Issue
}

// CommitTicket identifies one in-flight commit.
type CommitTicket struct {
	RepoURL  string
	Document string
}

// Orchestrator is the only writer of the session store.
type Orchestrator struct {
	svc   Service
	store *session.Store
	nav   *nav.Navigator

	analyzing  bool
	committing bool
	seq        uint64
}

// New wires an Orchestrator to its collaborators.
func New(svc Service, store *session.Store, navigator *nav.Navigator) *Orchestrator {
	return &Orchestrator{svc: svc, store: store, nav: navigator}
}

// Analyzing reports whether an analysis is in flight.
func (o *Orchestrator) Analyzing() bool { return o.analyzing }

// Committing reports whether a commit is in flight.
func (o *Orchestrator) Committing() bool { return o.committing }

// BeginAnalysis validates input and marks an analysis in flight.
func (o *Orchestrator) BeginAnalysis(input string) (AnalysisTicket, error) {
	repoURL := strings.TrimSpace(input)
	if repoURL == "" {
		return AnalysisTicket{}, model.NewValidationError("repo_url", "enter a repository URL")
	}
	if o.analyzing {
		return AnalysisTicket{}, ErrBusy
	}
	o.analyzing = true
	o.seq++
	debug.Log("analysis %d started for %s", o.seq, repoURL)
	return AnalysisTicket{RepoURL: repoURL, seq: o.seq}, nil
}

// Fetch performs the network step. It touches no orchestrator state and is
// safe to call from another goroutine.
func (o *Orchestrator) Fetch(ctx context.Context, t AnalysisTicket) (*service.AnalyzeResult, error) {
	return o.svc.Analyze(ctx, t.RepoURL)
}

// CompleteAnalysis ends the analysis started by t. The busy state is
// released on every path. On failure the session and the view are left as
// they were.
func (o *Orchestrator) CompleteAnalysis(t AnalysisTicket, res *service.AnalyzeResult, err error) (Outcome, error) {
	defer func() { o.analyzing = false }()

	if err != nil {
		debug.Log("analysis %d failed: %v", t.seq, err)
		return Outcome{}, err
	}
	if res == nil {
		res = &service.AnalyzeResult{}
	}

	name := DisplayName(t.RepoURL)
	gen := o.store.Apply(t.RepoURL, name, res.Document, res.Issues)
	if err := o.nav.Request(nav.ViewReadme); err != nil {
		return Outcome{}, err
	}

	debug.Log("analysis %d complete: generation %d, %d issues", t.seq, gen, len(res.Issues))
	return Outcome{
		Generation:  gen,
		RepoURL:     t.RepoURL,
		DisplayName: name,
		Document:    res.Document,
		Issues:      o.store.Issues(),
	}, nil
}

// RunAnalysis validates input, analyzes the repository and records the
// result.
func (o *Orchestrator) RunAnalysis(ctx context.Context, input string) (Outcome, error) {
	t, err := o.BeginAnalysis(input)
	if err != nil {
		return Outcome{}, err
	}
	res, err := o.Fetch(ctx, t)
	return o.CompleteAnalysis(t, res, err)
}

// BeginCommit validates a commit of document to repoURL and marks it in
// flight. A document is required.
func (o *Orchestrator) BeginCommit(repoURL, document string) (CommitTicket, error) {
	if strings.TrimSpace(repoURL) == "" {
		return CommitTicket{}, model.NewValidationError("repo_url", "no repository to commit to")
	}
	if document == "" {
		return CommitTicket{}, model.NewValidationError("readme_content", "no document to commit")
	}
	if o.committing {
		return CommitTicket{}, ErrBusy
	}
	o.committing = true
	return CommitTicket{RepoURL: strings.TrimSpace(repoURL), Document: document}, nil
}

// SendCommit performs the commit request. Like Fetch it touches no state.
func (o *Orchestrator) SendCommit(ctx context.Context, t CommitTicket) (*service.CommitResult, error) {
	return o.svc.Commit(ctx, t.RepoURL, t.Document)
}

// CompleteCommit ends the commit started by t and releases its control.
func (o *Orchestrator) CompleteCommit(t CommitTicket, res *service.CommitResult, err error) (*service.CommitResult, error) {
	o.committing = false
	if err != nil {
		debug.Log("commit to %s failed: %v", t.RepoURL, err)
		return nil, err
	}
	if res == nil {
		res = &service.CommitResult{}
	}
	return res, nil
}

// CommitDocument pushes document to repoURL.
func (o *Orchestrator) CommitDocument(ctx context.Context, repoURL, document string) (*service.CommitResult, error) {
	t, err := o.BeginCommit(repoURL, document)
	if err != nil {
		return nil, err
	}
	res, err := o.SendCommit(ctx, t)
	return o.CompleteCommit(t, res, err)
}

// DisplayName derives "owner/repo" from a repository URL: the last two path
// segments with a trailing ".git" removed.
func DisplayName(repoURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(repoURL), "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	return strings.TrimSuffix(strings.Join(parts, "/"), ".git")
}
