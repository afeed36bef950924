// Package session holds the in-memory state of one analysis lifecycle.
//
// The Store has a single writer, the analysis orchestrator. Views, the
// navigator and the issue modal only read from it. Nothing here is
// persisted; a new process starts with an empty Store.
package session

import "github.com/aezell/docsync/internal/model"

// Session is a value snapshot of the Store.
type Session struct {
	RepoURL     string
	DisplayName string
	Document    string
	Issues      []model.Issue
	Completed   bool
	Generation  uint64
}

// Store is the mutable session state.
type Store struct {
	repoURL     string
	displayName string
	document    string
	issues      []model.Issue
	completed   bool
	generation  uint64
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Apply records the result of a successful analysis, replacing whatever a
// previous analysis stored, and returns the new generation.
func (s *Store) Apply(repoURL, displayName, document string, issues []model.Issue) uint64 {
	s.repoURL = repoURL
	s.displayName = displayName
	s.document = document
	s.issues = append([]model.Issue(nil), issues...)
	s.completed = true
	s.generation++
	return s.generation
}

// Completed reports whether at least one analysis has succeeded.
func (s *Store) Completed() bool { return s.completed }

// Generation identifies the most recent successful analysis. Zero means none.
func (s *Store) Generation() uint64 { return s.generation }

func (s *Store) RepoURL() string     { return s.repoURL }
func (s *Store) DisplayName() string { return s.displayName }
func (s *Store) Document() string    { return s.document }

// Issues returns a copy of the stored issue list.
func (s *Store) Issues() []model.Issue {
	return append([]model.Issue(nil), s.issues...)
}

// IssueCount returns the number of stored issues.
func (s *Store) IssueCount() int { return len(s.issues) }

// Issue returns the issue at index i.
func (s *Store) Issue(i int) (model.Issue, bool) {
	if i < 0 || i >= len(s.issues) {
		return model.Issue{}, false
	}
	return s.issues[i], true
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Session {
	return Session{
		RepoURL:     s.repoURL,
		DisplayName: s.displayName,
		Document:    s.document,
		Issues:      s.Issues(),
		Completed:   s.completed,
		Generation:  s.generation,
	}
}
