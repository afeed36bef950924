package service

import (
	"strings"

	"github.com/aezell/docsync/internal/diff"
	"github.com/aezell/docsync/internal/model"
)

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	RepoURL string `json:"repo_url"`
}

// CommitRequest is the body of POST /commit.
type CommitRequest struct {
	RepoURL       string `json:"repo_url"`
	ReadmeContent string `json:"readme_content"`
}

// IssueRecord is one issue as it travels on the wire. Older service
// versions send only a subset of the fields.
type IssueRecord struct {
	Title      string `json:"title"`
	Branch     string `json:"branch,omitempty"`
	Filepath   string `json:"filepath,omitempty"`
	Severity   string `json:"severity"`
	CodeBefore string `json:"codeBefore,omitempty"`
	CodeAfter  string `json:"codeAfter,omitempty"`
	Patch      string `json:"patch,omitempty"`
	Problem    string `json:"problem,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Type       string `json:"type,omitempty"`
	Category   string `json:"category,omitempty"`
}

// AnalyzeResponse is the success body of POST /analyze.
type AnalyzeResponse struct {
	Readme string        `json:"readme"`
	Bugs   []IssueRecord `json:"bugs"`
}

// CommitResponse is the success body of POST /commit.
type CommitResponse struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// ErrorResponse is the optional body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AnalyzeResult is a decoded analysis.
type AnalyzeResult struct {
	Document string
	Issues   []model.Issue
}

// CommitResult is a decoded commit confirmation.
type CommitResult struct {
	Message string
	URL     string
}

// ToIssue normalises a wire record. The location label prefers the branch
// and falls back to the file path; the category prefers "type". A patch is
// only used when neither code field is set.
func (r IssueRecord) ToIssue() model.Issue {
	is := model.Issue{
		Title:         r.Title,
		LocationLabel: r.Branch,
		Severity:      model.NormalizeSeverity(r.Severity),
		Filepath:      r.Filepath,
		CodeBefore:    r.CodeBefore,
		CodeAfter:     r.CodeAfter,
		Problem:       r.Problem,
		Suggestion:    r.Suggestion,
		Category:      r.Type,
	}
	if is.LocationLabel == "" {
		is.LocationLabel = r.Filepath
	}
	if is.Category == "" {
		is.Category = r.Category
	}
	if !is.HasCode() && strings.TrimSpace(r.Patch) != "" {
		if before, after, err := diff.SplitPatch(r.Patch); err == nil {
			is.CodeBefore, is.CodeAfter = before, after
		}
	}
	return is
}

// FromIssue builds the wire record for an issue.
func FromIssue(is model.Issue) IssueRecord {
	return IssueRecord{
		Title:      is.Title,
		Branch:     is.LocationLabel,
		Filepath:   is.Filepath,
		Severity:   is.Severity.String(),
		CodeBefore: is.CodeBefore,
		CodeAfter:  is.CodeAfter,
		Problem:    is.Problem,
		Suggestion: is.Suggestion,
		Type:       is.Category,
	}
}
