// Package service is the HTTP client for the remote analysis service.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// Generic messages used when a failed response carries no error body.
const (
	GenericAnalyzeError = "unknown error while generating the README"
	GenericCommitError  = "unknown error while committing the README"
)

// ServiceError is a non-success HTTP outcome from the service.
type ServiceError struct {
	Op      string // "analyze" or "commit"
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// IsServiceError reports whether err is (or wraps) a ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

// Client talks to the analysis service at a fixed base URL.
type Client struct {
	base string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient returns a Client for base, e.g. "http://localhost:5000".
// No request timeout is set; callers bound requests through the context.
func NewClient(base string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Base returns the service base URL.
func (c *Client) Base() string { return c.base }

// Analyze requests a document and issue list for repoURL.
func (c *Client) Analyze(ctx context.Context, repoURL string) (*AnalyzeResult, error) {
	var resp AnalyzeResponse
	if err := c.post(ctx, "analyze", AnalyzeRequest{RepoURL: repoURL}, &resp, GenericAnalyzeError); err != nil {
		return nil, err
	}

	res := &AnalyzeResult{Document: resp.Readme}
	for _, rec := range resp.Bugs {
		res.Issues = append(res.Issues, rec.ToIssue())
	}
	return res, nil
}

// Commit pushes content as the repository's README.
func (c *Client) Commit(ctx context.Context, repoURL, content string) (*CommitResult, error) {
	var resp CommitResponse
	req := CommitRequest{RepoURL: repoURL, ReadmeContent: content}
	if err := c.post(ctx, "commit", req, &resp, GenericCommitError); err != nil {
		return nil, err
	}
	return &CommitResult{Message: resp.Message, URL: resp.URL}, nil
}

func (c *Client) post(ctx context.Context, op string, body, out any, generic string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/"+op, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServiceError{Op: op, Status: resp.StatusCode, Message: errorMessage(data, generic)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", op, err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} from a failed response body.
func errorMessage(data []byte, generic string) string {
	var er ErrorResponse
	if err := json.Unmarshal(data, &er); err != nil || strings.TrimSpace(er.Error) == "" {
		return generic
	}
	return er.Error
}
