// Package model defines the core data types shared across docsync.
package model

import (
	"fmt"
	"strings"
)

// Severity ranks how serious a detected issue is.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ParseSeverity matches s case-insensitively against the known severities.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical, true
	case "medium":
		return SeverityMedium, true
	case "low":
		return SeverityLow, true
	}
	return SeverityLow, false
}

// NormalizeSeverity is ParseSeverity with unknown values mapped to low.
func NormalizeSeverity(s string) Severity {
	sev, _ := ParseSeverity(s)
	return sev
}

// Issue is one detected problem as returned by the analysis service.
// Issues carry no stable ID; they are identified by their index in the
// list they arrived in.
type Issue struct {
	Title         string
	LocationLabel string // branch name or file path
	Severity      Severity
	Filepath      string
	CodeBefore    string
	CodeAfter     string
	Problem       string
	Suggestion    string
	Category      string
}

// HasCode reports whether the issue carries any before/after code.
func (i Issue) HasCode() bool {
	return i.CodeBefore != "" || i.CodeAfter != ""
}

// HasDetails reports whether any of the descriptive fields are present.
// Narrow upstream records omit all three.
func (i Issue) HasDetails() bool {
	return i.Problem != "" || i.Suggestion != "" || i.Category != ""
}

// MaxSeverity returns the highest severity in issues, or low for none.
func MaxSeverity(issues []Issue) Severity {
	max := SeverityLow
	for _, is := range issues {
		if is.Severity > max {
			max = is.Severity
		}
	}
	return max
}

// Summary returns a one-line count of issues by severity.
func Summary(issues []Issue) string {
	if len(issues) == 0 {
		return "No issues found"
	}

	counts := make(map[Severity]int)
	for _, is := range issues {
		counts[is.Severity]++
	}

	var parts []string
	for _, level := range []Severity{SeverityCritical, SeverityMedium, SeverityLow} {
		if c := counts[level]; c > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c, level))
		}
	}
	return strings.Join(parts, ", ")
}
