// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"strings"
)

// RawIssue is an issue record as supplied by the upstream issue-fetching service.
// Timestamps are kept as the original strings so they can be passed through untouched.
type RawIssue struct {
	Number    int
	Title     string
	User      string
	HTMLURL   string
	Labels    []string
	CreatedAt string
	UpdatedAt string
}

// Priority is the triage urgency of an issue. Lower values sort first.
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityNormal
)

// Priorities lists every priority in rank order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityNormal}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityNormal:
		return "normal"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// ParsePriority converts the text form of a priority back to its value.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

// MarshalText encodes the priority by name so that JSON and YAML output stay readable.
func (p Priority) MarshalText() ([]byte, error) {
	if p < PriorityHigh || p > PriorityNormal {
		return nil, fmt.Errorf("invalid priority %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(text []byte) error {
	v, err := ParsePriority(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Component is the product area an issue belongs to.
type Component string

const (
	ComponentDataGrid Component = "data-grid"
	ComponentPickers  Component = "pickers"
	ComponentCharts   Component = "charts"
	ComponentTreeView Component = "tree-view"
	ComponentUnknown  Component = "unknown"
)

// IssueType is the kind of work an issue asks for.
type IssueType string

const (
	TypeBug            IssueType = "bug"
	TypeDocs           IssueType = "docs"
	TypeFeatureRequest IssueType = "feature-request"
	TypeSecurity       IssueType = "security"
)

// TriagedIssue is a RawIssue enriched with its triage decision.
// Field names follow what the downstream report consumer expects.
type TriagedIssue struct {
	Number    int       `json:"number" yaml:"number"`
	Title     string    `json:"title" yaml:"title"`
	User      string    `json:"user" yaml:"user"`
	URL       string    `json:"url" yaml:"url"`
	Component Component `json:"component" yaml:"component"`
	Type      IssueType `json:"type" yaml:"type"`
	Priority  Priority  `json:"priority" yaml:"priority"`
	AgeDays   int       `json:"ageDays" yaml:"ageDays"`
	StaleDays int       `json:"staleDays" yaml:"staleDays"`
	Labels    []string  `json:"labels" yaml:"labels"`
	CreatedAt string    `json:"createdAt" yaml:"createdAt"`
	UpdatedAt string    `json:"updatedAt" yaml:"updatedAt"`
}
