// Package usecase contains the business logic of the application.
package usecase

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/naka-gawa/triage-scan/internal/domain"
)

const (
	premiumSupportLabel = "support: premium standard"
	proSupportLabel     = "support: pro standard"
	docsLabel           = "docs"

	// Issues older than this are always escalated to high priority.
	maxAgeDays = 21
)

// priorityRule maps an issue's labels to a priority.
type priorityRule struct {
	matches  func(labels []string) bool
	priority domain.Priority
}

// componentRule maps a single label to a component.
type componentRule struct {
	matches   func(label string) bool
	component domain.Component
}

// typeRule maps an issue's labels and lower-cased title to an issue type.
type typeRule struct {
	matches   func(labels []string, title string) bool
	issueType domain.IssueType
}

// Rule tables are evaluated top to bottom and the first match wins.
var (
	priorityRules = []priorityRule{
		{matches: hasLabel(premiumSupportLabel), priority: domain.PriorityHigh},
		{matches: hasLabel(proSupportLabel), priority: domain.PriorityMedium},
	}

	componentRules = []componentRule{
		{matches: labelContains("data grid"), component: domain.ComponentDataGrid},
		{matches: labelContains("pickers"), component: domain.ComponentPickers},
		{matches: labelContains("charts"), component: domain.ComponentCharts},
		{matches: labelContains("tree view"), component: domain.ComponentTreeView},
	}

	typeRules = []typeRule{
		{
			matches: func(labels []string, _ string) bool {
				return slices.Contains(labels, docsLabel)
			},
			issueType: domain.TypeDocs,
		},
		{
			matches: func(labels []string, title string) bool {
				return strings.Contains(strings.ToLower(strings.Join(labels, " ")), "feature") ||
					strings.Contains(title, "question")
			},
			issueType: domain.TypeFeatureRequest,
		},
		{
			matches:   titleContainsAny("vulnerability", "csp", "redos"),
			issueType: domain.TypeSecurity,
		},
	}
)

func hasLabel(name string) func([]string) bool {
	return func(labels []string) bool {
		return slices.Contains(labels, name)
	}
}

func labelContains(substr string) func(string) bool {
	return func(label string) bool {
		return strings.Contains(label, substr)
	}
}

func titleContainsAny(substrs ...string) func([]string, string) bool {
	return func(_ []string, title string) bool {
		for _, s := range substrs {
			if strings.Contains(title, s) {
				return true
			}
		}
		return false
	}
}

// Classify derives priority, component and type for a single issue.
// now is the scan instant shared by every issue of a run.
func Classify(raw domain.RawIssue, now time.Time) (domain.TriagedIssue, error) {
	created, err := ParseTimestamp(raw.CreatedAt)
	if err != nil {
		return domain.TriagedIssue{}, fmt.Errorf("created_at: %w", err)
	}
	updated, err := ParseTimestamp(raw.UpdatedAt)
	if err != nil {
		return domain.TriagedIssue{}, fmt.Errorf("updated_at: %w", err)
	}

	ageDays := daysBetween(created, now)
	labels := raw.Labels
	if labels == nil {
		labels = []string{}
	}

	return domain.TriagedIssue{
		Number:    raw.Number,
		Title:     raw.Title,
		User:      raw.User,
		URL:       raw.HTMLURL,
		Component: classifyComponent(labels),
		Type:      classifyType(labels, raw.Title),
		Priority:  classifyPriority(labels, ageDays),
		AgeDays:   ageDays,
		StaleDays: daysBetween(updated, now),
		Labels:    labels,
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}, nil
}

func classifyPriority(labels []string, ageDays int) domain.Priority {
	priority := domain.PriorityNormal
	for _, rule := range priorityRules {
		if rule.matches(labels) {
			priority = rule.priority
			break
		}
	}
	// Age overrides whatever the labels said.
	if ageDays > maxAgeDays {
		priority = domain.PriorityHigh
	}
	return priority
}

// classifyComponent stops at the first label matching any rule, so label order
// decides between components, not rule order.
func classifyComponent(labels []string) domain.Component {
	for _, label := range labels {
		for _, rule := range componentRules {
			if rule.matches(label) {
				return rule.component
			}
		}
	}
	return domain.ComponentUnknown
}

func classifyType(labels []string, title string) domain.IssueType {
	lowerTitle := strings.ToLower(title)
	for _, rule := range typeRules {
		if rule.matches(labels, lowerTitle) {
			return rule.issueType
		}
	}
	return domain.TypeBug
}

// timestampLayouts are the ISO-8601 shapes accepted for created_at and updated_at:
// hour, minute or second precision, extended (+00:00) or basic (+0000) offsets,
// and either T or a space between date and time. An explicit offset (or Z) is required.
var timestampLayouts = buildTimestampLayouts()

func buildTimestampLayouts() []string {
	var layouts []string
	for _, sep := range []string{"T", " "} {
		for _, clock := range []string{"15:04:05.999999999", "15:04", "15"} {
			for _, zone := range []string{"Z07:00", "Z0700", "Z07"} {
				layouts = append(layouts, "2006-01-02"+sep+clock+zone)
			}
		}
	}
	return layouts
}

// ParseTimestamp parses an ISO-8601 timestamp carrying a UTC offset.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrUnparsableTimestamp, s)
}

const secondsPerDay = 24 * 60 * 60

// daysBetween returns the whole days elapsed from t to now, never negative.
// It works on Unix seconds because time.Duration cannot span more than ~292 years.
func daysBetween(t, now time.Time) int {
	secs := now.Unix() - t.Unix()
	if now.Nanosecond() < t.Nanosecond() {
		secs--
	}
	if secs <= 0 {
		return 0
	}
	return int(secs / secondsPerDay)
}
