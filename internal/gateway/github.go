package gateway

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/triage-scan/internal/domain"
)

// GitHubSource reads a payload in the shape returned by the GitHub REST
// "list repository issues" endpoint and flattens it into raw issues.
// It only decodes; it never talks to the GitHub API.
type GitHubSource struct {
	r      io.Reader
	logger *log.Logger
}

// NewGitHubSource creates a GitHubSource reading from r.
func NewGitHubSource(r io.Reader, logger *log.Logger) *GitHubSource {
	return &GitHubSource{r: r, logger: logger}
}

// githubIssue is a GitHub issue whose timestamps are kept as the original strings.
// They are validated during classification, like those of the flat format.
type githubIssue struct {
	github.Issue
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

func (s *GitHubSource) Load(ctx context.Context) ([]domain.RawIssue, error) {
	s.logger.Println("Gateway: Decoding GitHub issue payload...")
	var issues []*githubIssue
	if err := decodeArray(s.r, &issues); err != nil {
		return nil, err
	}

	raws := make([]domain.RawIssue, 0, len(issues))
	for i, issue := range issues {
		if issue == nil {
			return nil, fmt.Errorf("%w: element %d is null", domain.ErrMissingField, i)
		}
		raw, err := flattenIssue(issue)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	s.logger.Printf("Gateway: Decoded %d issues.\n", len(raws))
	return raws, nil
}

// flattenIssue converts a GitHub issue into the flat record used for triage.
func flattenIssue(issue *githubIssue) (domain.RawIssue, error) {
	var missing []string
	if issue.Labels == nil {
		missing = append(missing, "labels")
	}
	if issue.Title == nil {
		missing = append(missing, "title")
	}
	if issue.CreatedAt == nil {
		missing = append(missing, "created_at")
	}
	if issue.UpdatedAt == nil {
		missing = append(missing, "updated_at")
	}
	if len(missing) > 0 {
		return domain.RawIssue{}, fmt.Errorf("%w: issue #%d lacks %v", domain.ErrMissingField, issue.GetNumber(), missing)
	}

	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	return domain.RawIssue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		User:      issue.GetUser().GetLogin(),
		HTMLURL:   issue.GetHTMLURL(),
		Labels:    labels,
		CreatedAt: *issue.CreatedAt,
		UpdatedAt: *issue.UpdatedAt,
	}, nil
}
