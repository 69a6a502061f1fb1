// Package gateway provides the boundaries to the upstream issue-fetching service
// and the downstream report consumer, abstracting away their payload formats.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/naka-gawa/triage-scan/internal/domain"
)

// IssueSource defines the behavior of a gateway for reading raw issues.
type IssueSource interface {
	Load(ctx context.Context) ([]domain.RawIssue, error)
}

// flatIssue mirrors one element of the flat input array.
// Required fields are pointers so that an absent field can be told apart from an empty one.
type flatIssue struct {
	Number    int       `json:"number"`
	Title     *string   `json:"title"`
	User      string    `json:"user"`
	HTMLURL   string    `json:"html_url"`
	Labels    *[]string `json:"labels"`
	CreatedAt *string   `json:"created_at"`
	UpdatedAt *string   `json:"updated_at"`
}

func (f flatIssue) toRaw() (domain.RawIssue, error) {
	var missing []string
	if f.Labels == nil {
		missing = append(missing, "labels")
	}
	if f.Title == nil {
		missing = append(missing, "title")
	}
	if f.CreatedAt == nil {
		missing = append(missing, "created_at")
	}
	if f.UpdatedAt == nil {
		missing = append(missing, "updated_at")
	}
	if len(missing) > 0 {
		return domain.RawIssue{}, fmt.Errorf("%w: issue #%d lacks %v", domain.ErrMissingField, f.Number, missing)
	}
	return domain.RawIssue{
		Number:    f.Number,
		Title:     *f.Title,
		User:      f.User,
		HTMLURL:   f.HTMLURL,
		Labels:    *f.Labels,
		CreatedAt: *f.CreatedAt,
		UpdatedAt: *f.UpdatedAt,
	}, nil
}

// JSONSource reads the flat JSON array produced by the issue-fetching service.
type JSONSource struct {
	r      io.Reader
	logger *log.Logger
}

// NewJSONSource creates a JSONSource reading from r.
func NewJSONSource(r io.Reader, logger *log.Logger) *JSONSource {
	return &JSONSource{r: r, logger: logger}
}

// Load decodes the whole payload. It fails on invalid JSON, a non-array payload,
// or an issue missing a required field.
func (s *JSONSource) Load(ctx context.Context) ([]domain.RawIssue, error) {
	s.logger.Println("Gateway: Decoding flat issue payload...")
	var items []json.RawMessage
	if err := decodeArray(s.r, &items); err != nil {
		return nil, err
	}

	raws := make([]domain.RawIssue, 0, len(items))
	for i, item := range items {
		var f flatIssue
		if err := json.Unmarshal(item, &f); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", domain.ErrMalformedInput, i, err)
		}
		raw, err := f.toRaw()
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	s.logger.Printf("Gateway: Decoded %d issues.\n", len(raws))
	return raws, nil
}

// decodeArray reads all of r and decodes it as a single top-level JSON array into v.
func decodeArray(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("%w: expected a JSON array", domain.ErrMalformedInput)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after the issue array", domain.ErrMalformedInput)
	}
	return nil
}
