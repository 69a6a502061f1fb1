package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/triage-scan/internal/domain"
	"github.com/naka-gawa/triage-scan/internal/gateway"
)

// Triager is the use case for producing a triage report.
// It orchestrates loading, classifying and summarizing issues.
type Triager struct {
	source gateway.IssueSource
	logger *log.Logger
}

// NewTriager creates a new Triager instance.
func NewTriager(source gateway.IssueSource, logger *log.Logger) *Triager {
	return &Triager{
		source: source,
		logger: logger,
	}
}

// Run loads every issue from the source and builds the report.
// now is captured once by the caller and used for every issue, and as the report's scan time.
// The first issue that fails to classify aborts the run.
func (t *Triager) Run(ctx context.Context, now time.Time) (*domain.Report, error) {
	t.logger.Println("Usecase: Loading issues...")
	raws, err := t.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.logger.Printf("Usecase: Loaded %d issues.\n", len(raws))

	triaged := make([]domain.TriagedIssue, 0, len(raws))
	for i, raw := range raws {
		issue, err := Classify(raw, now)
		if err != nil {
			return nil, fmt.Errorf("issue #%d (index %d): %w", raw.Number, i, err)
		}
		triaged = append(triaged, issue)
	}

	report := BuildReport(triaged, now)
	t.logAgeSummary(report.Issues)
	t.logger.Printf("Usecase: Triage complete. high=%d medium=%d normal=%d\n",
		report.ByPriority.High, report.ByPriority.Medium, report.ByPriority.Normal)
	return &report, nil
}

// logAgeSummary writes age and staleness statistics to the verbose log.
func (t *Triager) logAgeSummary(issues []domain.TriagedIssue) {
	if len(issues) == 0 {
		return
	}
	ages := make(stats.Float64Data, 0, len(issues))
	stale := make(stats.Float64Data, 0, len(issues))
	for _, issue := range issues {
		ages = append(ages, float64(issue.AgeDays))
		stale = append(stale, float64(issue.StaleDays))
	}

	medianAge, err := stats.Median(ages)
	if err != nil {
		t.logger.Printf("Usecase: could not compute age median: %v\n", err)
		return
	}
	p90Age, err := stats.Percentile(ages, 90)
	if err != nil {
		t.logger.Printf("Usecase: could not compute age percentile: %v\n", err)
		return
	}
	maxAge, err := stats.Max(ages)
	if err != nil {
		t.logger.Printf("Usecase: could not compute max age: %v\n", err)
		return
	}
	medianStale, err := stats.Median(stale)
	if err != nil {
		t.logger.Printf("Usecase: could not compute staleness median: %v\n", err)
		return
	}
	t.logger.Printf("Usecase: Age days median=%.1f p90=%.1f max=%.0f, stale days median=%.1f\n",
		medianAge, p90Age, maxAge, medianStale)
}
