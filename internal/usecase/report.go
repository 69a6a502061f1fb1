package usecase

import (
	"slices"
	"time"

	"github.com/naka-gawa/triage-scan/internal/domain"
)

// BuildReport sorts the triaged issues by priority and tallies them.
// Issues of equal priority keep their input order. items is not modified.
func BuildReport(items []domain.TriagedIssue, scanTime time.Time) domain.Report {
	sorted := slices.Clone(items)
	if sorted == nil {
		sorted = []domain.TriagedIssue{}
	}
	slices.SortStableFunc(sorted, func(a, b domain.TriagedIssue) int {
		return int(a.Priority) - int(b.Priority)
	})

	report := domain.Report{
		LastScan:    domain.FormatScanTime(scanTime),
		TotalCount:  len(sorted),
		ByComponent: make(map[domain.Component]int),
		Issues:      sorted,
	}
	for _, issue := range sorted {
		report.ByPriority.Add(issue.Priority)
		report.ByComponent[issue.Component]++
	}
	return report
}
