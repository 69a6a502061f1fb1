package domain

import "time"

// PriorityCounts holds the number of issues per priority. All buckets are always emitted.
type PriorityCounts struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Normal int `json:"normal" yaml:"normal"`
}

// Add counts one issue of the given priority.
func (c *PriorityCounts) Add(p Priority) {
	switch p {
	case PriorityHigh:
		c.High++
	case PriorityMedium:
		c.Medium++
	case PriorityNormal:
		c.Normal++
	}
}

// Total returns the sum of all buckets.
func (c PriorityCounts) Total() int {
	return c.High + c.Medium + c.Normal
}

// Report is the terminal aggregate handed to the downstream report consumer.
type Report struct {
	LastScan    string            `json:"lastScan" yaml:"lastScan"`
	TotalCount  int               `json:"totalCount" yaml:"totalCount"`
	ByPriority  PriorityCounts    `json:"byPriority" yaml:"byPriority"`
	ByComponent map[Component]int `json:"byComponent" yaml:"byComponent"`
	Issues      []TriagedIssue    `json:"issues" yaml:"issues"`
}

// FormatScanTime renders t in UTC as ISO-8601 with an explicit "+00:00" offset.
// Sub-second precision is emitted in microseconds, and only when non-zero.
func FormatScanTime(t time.Time) string {
	t = t.UTC().Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05-07:00")
	}
	return t.Format("2006-01-02T15:04:05.000000-07:00")
}
