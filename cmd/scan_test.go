package cmd

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/naka-gawa/triage-scan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIssues = `[{"number":1,"title":"Crash","user":"octocat","html_url":"https://github.com/mui/mui-x/issues/1",
	"labels":["component: charts"],"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-31T00:00:00Z"}]`

func TestRunScan(t *testing.T) {
	inputFile := filepath.Join(t.TempDir(), "issues.json")
	require.NoError(t, os.WriteFile(inputFile, []byte(sampleIssues), 0o600))

	testCases := []struct {
		name        string
		opts        scanOptions
		stdin       string
		contains    []string
		expectedErr error
		errContains string
	}{
		{
			name:     "happy path - stdin to JSON",
			opts:     scanOptions{inputPath: "-", inputFormat: "flat", outputFormat: "json", now: "2024-02-01T00:00:00Z"},
			stdin:    sampleIssues,
			contains: []string{`"lastScan": "2024-02-01T00:00:00+00:00"`, `"priority": "high"`, `"ageDays": 31`},
		},
		{
			name:     "reads from an input file and writes YAML",
			opts:     scanOptions{inputPath: inputFile, inputFormat: "flat", outputFormat: "yaml", now: "2024-02-01T00:00:00Z"},
			contains: []string{"totalCount: 1", "charts: 1"},
		},
		{
			name:        "error case - malformed stdin",
			opts:        scanOptions{inputPath: "-", inputFormat: "flat", outputFormat: "json", now: "2024-02-01T00:00:00Z"},
			stdin:       `{"not":"an array"}`,
			expectedErr: domain.ErrMalformedInput,
		},
		{
			name:        "error case - bad --now",
			opts:        scanOptions{inputFormat: "flat", outputFormat: "json", now: "tomorrow"},
			errContains: "--now",
		},
		{
			name:        "error case - unknown input format",
			opts:        scanOptions{inputFormat: "csv", outputFormat: "json"},
			errContains: "unsupported input format",
		},
		{
			name:        "error case - unknown output format",
			opts:        scanOptions{inputFormat: "flat", outputFormat: "xml"},
			errContains: "unsupported output format",
		},
		{
			name:        "error case - missing input file",
			opts:        scanOptions{inputPath: filepath.Join(t.TempDir(), "absent.json"), inputFormat: "flat", outputFormat: "json"},
			errContains: "failed to open input",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout bytes.Buffer
			logger := log.New(io.Discard, "", 0)

			err := runScan(context.Background(), tc.opts, strings.NewReader(tc.stdin), &stdout, logger)

			if tc.expectedErr != nil || tc.errContains != "" {
				require.Error(t, err)
				if tc.expectedErr != nil {
					assert.ErrorIs(t, err, tc.expectedErr)
				}
				if tc.errContains != "" {
					assert.Contains(t, err.Error(), tc.errContains)
				}
				assert.Zero(t, stdout.Len())
				return
			}
			require.NoError(t, err)
			for _, s := range tc.contains {
				assert.Contains(t, stdout.String(), s)
			}
		})
	}
}
