package gateway

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/naka-gawa/triage-scan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSource_Load(t *testing.T) {
	testCases := []struct {
		name        string
		payload     string
		expected    []domain.RawIssue
		expectedErr error
		errContains string
	}{
		{
			name: "happy path - decodes every field",
			payload: `[{"number":1,"title":"Crash","user":"octocat","html_url":"https://github.com/mui/mui-x/issues/1",
				"labels":["support: premium standard","component: data grid"],
				"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-02T00:00:00Z"}]`,
			expected: []domain.RawIssue{{
				Number:    1,
				Title:     "Crash",
				User:      "octocat",
				HTMLURL:   "https://github.com/mui/mui-x/issues/1",
				Labels:    []string{"support: premium standard", "component: data grid"},
				CreatedAt: "2024-01-01T00:00:00Z",
				UpdatedAt: "2024-01-02T00:00:00Z",
			}},
		},
		{
			name:     "empty array",
			payload:  "  []\n",
			expected: []domain.RawIssue{},
		},
		{
			name:     "empty labels are not missing",
			payload:  `[{"number":2,"title":"","labels":[],"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}]`,
			expected: []domain.RawIssue{{Number: 2, Labels: []string{}, CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-01T00:00:00Z"}},
		},
		{
			name:        "error case - not JSON",
			payload:     `not json`,
			expectedErr: domain.ErrMalformedInput,
		},
		{
			name:        "error case - object instead of array",
			payload:     `{"number":1}`,
			expectedErr: domain.ErrMalformedInput,
		},
		{
			name:        "error case - truncated array",
			payload:     `[{"number":1,`,
			expectedErr: domain.ErrMalformedInput,
		},
		{
			name:        "error case - trailing data",
			payload:     `[] []`,
			expectedErr: domain.ErrMalformedInput,
		},
		{
			name:        "error case - element of the wrong type",
			payload:     `[42]`,
			expectedErr: domain.ErrMalformedInput,
		},
		{
			name:        "error case - missing labels",
			payload:     `[{"number":3,"title":"Crash","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}]`,
			expectedErr: domain.ErrMissingField,
			errContains: "labels",
		},
		{
			name:        "error case - null labels",
			payload:     `[{"number":3,"title":"Crash","labels":null,"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}]`,
			expectedErr: domain.ErrMissingField,
			errContains: "labels",
		},
		{
			name:        "error case - missing timestamps",
			payload:     `[{"number":4,"title":"Crash","labels":[]}]`,
			expectedErr: domain.ErrMissingField,
			errContains: "created_at updated_at",
		},
		{
			name:        "error case - missing title",
			payload:     `[{"number":5,"labels":[],"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}]`,
			expectedErr: domain.ErrMissingField,
			errContains: "#5",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			source := NewJSONSource(strings.NewReader(tc.payload), log.New(io.Discard, "", 0))

			raws, err := source.Load(context.Background())

			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
				if tc.errContains != "" {
					assert.Contains(t, err.Error(), tc.errContains)
				}
				assert.Nil(t, raws)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, raws)
			}
		})
	}
}
