package lint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []FileResult {
	return []FileResult{
		{
			Path: "CHANGELOG.md",
			Diagnostics: []Diagnostic{
				{File: "CHANGELOG.md", Line: 3, Rule: RuleDateFormat, Severity: SeverityError, Message: `invalid date "2024-13-01" for release 1.0.0 (expected YYYY-MM-DD)`},
				{File: "CHANGELOG.md", Line: 9, Rule: RuleVersionOrder, Severity: SeverityWarning, Message: "version 1.2.0 is not lower than preceding version 1.0.0"},
			},
		},
		{Path: "docs/CHANGES.md"},
	}
}

func TestReport_Text(t *testing.T) {
	tests := map[string]struct {
		results []FileResult
		opts    ReportOptions
		want    string
	}{
		"diagnostics with summary": {
			results: sampleResults(),
			want: "CHANGELOG.md:3: error [date-format] invalid date \"2024-13-01\" for release 1.0.0 (expected YYYY-MM-DD)\n" +
				"CHANGELOG.md:9: warning [version-order] version 1.2.0 is not lower than preceding version 1.0.0\n" +
				"1 error, 1 warning in 2 files\n",
		},
		"quiet": {
			results: sampleResults(),
			opts:    ReportOptions{Quiet: true},
			want: "CHANGELOG.md:3: error [date-format] invalid date \"2024-13-01\" for release 1.0.0 (expected YYYY-MM-DD)\n" +
				"CHANGELOG.md:9: warning [version-order] version 1.2.0 is not lower than preceding version 1.0.0\n",
		},
		"clean": {
			results: []FileResult{{Path: "CHANGELOG.md"}},
			want:    "✓ no problems found in 1 file\n",
		},
		"unreadable file": {
			results: []FileResult{{Path: "gone.md", Err: errors.New("opening changelog file: no such file")}},
			want:    "gone.md: error opening changelog file: no such file\n0 errors, 0 warnings in 1 file (1 file unreadable)\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Report(&buf, tt.results, tt.opts))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestReport_JSON(t *testing.T) {
	results := append(sampleResults(), FileResult{Path: "gone.md", Err: errors.New("missing")})

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, results, ReportOptions{Format: FormatJSON}))

	var decoded struct {
		Files []struct {
			Path        string       `json:"path"`
			Error       string       `json:"error"`
			Diagnostics []Diagnostic `json:"diagnostics"`
		} `json:"files"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Files, 3)
	assert.Equal(t, results[0].Diagnostics, decoded.Files[0].Diagnostics)
	assert.NotNil(t, decoded.Files[1].Diagnostics, "clean files encode an empty list")
	assert.Equal(t, "missing", decoded.Files[2].Error)
	assert.Equal(t, Summary{Files: 3, Errors: 1, Warnings: 1, FileErrors: 1}, decoded.Summary)
}

func TestSummarize_MissingFiles(t *testing.T) {
	results := []FileResult{
		{Path: "ok.md"},
		{Path: "gone.md", Err: fmt.Errorf("opening changelog file: %w", fs.ErrNotExist)},
		{Path: "locked.md", Err: fmt.Errorf("opening changelog file: %w", fs.ErrPermission)},
	}

	assert.Equal(t, Summary{Files: 3, FileErrors: 2, Missing: 1}, Summarize(results))
	assert.Equal(t, 3, Summarize(results[:2]).ExitCode(false))
}

func TestSummary_ExitCode(t *testing.T) {
	tests := map[string]struct {
		summary Summary
		strict  bool
		want    int
	}{
		"clean":                   {summary: Summary{Files: 1}, want: 0},
		"warnings only":           {summary: Summary{Warnings: 2}, want: 0},
		"warnings only strict":    {summary: Summary{Warnings: 2}, strict: true, want: 1},
		"errors":                  {summary: Summary{Errors: 1}, want: 1},
		"unreadable file":         {summary: Summary{FileErrors: 1}, want: 1},
		"missing file":            {summary: Summary{FileErrors: 1, Missing: 1}, want: 3},
		"missing file and errors": {summary: Summary{Errors: 2, FileErrors: 1, Missing: 1}, want: 1},
		"missing and unreadable":  {summary: Summary{FileErrors: 2, Missing: 1}, want: 1},
		"missing file and strict": {summary: Summary{Warnings: 1, FileErrors: 1, Missing: 1}, strict: true, want: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.summary.ExitCode(tt.strict))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("sarif")
	assert.Error(t, err)
}
