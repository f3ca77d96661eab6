package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitReferences(t *testing.T) {
	tests := map[string]struct {
		raw        string
		wantText   string
		wantRefs   []Reference
		wantIssues int
	}{
		"no references": {
			raw:      "Added a thing",
			wantText: "Added a thing",
		},
		"single linked reference": {
			raw:      "Fixed x ([#15931](https://github.com/org/repo/issues/15931))",
			wantText: "Fixed x",
			wantRefs: []Reference{{Number: 15931, URL: "https://github.com/org/repo/issues/15931"}},
		},
		"several links in one group": {
			raw:      "Merged a and b ([#1](https://h.test/pull/1), [#2](https://h.test/pull/2))",
			wantText: "Merged a and b",
			wantRefs: []Reference{{Number: 1, URL: "https://h.test/pull/1"}, {Number: 2, URL: "https://h.test/pull/2"}},
		},
		"bare reference": {
			raw:      "Fixed shuffle=False (#15931)",
			wantText: "Fixed shuffle=False",
			wantRefs: []Reference{{Number: 15931}},
		},
		"two trailing groups keep order": {
			raw:      "Fixed y (#10) (#11)",
			wantText: "Fixed y",
			wantRefs: []Reference{{Number: 10}, {Number: 11}},
		},
		"ordinary parenthetical is text": {
			raw:      "Changed the default (was 10)",
			wantText: "Changed the default (was 10)",
		},
		"nested parentheses in text": {
			raw:      "Added f(x) support (#3)",
			wantText: "Added f(x) support",
			wantRefs: []Reference{{Number: 3}},
		},
		"non numeric reference": {
			raw:        "Fixed z (#abc)",
			wantText:   "Fixed z (#abc)",
			wantIssues: 1,
		},
		"malformed item in group": {
			raw:        "Fixed z ([#1](https://h.test/1), see docs)",
			wantText:   "Fixed z ([#1](https://h.test/1), see docs)",
			wantIssues: 1,
		},
		"leading zero kept as written": {
			raw:      "Fixed v ([#0123](https://h.test/pull/0123))",
			wantText: "Fixed v",
			wantRefs: []Reference{{Number: 123, URL: "https://h.test/pull/0123", Raw: "0123"}},
		},
		"trailing whitespace": {
			raw:      "Fixed w (#4)   ",
			wantText: "Fixed w",
			wantRefs: []Reference{{Number: 4}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			text, refs, issues := SplitReferences(tt.raw)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantRefs, refs)
			assert.Len(t, issues, tt.wantIssues)
		})
	}
}

func TestURLMatchesNumber(t *testing.T) {
	tests := map[string]struct {
		url    string
		number int
		want   bool
	}{
		"pull url":             {url: "https://github.com/Lightning-AI/lightning/pull/15931", number: 15931, want: true},
		"issue url":            {url: "https://github.com/Lightning-AI/lightning/issues/15931", number: 15931, want: true},
		"different number":     {url: "https://github.com/org/repo/pull/15930", number: 15931, want: false},
		"prefix of longer":     {url: "https://github.com/org/repo/pull/1234", number: 123, want: false},
		"query parameter":      {url: "https://tracker.test/show?id=77&x=1", number: 77, want: true},
		"no digits":            {url: "https://example.com/changes", number: 1, want: false},
		"leading zero differs": {url: "https://example.com/007", number: 7, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, URLMatchesNumber(tt.url, tt.number))
		})
	}
}

func TestReference_MatchesURL(t *testing.T) {
	tests := map[string]struct {
		ref  Reference
		want bool
	}{
		"plain number":          {ref: Reference{Number: 15, URL: "https://h.test/pull/15"}, want: true},
		"leading zero in url":   {ref: Reference{Number: 123, Raw: "0123", URL: "https://h.test/pull/0123"}, want: true},
		"leading zero dropped":  {ref: Reference{Number: 123, Raw: "0123", URL: "https://h.test/pull/123"}, want: false},
		"zero only in url":      {ref: Reference{Number: 123, URL: "https://h.test/pull/0123"}, want: false},
		"mismatched digit runs": {ref: Reference{Number: 15, URL: "https://h.test/pull/150"}, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.MatchesURL())
		})
	}
}

func TestFormatReferences(t *testing.T) {
	assert.Equal(t, "", FormatReferences(nil))
	assert.Equal(t, "(#5)", FormatReferences([]Reference{{Number: 5}}))
	assert.Equal(t,
		"([#1](https://h.test/1), #2)",
		FormatReferences([]Reference{{Number: 1, URL: "https://h.test/1"}, {Number: 2}}))
	assert.Equal(t,
		"([#0123](https://h.test/pull/0123), #007)",
		FormatReferences([]Reference{{Number: 123, Raw: "0123", URL: "https://h.test/pull/0123"}, {Number: 7, Raw: "007"}}))
}
