package updates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactor_Redact(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		stripBranch  bool
		confidential []string
		hidden       []string
		message      string
		want         string
	}{
		"branch prefix stripped": {
			stripBranch: true,
			message:     "[feature]: Added X",
			want:        "Added X",
		},
		"branch prefix without colon stripped": {
			stripBranch: true,
			message:     "[hotfix] Fix login",
			want:        "Fix login",
		},
		"only one leading bracket group stripped": {
			stripBranch: true,
			message:     "[a][b] Added X",
			want:        "[b] Added X",
		},
		"branch strip disabled leaves prefix": {
			stripBranch: false,
			message:     "[feature]: Added X",
			want:        "[feature]: Added X",
		},
		"confidential term masked": {
			confidential: []string{"aws"},
			message:      "Added aws credentials",
			want:         "Added --confidential-- credentials",
		},
		"confidential case-insensitive everywhere": {
			confidential: []string{"aws"},
			message:      "AWS keys rotated, aws console updated",
			want:         "--confidential-- keys rotated, --confidential-- console updated",
		},
		"multi-word confidential term": {
			confidential: []string{"billing portal"},
			message:      "Rework Billing Portal flows",
			want:         "Rework --confidential-- flows",
		},
		"hidden term deleted keeps whitespace": {
			hidden:  []string{"password"},
			message: "Fixed password issues",
			want:    "Fixed  issues",
		},
		"hidden term at edge trimmed": {
			hidden:  []string{"secret"},
			message: "secret rotation improved",
			want:    "rotation improved",
		},
		"regex metacharacters matched literally": {
			confidential: []string{"a+b(x)"},
			message:      "Tuned a+b(x) scoring",
			want:         "Tuned --confidential-- scoring",
		},
		"strip then mask then hide": {
			stripBranch:  true,
			confidential: []string{"aws"},
			hidden:       []string{"internal"},
			message:      "[ops]: internal aws migration",
			want:         "--confidential-- migration",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			r := NewRedactor(tt.stripBranch, tt.confidential, tt.hidden)
			assert.Equal(t, tt.want, r.Redact(tt.message))
		})
	}
}

func TestSplitTerms(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  []string
	}{
		"empty string":        {input: "", want: nil},
		"whitespace only":     {input: "  ", want: nil},
		"single term":         {input: "aws", want: []string{"aws"}},
		"trims around commas": {input: " aws , stripe ", want: []string{"aws", "stripe"}},
		"drops empty entries": {input: "aws,,stripe,", want: []string{"aws", "stripe"}},
		"terms with spaces":   {input: "billing portal,api key", want: []string{"billing portal", "api key"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitTerms(tt.input))
		})
	}
}
