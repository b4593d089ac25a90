package updates

import (
	"regexp"
	"strings"
)

// ConfidentialMarker replaces every occurrence of a confidential term.
const ConfidentialMarker = "--confidential--"

// branchPrefixPattern matches a single leading [...] bracket group plus an
// optional following colon and whitespace, e.g. "[feature]: Added X".
var branchPrefixPattern = regexp.MustCompile(`^\[[^\]]*\]:?\s*`)

// Redactor rewrites a retained commit message: strip the branch-name
// prefix, mask confidential terms, delete hidden terms, then trim. Terms
// are literal (regex metacharacters are escaped before compiling) and
// matched case-insensitively anywhere in the message.
type Redactor struct {
	stripBranch  bool
	confidential []*regexp.Regexp
	hidden       []*regexp.Regexp
}

// NewRedactor builds a Redactor from ordered term lists.
func NewRedactor(stripBranch bool, confidentialTerms, hiddenTerms []string) *Redactor {
	return &Redactor{
		stripBranch:  stripBranch,
		confidential: compileTerms(confidentialTerms),
		hidden:       compileTerms(hiddenTerms),
	}
}

// compileTerms turns literal terms into case-insensitive patterns. Each
// term may contain spaces; QuoteMeta keeps arbitrary user input literal.
func compileTerms(terms []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		if term == "" {
			continue
		}
		res = append(res, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(term)))
	}
	return res
}

// Redact applies branch-strip, confidential masking, and hidden-term
// deletion in that order. Deletion leaves surrounding whitespace as-is;
// only the final result is trimmed of leading and trailing whitespace.
func (r *Redactor) Redact(message string) string {
	out := message
	if r.stripBranch {
		out = branchPrefixPattern.ReplaceAllLiteralString(out, "")
	}
	for _, re := range r.confidential {
		out = re.ReplaceAllLiteralString(out, ConfidentialMarker)
	}
	for _, re := range r.hidden {
		out = re.ReplaceAllLiteralString(out, "")
	}
	return strings.TrimSpace(out)
}

// SplitTerms parses a comma-separated term list as supplied in
// configuration, trimming whitespace and dropping empty entries.
func SplitTerms(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var terms []string
	for _, part := range strings.Split(s, ",") {
		if term := strings.TrimSpace(part); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}
