// Package ingest handles raw document intake: PDF/plain-text reading,
// page rasterization for the vision fallback, and splitting a report
// volume into individual judgments.
package ingest

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinChunkLength is the floor, counted in runes, below which a
// candidate chunk is treated as boundary-matching noise (stray headers,
// footers) and dropped. Myanmar script runs three bytes per rune, so
// byte counts would triple the effective threshold.
const MinChunkLength = 300

// caseStartPattern recognizes the lexical cues for "a new judgment
// starts here". The Myanmar law reports mix standard Unicode headers
// with Zawgyi-encoded artifacts (the trailing alternatives), so the
// list is heuristic and known to be incomplete for future inputs.
var caseStartPattern = regexp.MustCompile(`(?i)(?:Case\s+(?:No|Number)|[A-Z][a-z]+\s+Appeal\s+No|Reg\.\s+No\.|အမှုနံပါတ်|တရားမ(?:ကြီး)?မှု|ရာဇဝတ်(?:ကြီး)?မှု|ပြည်ထောင်စုတရားလွှတ်တော်ချုပ်|rjy.*?kH|w&m;r.*?rjy)`)

var (
	crlfPattern       = regexp.MustCompile(`\r\n`)
	formFeedPattern   = regexp.MustCompile(`\f`)
	whitespacePattern = regexp.MustCompile(`\s{2,}`)
)

// Normalize collapses line endings, converts page-break markers into
// paragraph breaks and squeezes runs of whitespace.
func Normalize(text string) string {
	text = crlfPattern.ReplaceAllString(text, "\n")
	text = formFeedPattern.ReplaceAllString(text, "\n\n")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return text
}

// SplitCases cuts a normalized report volume into per-judgment chunks.
// Each boundary match starts a candidate chunk ending at the next match
// or end of text. Candidates shorter than MinChunkLength are dropped.
// If nothing survives, the whole normalized document is returned as a
// single chunk; the result is never empty for non-empty input.
func SplitCases(fullText string) []string {
	normalized := Normalize(fullText)

	matches := caseStartPattern.FindAllStringIndex(normalized, -1)

	var cases []string
	for i, m := range matches {
		start := m[0]
		end := len(normalized)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		chunk := strings.TrimSpace(normalized[start:end])
		if utf8.RuneCountInString(chunk) > MinChunkLength {
			cases = append(cases, chunk)
		}
	}

	if len(cases) == 0 {
		return []string{normalized}
	}
	return cases
}
