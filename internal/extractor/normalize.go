package extractor

import (
	"regexp"
	"strings"
)

var (
	invoiceArtifactRe = regexp.MustCompile(`\b(qty|quantity|ea|each|unit|units|item|items)\b`)
	measurementRe     = regexp.MustCompile(`\b(\d+)\s+(mm|cm|m)\b`)
	dimensionRe       = regexp.MustCompile(`\b(\d+)\s*(?:x|×)\s*(\d+(?:mm|cm|m)?)\b`)
	whitespaceRe      = regexp.MustCompile(`\s+`)
)

// abbreviations standardizes common trade shorthand seen on supplier invoices.
var abbreviations = []struct{ old, new string }{
	{"galvanised", "galvanized"},
	{"galv", "galvanized"},
	{"st steel", "stainless steel"},
	{"ss", "stainless steel"},
	{"hw", "hardwood"},
	{"sw", "softwood"},
	{"dar", "dressed all round"},
}

var abbreviationRes = compileAbbreviations()

func compileAbbreviations() []struct {
	re  *regexp.Regexp
	new string
} {
	out := make([]struct {
		re  *regexp.Regexp
		new string
	}, len(abbreviations))
	for i, a := range abbreviations {
		out[i].re = regexp.MustCompile(`\b` + regexp.QuoteMeta(a.old) + `\b`)
		out[i].new = a.new
	}
	return out
}

// CleanDescription normalizes a raw line-item description for catalog
// matching: lowercases, drops quantity artifacts, compacts dimensions and
// measurements, expands trade abbreviations, and collapses whitespace.
func CleanDescription(description string) string {
	s := strings.ToLower(strings.TrimSpace(description))
	if s == "" {
		return ""
	}
	s = invoiceArtifactRe.ReplaceAllString(s, "")
	s = measurementRe.ReplaceAllString(s, "${1}${2}")
	s = dimensionRe.ReplaceAllString(s, "${1}x${2}")
	for _, a := range abbreviationRes {
		s = a.re.ReplaceAllString(s, a.new)
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
