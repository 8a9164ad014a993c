package extractor

import (
	"strings"

	"github.com/agext/levenshtein"
)

var matchParams = levenshtein.NewParams()

// FindBestMatch computes a case-insensitive partial-ratio similarity between
// the line and each synonym, returning the highest score (0.0–1.0) and the
// synonym that achieved it. Ties keep the first-seen synonym: the best score
// is only replaced on a strictly greater value.
func FindBestMatch(line string, synonyms []string) (float64, string) {
	var best float64
	var bestSyn string
	lower := strings.ToLower(line)
	for _, syn := range synonyms {
		score := partialRatio(lower, strings.ToLower(syn))
		if score > best {
			best = score
			bestSyn = syn
		}
	}
	return best, bestSyn
}

// partialRatio returns the best Levenshtein similarity of the shorter string
// against any equal-length window of the longer string. An exact substring
// therefore scores 1.0 regardless of the surrounding text.
func partialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	shorter, longer := ra, rb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == len(longer) {
		return levenshtein.Similarity(string(shorter), string(longer), matchParams)
	}

	var best float64
	window := len(shorter)
	for i := 0; i+window <= len(longer); i++ {
		score := levenshtein.Similarity(string(shorter), string(longer[i:i+window]), matchParams)
		if score > best {
			best = score
		}
		if best == 1.0 {
			break
		}
	}
	return best
}
