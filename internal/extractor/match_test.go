package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindBestMatch_ExactSubstring(t *testing.T) {
	score, syn := FindBestMatch("Grand Total: $110.00", []string{"grand total"})
	assert.Equal(t, 1.0, score)
	assert.Equal(t, "grand total", syn)
}

func TestFindBestMatch_CaseInsensitive(t *testing.T) {
	score, _ := FindBestMatch("GST: $5.00", []string{"gst"})
	assert.Equal(t, 1.0, score)
}

func TestFindBestMatch_TieKeepsFirstSynonym(t *testing.T) {
	score, syn := FindBestMatch("total x", []string{"total a", "total b"})
	assert.InDelta(t, 6.0/7.0, score, 1e-9)
	assert.Equal(t, "total a", syn)
}

func TestFindBestMatch_Empty(t *testing.T) {
	score, syn := FindBestMatch("", []string{"supplier"})
	assert.Equal(t, 0.0, score)
	assert.Equal(t, "", syn)

	score, syn = FindBestMatch("Supplier: Acme", nil)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, "", syn)
}

func TestPartialRatio_SubstringScoresFull(t *testing.T) {
	assert.Equal(t, 1.0, partialRatio("gst amount due on receipt", "gst"))
}

func TestPartialRatio_EqualLengthIsPlainSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, partialRatio("total", "total"))
	assert.InDelta(t, 4.0/5.0, partialRatio("total", "totam"), 1e-9)
}

func TestPartialRatio_Disjoint(t *testing.T) {
	assert.Equal(t, 0.0, partialRatio("zzzzz", "aa"))
}
