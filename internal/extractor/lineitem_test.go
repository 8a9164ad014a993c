package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_FullItem(t *testing.T) {
	item := newTestExtractor().ParseLine("SKU123 5 12.50 Wood Screw Pack")
	require.NotNil(t, item)

	require.NotNil(t, item.Code)
	assert.Equal(t, "SKU123", *item.Code)
	assert.Equal(t, 0.8, item.Confidence[ItemFieldCode])

	require.NotNil(t, item.Quantity)
	assert.Equal(t, "5", item.Quantity.String())
	assert.Equal(t, 0.9, item.Confidence[ItemFieldQuantity])

	require.NotNil(t, item.UnitCost)
	assert.Equal(t, "12.5", item.UnitCost.String())
	assert.Equal(t, 0.8, item.Confidence[ItemFieldUnitCost])

	require.NotNil(t, item.Description)
	assert.Equal(t, "Wood Screw Pack", *item.Description)
	assert.Equal(t, 0.7, item.Confidence[ItemFieldDescription])
}

func TestParseLine_TooFewTokens(t *testing.T) {
	e := newTestExtractor()
	assert.Nil(t, e.ParseLine(""))
	assert.Nil(t, e.ParseLine("SKU123"))
	assert.Nil(t, e.ParseLine("SKU123 5"))
}

func TestParseLine_NoCodeOrDescription(t *testing.T) {
	assert.Nil(t, newTestExtractor().ParseLine("1 2 3.5"))
}

func TestParseLine_QuantityUpperBound(t *testing.T) {
	item := newTestExtractor().ParseLine("AA1 10001 2.00 Widget")
	require.NotNil(t, item)
	require.NotNil(t, item.Quantity)
	assert.Equal(t, "2", item.Quantity.String())
	assert.Nil(t, item.UnitCost)
	require.NotNil(t, item.Description)
	assert.Equal(t, "Widget", *item.Description)
}

func TestParseLine_ZeroQuantityRejected(t *testing.T) {
	item := newTestExtractor().ParseLine("AA1 0 2.50 Widget")
	require.NotNil(t, item)
	require.NotNil(t, item.Quantity)
	assert.Equal(t, "2.5", item.Quantity.String())
}

func TestParseLine_ShortDescriptionDropped(t *testing.T) {
	item := newTestExtractor().ParseLine("AB1 2 3.50 box")
	require.NotNil(t, item)
	require.NotNil(t, item.Code)
	assert.Equal(t, "AB1", *item.Code)
	assert.Nil(t, item.Description)
	assert.NotContains(t, item.Confidence, ItemFieldDescription)
}

func TestParseLine_DescriptionWithoutCode(t *testing.T) {
	item := newTestExtractor().ParseLine("1 2.50 pre-cut pine-board")
	require.NotNil(t, item)
	assert.Nil(t, item.Code)
	require.NotNil(t, item.Description)
	assert.Equal(t, "pre-cut pine-board", *item.Description)
}
