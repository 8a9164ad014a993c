package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDescription(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Galv Hex Bolt", "galvanized hex bolt"},
		{"90 x 45 mm DAR HW", "90x45mm dressed all round hardwood"},
		{"Screws Qty 100 EA", "screws 100"},
		{"  SS Screw  ", "stainless steel screw"},
		{"Treated Pine Sleeper", "treated pine sleeper"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanDescription(tc.in), "input %q", tc.in)
	}
}

func TestCleanDescription_Idempotent(t *testing.T) {
	once := CleanDescription("90 x 45 mm DAR HW Galv Bracket Qty 2")
	assert.Equal(t, once, CleanDescription(once))
}
