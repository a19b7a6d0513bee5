package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"$7.57", 7.57},
		{"USD 12.50", 12.5},
		{"$1,204.99", 1204.99}, // thousands separator dropped
		{"", 0},
		{"Call for price", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, parsePrice(tt.input), "input: %q", tt.input)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"In Stock: 123", 123},
		{"1,204 In-Stock", 1204},
		{"", 0},
		{"Out of Stock", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseInt(tt.input), "input: %q", tt.input)
	}
}

func TestMinTierPrice(t *testing.T) {
	assert.Equal(t, 7.20, minTierPrice([]float64{12.50, 9.75, 7.20}))
	assert.Equal(t, 9.75, minTierPrice([]float64{0, 9.75, 12.50}), "unparseable tiers skipped")
	assert.Equal(t, 0.0, minTierPrice(nil))
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://www.mouser.com/x", absoluteURL("https://www.mouser.com", "/x"))
	assert.Equal(t, "https://cdn.example.com/x", absoluteURL("https://www.mouser.com", "https://cdn.example.com/x"))
}
