package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		mpn      string
		scraped  string
		expected Outcome
	}{
		{"identical", "CSD12126B", "CSD12126B", Exact},
		{"case-insensitive lower query", "abc123", "ABC123", Exact},
		{"case-insensitive lower scraped", "ABC123", "abc123", Exact},
		{"surrounding whitespace trimmed", "CSD12126B", "  CSD12126B ", Exact},
		{"mpn inside scraped", "CSD12126", "CSD12126B", Partial},
		{"scraped inside mpn", "CSD12126B", "CSD12126", Partial},
		{"unrelated", "CSD12126B", "ST201M-C5", None},
		{"empty scraped", "CSD12126B", "", None},
		{"empty mpn", "", "CSD12126B", None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.mpn, tt.scraped))
		})
	}
}

func TestBestToken(t *testing.T) {
	tokens := ExtractSKUTokens("Hoffman CSD12126B Wall Mount CSD12126")

	t.Run("equality wins as exact", func(t *testing.T) {
		sku, outcome := BestToken("CSD12126B", tokens)
		assert.Equal(t, Exact, outcome)
		assert.Equal(t, "CSD12126B", sku)
	})

	t.Run("containment is only partial", func(t *testing.T) {
		// CSD12126 is a prefix of CSD12126B; the first containing token
		// wins, and it is not an exact match.
		sku, outcome := BestToken("CSD12126", tokens)
		assert.Equal(t, Partial, outcome)
		assert.Equal(t, "CSD12126B", sku)
	})

	t.Run("no relation", func(t *testing.T) {
		sku, outcome := BestToken("ST201M-C5", tokens)
		assert.Equal(t, None, outcome)
		assert.Empty(t, sku)
	})

	t.Run("first match is terminal", func(t *testing.T) {
		// Later tokens are never evaluated once one contains the MPN,
		// even if an exact token appears further on.
		sku, outcome := BestToken("CSD12126", []string{"CSD12126B", "CSD12126"})
		assert.Equal(t, Partial, outcome)
		assert.Equal(t, "CSD12126B", sku)
	})
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "exact", Exact.String())
	assert.Equal(t, "partial", Partial.String())
	assert.Equal(t, "none", None.String())
}
