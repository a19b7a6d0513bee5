package matching

import "strings"

// Outcome is the classification of a scraped identifier against the query MPN.
type Outcome int

const (
	// None means the identifier bears no usable relation to the MPN.
	None Outcome = iota
	// Partial means one identifier contains the other but they are not
	// equal. Partial results are surfaced with exact_match=false and the
	// scraped SKU preserved so a reviewer can judge relevance.
	Partial
	// Exact means the identifiers are equal after trimming, ignoring case.
	Exact
)

func (o Outcome) String() string {
	switch o {
	case Exact:
		return "exact"
	case Partial:
		return "partial"
	default:
		return "none"
	}
}

// Classify compares a scraped identifier to the query MPN. Comparison is
// case-insensitive after trimming surrounding whitespace. Substring
// containment in either direction yields Partial; only equality yields
// Exact.
func Classify(mpn, scraped string) Outcome {
	m := strings.ToUpper(strings.TrimSpace(mpn))
	s := strings.ToUpper(strings.TrimSpace(scraped))
	if m == "" || s == "" {
		return None
	}
	if m == s {
		return Exact
	}
	if strings.Contains(s, m) || strings.Contains(m, s) {
		return Partial
	}
	return None
}

// BestToken scans extracted title tokens for the query MPN. The first
// token containing the MPN wins and later tokens are not considered.
// Equality is required for Exact; containment alone is only Partial, so
// an MPN that is a prefix of a longer valid SKU never upgrades to an
// exact match.
func BestToken(mpn string, tokens []string) (string, Outcome) {
	m := strings.ToUpper(strings.TrimSpace(mpn))
	for _, t := range tokens {
		if !strings.Contains(t, m) {
			continue
		}
		if t == m {
			return t, Exact
		}
		return t, Partial
	}
	return "", None
}
