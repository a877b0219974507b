package geo_test

import (
	"testing"

	"wanderbot/internal/geo"
)

func TestISOCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{name: "exact match", input: "norway", expected: "NO", found: true},
		{name: "case insensitive", input: "Norway", expected: "NO", found: true},
		{name: "surrounding whitespace", input: "  japan  ", expected: "JP", found: true},
		{name: "common alias", input: "USA", expected: "US", found: true},
		{name: "localized alias", input: "türkiye", expected: "TR", found: true},
		{name: "unknown country", input: "Atlantis", expected: "", found: false},
		{name: "empty", input: "", expected: "", found: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			code, ok := geo.ISOCode(tc.input)
			if ok != tc.found || code != tc.expected {
				t.Errorf("ISOCode(%q) = (%q, %v), expected (%q, %v)", tc.input, code, ok, tc.expected, tc.found)
			}
		})
	}
}

func TestCanonicalCountry(t *testing.T) {
	t.Parallel()

	if got := geo.CanonicalCountry("Norway"); got != "NO" {
		t.Errorf("CanonicalCountry(Norway) = %q, expected NO", got)
	}
	// Unknown names pass through trimmed so they still group consistently.
	if got := geo.CanonicalCountry("  Atlantis "); got != "Atlantis" {
		t.Errorf("CanonicalCountry(Atlantis) = %q, expected Atlantis", got)
	}
}

func TestEnglishName(t *testing.T) {
	t.Parallel()

	name, ok := geo.EnglishName("NO")
	if !ok || name != "Norway" {
		t.Errorf("EnglishName(NO) = (%q, %v), expected (Norway, true)", name, ok)
	}
	// ASCII name wins over localized aliases mapping to the same code.
	name, ok = geo.EnglishName("TR")
	if !ok || name != "Turkey" {
		t.Errorf("EnglishName(TR) = (%q, %v), expected (Turkey, true)", name, ok)
	}
	if _, ok := geo.EnglishName("XX"); ok {
		t.Error("EnglishName(XX) should not resolve")
	}
}
