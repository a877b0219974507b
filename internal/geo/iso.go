package geo

import "strings"

// isoCodes maps canonical English country names to ISO 3166-1 alpha-2
// codes. Aggregations key on these codes so spelling variants of the same
// country collapse into one entry; names without a mapping are kept as-is.
var isoCodes = map[string]string{
	"afghanistan":          "AF",
	"argentina":            "AR",
	"australia":            "AU",
	"austria":              "AT",
	"belgium":              "BE",
	"bolivia":              "BO",
	"brazil":               "BR",
	"cambodia":             "KH",
	"canada":               "CA",
	"chile":                "CL",
	"china":                "CN",
	"colombia":             "CO",
	"croatia":              "HR",
	"cuba":                 "CU",
	"czech republic":       "CZ",
	"czechia":              "CZ",
	"denmark":              "DK",
	"ecuador":              "EC",
	"egypt":                "EG",
	"ethiopia":             "ET",
	"finland":              "FI",
	"france":               "FR",
	"germany":              "DE",
	"greece":               "GR",
	"greenland":            "GL",
	"hungary":              "HU",
	"iceland":              "IS",
	"india":                "IN",
	"indonesia":            "ID",
	"iran":                 "IR",
	"ireland":              "IE",
	"israel":               "IL",
	"italy":                "IT",
	"japan":                "JP",
	"jordan":               "JO",
	"kazakhstan":           "KZ",
	"kenya":                "KE",
	"laos":                 "LA",
	"madagascar":           "MG",
	"malaysia":             "MY",
	"mexico":               "MX",
	"mongolia":             "MN",
	"morocco":              "MA",
	"myanmar":              "MM",
	"namibia":              "NA",
	"nepal":                "NP",
	"netherlands":          "NL",
	"new zealand":          "NZ",
	"norway":               "NO",
	"oman":                 "OM",
	"pakistan":             "PK",
	"peru":                 "PE",
	"philippines":          "PH",
	"poland":               "PL",
	"portugal":             "PT",
	"romania":              "RO",
	"russia":               "RU",
	"saudi arabia":         "SA",
	"singapore":            "SG",
	"slovenia":             "SI",
	"south africa":         "ZA",
	"south korea":          "KR",
	"spain":                "ES",
	"sri lanka":            "LK",
	"sweden":               "SE",
	"switzerland":          "CH",
	"tanzania":             "TZ",
	"thailand":             "TH",
	"tunisia":              "TN",
	"turkey":               "TR",
	"türkiye":              "TR",
	"ukraine":              "UA",
	"united arab emirates": "AE",
	"united kingdom":       "GB",
	"uk":                   "GB",
	"united states":        "US",
	"usa":                  "US",
	"uzbekistan":           "UZ",
	"vietnam":              "VN",
	"zambia":               "ZM",
	"zimbabwe":             "ZW",
}

// englishNames maps ISO codes back to the canonical English name used when
// matching world-map SVG attributes.
var englishNames = map[string]string{}

func init() {
	// Map iteration order is random, so pick canonical names
	// deterministically: prefer ASCII names, then the longest (aliases like
	// "usa" and localized spellings like "türkiye" lose out).
	for name, code := range isoCodes {
		existing, ok := englishNames[code]
		if !ok {
			englishNames[code] = name
			continue
		}
		if isASCII(name) != isASCII(existing) {
			if isASCII(name) {
				englishNames[code] = name
			}
			continue
		}
		if len(name) > len(existing) {
			englishNames[code] = name
		}
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

// ISOCode looks up the ISO 3166-1 alpha-2 code for a country name.
// Matching is case-insensitive on the trimmed name.
func ISOCode(country string) (string, bool) {
	code, ok := isoCodes[strings.ToLower(strings.TrimSpace(country))]
	return code, ok
}

// CanonicalCountry returns a stable key for grouping: the ISO code when the
// country is recognized, otherwise the trimmed raw name.
func CanonicalCountry(country string) string {
	if code, ok := ISOCode(country); ok {
		return code
	}
	return strings.TrimSpace(country)
}

// EnglishName returns the canonical English country name for an ISO code,
// in title case. The second return reports whether the code is known.
func EnglishName(code string) (string, bool) {
	name, ok := englishNames[strings.ToUpper(code)]
	if !ok {
		return "", false
	}
	return titleCase(name), true
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
