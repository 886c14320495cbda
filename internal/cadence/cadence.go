package cadence

import "strings"

// Occurrence rates are expressed per 30.44-day month (365.25 / 12).
const (
	DaysPerMonth  = 30.44
	WeeksPerMonth = 4.33
)

// rateTable maps every declared cadence descriptor to its occurrences per
// month. This table is the single source of truth for cadence conversion;
// the catalog's channel frequency strings resolve through it and nowhere
// else.
var rateTable = map[string]float64{
	"daily":                  DaysPerMonth,
	"weekly":                 WeeksPerMonth,
	"monthly":                1.0,
	"quarterly":              0.33,
	"annual":                 0.083,
	"yearly":                 0.083,
	"bi-weekly":              2.17,
	"biweekly":               2.17,
	"bi-monthly":             0.5,
	"semi-monthly":           2.0,
	"twice-weekly":           8.66,
	"three-times-weekly":     13.0,
	"weekdays":               21.7,
	"daily-business":         21.7,
	"weekdays-plus-saturday": 26.0,
	"weekend-only":           8.66,
	"irregular":              1.0,

	// Radio dayparts: sold as recurring daily slots, so they carry
	// day-count rates rather than publication-issue rates.
	"drive-time": 21.7,
	"overnight":  DaysPerMonth,
}

// unknownRate is the fallback for missing or unrecognized descriptors: treat
// the inventory as a single monthly occurrence. This is deliberate policy,
// not an error condition.
const unknownRate = 1.0

// OccurrencesPerMonth converts a human-readable cadence descriptor into a
// canonical occurrences-per-month rate. Lookup is case-insensitive and never
// fails; unknown or empty input yields the conservative monthly default.
func OccurrencesPerMonth(cadence string) float64 {
	key := strings.ToLower(strings.TrimSpace(cadence))
	if rate, ok := rateTable[key]; ok {
		return rate
	}
	return unknownRate
}

// OccurrencesPerMonthOr is OccurrencesPerMonth with a caller-chosen fallback
// cadence for channels whose schema defines one (streaming defaults to
// weekly, events to annual).
func OccurrencesPerMonthOr(cadence, fallback string) float64 {
	if strings.TrimSpace(cadence) == "" {
		return OccurrencesPerMonth(fallback)
	}
	return OccurrencesPerMonth(cadence)
}

// Declared returns every descriptor in the rate table. Used by tests to
// guarantee exhaustive coverage of the vocabulary.
func Declared() []string {
	keys := make([]string, 0, len(rateTable))
	for k := range rateTable {
		keys = append(keys, k)
	}
	return keys
}
