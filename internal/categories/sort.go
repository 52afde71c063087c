package categories

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator builds a name comparison for one sort; it returns -1, 0 or +1.
// Each call may return a function holding per-sort state, so the result must
// not be shared between goroutines.
type Comparator func() func(a, b string) int

// LocaleOrder compares names the way an English UI lists them: case is a
// tie-breaker only, so "earrings" sorts before "Rings".
func LocaleOrder() Comparator {
	return func() func(a, b string) int {
		// collate.Collator is not safe for concurrent use.
		return collate.New(language.English).CompareString
	}
}

// OrdinalOrder compares names byte by byte.
func OrdinalOrder() Comparator {
	return func() func(a, b string) int {
		return strings.Compare
	}
}

// ComparatorFor maps a configured sort name to its comparator. Unknown names use LocaleOrder.
func ComparatorFor(name string) Comparator {
	if strings.EqualFold(name, "ordinal") {
		return OrdinalOrder()
	}
	return LocaleOrder()
}
