package matching

import "strings"

// families is the fixed category relatedness table: every listed term
// (including the family key itself) is mutually related within its group.
// Unknown categories — those appearing in neither a key nor a member list —
// are only exact-matchable.
var families = map[string][]string{
	"medical":   {"health", "firstaid", "medicine", "pharmaceutical"},
	"food":      {"nutrition", "supplies", "rations", "emergency"},
	"shelter":   {"housing", "tents", "blankets", "bedding"},
	"water":     {"hydration", "sanitation", "hygiene"},
	"equipment": {"tools", "gear", "machinery"},
}

// familyOf is built once from families: every member term and the family
// key itself map to the family key.
var familyOf = buildFamilyLookup()

func buildFamilyLookup() map[string]string {
	lookup := make(map[string]string)
	for key, members := range families {
		lookup[key] = key
		for _, m := range members {
			lookup[m] = key
		}
	}
	return lookup
}

func normalize(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// related reports whether a and b belong to the same category family.
// Categories absent from the table are never related to anything but an
// exact (case-insensitive) match of themselves, which categoryScore
// handles separately.
func related(a, b string) bool {
	famA, okA := familyOf[normalize(a)]
	if !okA {
		return false
	}
	famB, okB := familyOf[normalize(b)]
	if !okB {
		return false
	}
	return famA == famB
}

// categoryScore returns the category sub-score for a (need, supply)
// category pair: 1.0×weight on an exact case-insensitive match, 0.5×weight
// when related via families, otherwise 0.
func categoryScore(needCategory, supplyCategory string, weight float64) float64 {
	if strings.EqualFold(needCategory, supplyCategory) {
		return weight
	}
	if related(needCategory, supplyCategory) {
		return 0.5 * weight
	}
	return 0
}
