package wafer

// ReferenceOutcome classifies the result of resolving an end-test code
// against the reference specification table. Not finding a row is a normal
// outcome, not an error.
type ReferenceOutcome int

const (
	ReferenceNotFound ReferenceOutcome = iota
	ReferenceFoundWithLimits
	ReferenceFoundNoLimit
)

func (o ReferenceOutcome) String() string {
	switch o {
	case ReferenceFoundWithLimits:
		return "found with limits"
	case ReferenceFoundNoLimit:
		return "found but no limit"
	default:
		return "not found"
	}
}

// ResolveReference looks up an end-test code in the reference table. Both the
// code and every TESTNO value are compared in normalized form. The returned
// row is zero-valued when the outcome is ReferenceNotFound.
func ResolveReference(code string, table []ReferenceLimit) (ReferenceLimit, ReferenceOutcome) {
	want := NormalizeCell(code)
	if want == "" {
		return ReferenceLimit{}, ReferenceNotFound
	}
	for _, row := range table {
		if NormalizeCell(row.TestNo) != want {
			continue
		}
		if row.LoLimit != "" {
			return row, ReferenceFoundWithLimits
		}
		return row, ReferenceFoundNoLimit
	}
	return ReferenceLimit{}, ReferenceNotFound
}
