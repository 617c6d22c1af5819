package wafer

// TestRecord is one normalized row of per-die test data.
type TestRecord struct {
	Slot      int     // wafer identifier
	X         int     // die column coordinate
	Y         int     // die row coordinate
	EndTest   string  // normalized end-test code (ET)
	Mark      string  // normalized classification mark (C1_MARK)
	FailCount float64 // FT value, used as the aggregation unit
}

// ReferenceLimit is one row of the reference specification table embedded
// below the record block. All fields are kept in normalized string form.
type ReferenceLimit struct {
	TSNo    string
	TestNo  string
	Comment string
	Mode    string
	HiLimit string
	LoLimit string
}

// Dataset is the parsed view of one converted input sheet: the record block,
// the optional reference table, and the labeled scalars around it.
type Dataset struct {
	Slot           int
	Records        []TestRecord
	Marks          []string // distinct normalized C1_MARK values, encounter order
	Reference      []ReferenceLimit
	HasReference   bool
	Theoretical    float64
	HasTheoretical bool
	Warnings       []string // per-row anomalies collected during parsing
}

// RGB is a color triple used by the formatting hints the core emits.
type RGB struct {
	R, G, B uint8
}

// Hex returns the six-digit uppercase hex form used by the spreadsheet sink.
func (c RGB) Hex() string {
	const digits = "0123456789ABCDEF"
	b := [6]byte{
		digits[c.R>>4], digits[c.R&0xF],
		digits[c.G>>4], digits[c.G&0xF],
		digits[c.B>>4], digits[c.B&0xF],
	}
	return string(b[:])
}
