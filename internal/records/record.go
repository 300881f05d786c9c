// Package records contains the apprenticeship indenture record type and its CSV loader.
package records

// Column names recognized in the indenture table.
const (
	ColNumber      = "apprentice_number"
	ColFirst       = "apprentice_first"
	ColLast        = "apprentice_last"
	ColName        = "apprentice_name"
	ColAppBirth    = "app_birth"
	ColMasterName  = "master_name"
	ColMasterBirth = "master_birth"
	ColYear        = "year"
)

// RequiredColumns lists the columns every input table must carry.
var RequiredColumns = []string{
	ColNumber,
	ColFirst,
	ColLast,
	ColName,
	ColAppBirth,
	ColMasterName,
	ColMasterBirth,
	ColYear,
}

// Record is one row of the indenture table. All values are kept as the strings
// read from the file; an empty string means the value is missing.
//
// A Record is shared read-only across traversals. Per-traversal annotations
// (node id, generation) live in the traversal, never on the record.
type Record struct {
	Index       int    // zero-based row position in the input
	Number      string // apprentice_number
	First       string // apprentice_first
	Last        string // apprentice_last
	Name        string // apprentice_name, matched against later masters
	AppBirth    string // app_birth
	MasterName  string // master_name
	MasterBirth string // master_birth
	Year        string // year of indenture

	// Extra holds columns outside the recognized set, keyed by header.
	Extra map[string]string
}

// Label returns the human-readable node label "First Last (year)".
func (r *Record) Label() string {
	return r.First + " " + r.Last + " (" + r.Year + ")"
}

// HasYear reports whether the indenture year is present.
func (r *Record) HasYear() bool {
	return r.Year != ""
}

// HasApprenticeIdentity reports whether the apprentice name and birth year are
// both present, the minimum needed to match the apprentice against a later master.
func (r *Record) HasApprenticeIdentity() bool {
	return r.Name != "" && r.AppBirth != ""
}

// ApprenticeBirthYear parses app_birth.
func (r *Record) ApprenticeBirthYear() (int, error) {
	return ParseYear(ColAppBirth, r.AppBirth)
}

// MasterBirthYear parses master_birth.
func (r *Record) MasterBirthYear() (int, error) {
	return ParseYear(ColMasterBirth, r.MasterBirth)
}

// Get returns the value of a column by header name, including extra columns.
func (r *Record) Get(column string) string {
	switch column {
	case ColNumber:
		return r.Number
	case ColFirst:
		return r.First
	case ColLast:
		return r.Last
	case ColName:
		return r.Name
	case ColAppBirth:
		return r.AppBirth
	case ColMasterName:
		return r.MasterName
	case ColMasterBirth:
		return r.MasterBirth
	case ColYear:
		return r.Year
	}
	return r.Extra[column]
}
