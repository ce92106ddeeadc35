// Package query translates interaction history requests into store-agnostic
// range-query descriptors.
//
// A Descriptor always selects one account (the partition key) and orders rows
// by timestamp (the sort key), newest first. Stores translate it into their
// native query form.
package query

// Key attribute names shared by every store and by continuation markers.
const (
	AttrAccountNumber = "account_number"
	AttrTimestamp     = "timestamp"
)

// RangeKind tags which timestamp bounds a query carries.
type RangeKind int

const (
	// Unbounded applies no sort-key filter.
	Unbounded RangeKind = iota
	// LowerOnly keeps rows with timestamp >= From.
	LowerOnly
	// UpperOnly keeps rows with timestamp <= To.
	UpperOnly
	// Between keeps rows with From <= timestamp <= To.
	Between
)

func (k RangeKind) String() string {
	switch k {
	case Unbounded:
		return "unbounded"
	case LowerOnly:
		return "lower_only"
	case UpperOnly:
		return "upper_only"
	case Between:
		return "between"
	}
	return "unknown"
}

// DateRange holds optional inclusive ISO-8601 bounds. An empty string means
// the bound is absent. From <= To is left to the caller.
type DateRange struct {
	From string
	To   string
}

// Kind reports which bounds are present.
func (r DateRange) Kind() RangeKind {
	switch {
	case r.From != "" && r.To != "":
		return Between
	case r.From != "":
		return LowerOnly
	case r.To != "":
		return UpperOnly
	default:
		return Unbounded
	}
}

// Marker identifies the last row a store returned: the key attributes of that
// row (account_number and timestamp). A nil Marker means no more data.
type Marker map[string]string

// AccountNumber returns the partition key held by the marker.
func (m Marker) AccountNumber() string { return m[AttrAccountNumber] }

// Timestamp returns the sort key held by the marker.
func (m Marker) Timestamp() string { return m[AttrTimestamp] }

// SortCondition is the timestamp filter of a query.
type SortCondition struct {
	Kind RangeKind
	// Low is set for LowerOnly and Between.
	Low string
	// High is set for UpperOnly and Between.
	High string
}

// Descriptor is a fully resolved range query over one account.
type Descriptor struct {
	AccountNumber string
	Sort          SortCondition
	Limit         int
	// Descending is always true; stores read newest first.
	Descending bool
	// StartAfter resumes strictly after this row when non-nil.
	StartAfter Marker
}
