package query

// Build converts validated request parameters into a Descriptor.
// limit is expected to be within [1, 100]; bounds are enforced by the
// request layer. Reusing a startAfter marker with a different account or
// range gives undefined results.
func Build(accountNumber string, r DateRange, limit int, startAfter Marker) Descriptor {
	return Descriptor{
		AccountNumber: accountNumber,
		Sort:          sortCondition(r),
		Limit:         limit,
		Descending:    true,
		StartAfter:    startAfter,
	}
}

func sortCondition(r DateRange) SortCondition {
	switch kind := r.Kind(); kind {
	case Between:
		return SortCondition{Kind: kind, Low: r.From, High: r.To}
	case LowerOnly:
		return SortCondition{Kind: kind, Low: r.From}
	case UpperOnly:
		return SortCondition{Kind: kind, High: r.To}
	default:
		return SortCondition{Kind: Unbounded}
	}
}

// Matches reports whether a timestamp satisfies the condition. Stores that
// filter in process (the memory store) use it; ISO-8601 strings compare
// lexicographically.
func (c SortCondition) Matches(ts string) bool {
	switch c.Kind {
	case Between:
		return ts >= c.Low && ts <= c.High
	case LowerOnly:
		return ts >= c.Low
	case UpperOnly:
		return ts <= c.High
	default:
		return true
	}
}
