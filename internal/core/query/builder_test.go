package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_RangeComposition(t *testing.T) {
	cases := []struct {
		name string
		r    DateRange
		want SortCondition
	}{
		{"neither", DateRange{}, SortCondition{Kind: Unbounded}},
		{"from only", DateRange{From: "2025-01-01"}, SortCondition{Kind: LowerOnly, Low: "2025-01-01"}},
		{"to only", DateRange{To: "2025-02-01"}, SortCondition{Kind: UpperOnly, High: "2025-02-01"}},
		{"both", DateRange{From: "2025-01-01", To: "2025-02-01"}, SortCondition{Kind: Between, Low: "2025-01-01", High: "2025-02-01"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Build("123456789", tc.r, 10, nil)
			assert.Equal(t, tc.want, d.Sort)
			assert.Equal(t, "123456789", d.AccountNumber)
		})
	}
}

func TestBuild_AlwaysDescending(t *testing.T) {
	d := Build("123456789", DateRange{From: "a"}, 5, nil)
	assert.True(t, d.Descending)
	assert.Equal(t, 5, d.Limit)
	assert.Nil(t, d.StartAfter)
}

func TestBuild_StartAfter(t *testing.T) {
	m := Marker{AttrAccountNumber: "123456789", AttrTimestamp: "2025-01-05T00:00:00.000000"}
	d := Build("123456789", DateRange{}, 2, m)
	assert.Equal(t, m, d.StartAfter)
	assert.Equal(t, "123456789", d.StartAfter.AccountNumber())
	assert.Equal(t, "2025-01-05T00:00:00.000000", d.StartAfter.Timestamp())
}

func TestBuild_Idempotent(t *testing.T) {
	r := DateRange{From: "2025-01-01", To: "2025-02-01"}
	assert.Equal(t, Build("1", r, 3, nil), Build("1", r, 3, nil))
}

func TestSortCondition_Matches(t *testing.T) {
	between := sortCondition(DateRange{From: "2025-01-02", To: "2025-01-04"})
	assert.False(t, between.Matches("2025-01-01T23:59:59"))
	assert.True(t, between.Matches("2025-01-02"))
	assert.True(t, between.Matches("2025-01-03T12:00:00"))
	assert.True(t, between.Matches("2025-01-04"))
	assert.False(t, between.Matches("2025-01-04T00:00:01"))

	lower := sortCondition(DateRange{From: "2025-01-02"})
	assert.True(t, lower.Matches("2030-01-01"))
	assert.False(t, lower.Matches("2025-01-01"))

	upper := sortCondition(DateRange{To: "2025-01-02"})
	assert.True(t, upper.Matches("2020-01-01"))
	assert.False(t, upper.Matches("2025-01-03"))

	assert.True(t, sortCondition(DateRange{}).Matches("anything"))
}

func TestRangeKind_String(t *testing.T) {
	assert.Equal(t, "between", Between.String())
	assert.Equal(t, "unbounded", DateRange{}.Kind().String())
	assert.Equal(t, "unknown", RangeKind(42).String())
}
