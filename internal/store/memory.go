package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/custsvc/interactions-api/internal/core/query"
)

// MemoryStore is an in-process Store for local development and tests.
// It is immutable after construction and safe for concurrent reads.
type MemoryStore struct {
	byAccount   map[string][]Interaction // ascending by timestamp
	maxPageSize int
}

// NewMemoryStore indexes items by account. A later item with the same
// account and timestamp replaces an earlier one.
func NewMemoryStore(items ...Interaction) *MemoryStore {
	s := &MemoryStore{byAccount: make(map[string][]Interaction)}
	seen := make(map[[2]string]int)
	for _, it := range items {
		k := [2]string{it.AccountNumber, it.Timestamp}
		if idx, ok := seen[k]; ok {
			s.byAccount[it.AccountNumber][idx] = it
			continue
		}
		seen[k] = len(s.byAccount[it.AccountNumber])
		s.byAccount[it.AccountNumber] = append(s.byAccount[it.AccountNumber], it)
	}
	for _, rows := range s.byAccount {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Timestamp < rows[j].Timestamp })
	}
	return s
}

// WithMaxPageSize caps every page at n rows regardless of the requested
// limit, the way DynamoDB stops at its 1 MB page boundary.
func (s *MemoryStore) WithMaxPageSize(n int) *MemoryStore {
	s.maxPageSize = n
	return s
}

func (s *MemoryStore) Query(ctx context.Context, d query.Descriptor) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if d.Limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrStoreQueryFailed)
	}
	if d.StartAfter != nil && d.StartAfter.AccountNumber() != d.AccountNumber {
		return &Page{Items: []Interaction{}}, nil
	}

	rows := s.byAccount[d.AccountNumber]
	ordered := make([]Interaction, 0, len(rows))
	for i := range rows {
		it := rows[i]
		if d.Descending {
			it = rows[len(rows)-1-i]
		}
		if !d.Sort.Matches(it.Timestamp) {
			continue
		}
		if d.StartAfter != nil && !after(it.Timestamp, d.StartAfter.Timestamp(), d.Descending) {
			continue
		}
		ordered = append(ordered, it)
	}

	n := d.Limit
	if s.maxPageSize > 0 && s.maxPageSize < n {
		n = s.maxPageSize
	}
	page := &Page{Items: ordered}
	if len(ordered) > n {
		page.Items = ordered[:n]
		page.Next = page.Items[n-1].Marker()
	}
	return page, nil
}

func after(ts, marker string, descending bool) bool {
	if descending {
		return ts < marker
	}
	return ts > marker
}
