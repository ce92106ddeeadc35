package store

import "errors"

// ErrStoreUnavailable is returned when the store cannot be reached or is
// throttling/overloaded.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrStoreQueryFailed is returned when the store rejects or fails a query.
var ErrStoreQueryFailed = errors.New("store query failed")
