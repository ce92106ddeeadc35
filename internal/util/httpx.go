package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/custsvc/interactions-api/internal/core/cursor"
	"github.com/custsvc/interactions-api/internal/core/query"
)

// ErrInvalidLimit is returned by ParseLimit for non-integer or out-of-range values.
var ErrInvalidLimit = errors.New("invalid limit")

// APIError represents a structured error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the top-level error envelope.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes a structured error response.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error: APIError{Code: code, Message: message},
	})
}

// ParseLimit extracts the limit query parameter. An absent value yields
// defaultLimit; anything that is not an integer in [1, maxLimit] is rejected.
func ParseLimit(r *http.Request, defaultLimit, maxLimit int) (int, error) {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidLimit, s)
	}
	if n < 1 || n > maxLimit {
		return 0, fmt.Errorf("%w: must be between 1 and %d", ErrInvalidLimit, maxLimit)
	}
	return n, nil
}

// ParseCursor decodes the opaque cursor query parameter. An absent cursor
// yields a nil marker; a malformed one wraps cursor.ErrInvalidCursor.
func ParseCursor(r *http.Request) (query.Marker, error) {
	s := r.URL.Query().Get("cursor")
	if s == "" {
		return nil, nil
	}
	return cursor.Decode(s)
}

// ParseDateRange reads the optional from/to query parameters verbatim.
func ParseDateRange(r *http.Request) query.DateRange {
	q := r.URL.Query()
	return query.DateRange{From: q.Get("from"), To: q.Get("to")}
}
