// Package cursor converts store continuation markers to and from the opaque
// tokens handed to API callers.
//
// A token is the RFC 8785 canonical JSON form of the marker, encoded as
// unpadded URL-safe base64. Canonical JSON makes encoding deterministic, so
// the same marker always yields the same token on any instance. Tokens carry
// no signature: a tampered token may decode into a marker that matches no
// row, which the store answers with an empty page.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"github.com/custsvc/interactions-api/internal/core/query"
)

// ErrInvalidCursor is returned when a token is not valid base64 or does not
// hold a well-formed marker.
var ErrInvalidCursor = errors.New("invalid cursor")

// Encode returns the opaque token for m. A nil or empty marker encodes to "".
func Encode(m query.Marker) string {
	if len(m) == 0 {
		return ""
	}
	raw, _ := json.Marshal(map[string]string(m))
	canon, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		canon = raw
	}
	return base64.RawURLEncoding.EncodeToString(canon)
}

// Decode parses a token produced by Encode. Padded tokens are accepted too.
func Decode(token string) (query.Marker, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if err := validate(m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	return query.Marker(m), nil
}

func validate(m map[string]string) error {
	for _, attr := range []string{query.AttrAccountNumber, query.AttrTimestamp} {
		if m[attr] == "" {
			return fmt.Errorf("missing %s", attr)
		}
	}
	if len(m) != 2 {
		return errors.New("unexpected key attributes")
	}
	return nil
}
