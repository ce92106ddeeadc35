package store

import (
	"time"

	"github.com/custsvc/interactions-api/internal/core/query"
)

// TimestampLayout is the sort-key format: ISO-8601 local time with
// microseconds, fixed width so strings sort chronologically.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Interaction is one customer-service contact on an account.
type Interaction struct {
	AccountNumber string `json:"account_number" dynamodbav:"account_number"`
	Timestamp     string `json:"timestamp" dynamodbav:"timestamp"`
	InteractionID string `json:"interaction_id" dynamodbav:"interaction_id"`
	Reason        string `json:"reason" dynamodbav:"reason"`
	Solution      string `json:"solution" dynamodbav:"solution"`
	Summary       string `json:"summary" dynamodbav:"summary"`
	Channel       string `json:"channel" dynamodbav:"channel"`
}

// Marker returns the continuation marker pointing at this row.
func (i Interaction) Marker() query.Marker {
	return query.Marker{
		query.AttrAccountNumber: i.AccountNumber,
		query.AttrTimestamp:     i.Timestamp,
	}
}

// Page is one query result, newest first. Next is nil when the store has
// nothing more to return; a non-nil Next means more rows may exist even if
// Items holds fewer than the requested limit.
type Page struct {
	Items []Interaction
	Next  query.Marker
}
