// Package bootstrap prepares a backing store before the API is served:
// it creates the interactions table and can load sample records.
package bootstrap

import (
	"time"

	"github.com/custsvc/interactions-api/internal/store"
)

// SampleInteractions returns the demo records relative to base: three
// interactions on account 123456789 (1, 5 and 10 days ago) and one on
// account 987654321 (2 days ago).
func SampleInteractions(base time.Time) []store.Interaction {
	ago := func(days int) string { return store.FormatTimestamp(base.AddDate(0, 0, -days)) }
	return []store.Interaction{
		{
			AccountNumber: "123456789",
			Timestamp:     ago(1),
			InteractionID: "int-001",
			Reason:        "billing",
			Solution:      "invoice resent to email",
			Summary:       "Customer called about missing invoice; agent verified account and resent it.",
			Channel:       "voice",
		},
		{
			AccountNumber: "123456789",
			Timestamp:     ago(5),
			InteractionID: "int-002",
			Reason:        "technical support",
			Solution:      "Wi-Fi password reset",
			Summary:       "Customer reported no internet. Agent guided through router reboot and Wi-Fi password reset.",
			Channel:       "chat",
		},
		{
			AccountNumber: "123456789",
			Timestamp:     ago(10),
			InteractionID: "int-003",
			Reason:        "cancellations",
			Solution:      "Retention offer applied",
			Summary:       "Customer called to cancel service. Agent offered a 20% discount for 6 months, customer accepted.",
			Channel:       "voice",
		},
		{
			AccountNumber: "987654321",
			Timestamp:     ago(2),
			InteractionID: "int-004",
			Reason:        "billing",
			Solution:      "Payment plan setup",
			Summary:       "Customer requested extension for bill payment. Agent set up a 3-month payment plan.",
			Channel:       "WhatsApp",
		},
	}
}
