package services

import (
	"time"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/models"
)

// Lookahead windows: days before expiry at which a record flips to EXPIRING.
const (
	CertificateLookaheadDays = 120
	DocumentLookaheadDays    = 90

	// AlertWindowDays is the sub-window for dashboard alerts.
	AlertWindowDays = 30
)

// toDate normalizes a timestamp to midnight UTC so that status decisions
// compare calendar dates, not instants.
func toDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole-day calendar difference to - from.
// Negative when to precedes from.
func daysBetween(from, to time.Time) int {
	return int(toDate(to).Sub(toDate(from)).Hours() / 24)
}

// Classify maps an optional expiry date and today's date to a status.
// A record without an expiry has unlimited validity.
func Classify(expiry *time.Time, today time.Time, lookaheadDays int) models.Status {
	if expiry == nil {
		return models.StatusValid
	}
	remaining := daysBetween(today, *expiry)
	switch {
	case remaining < 0:
		return models.StatusExpired
	case remaining <= lookaheadDays:
		return models.StatusExpiring
	default:
		return models.StatusValid
	}
}
