package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestClassify(t *testing.T) {
	today := date(2025, 6, 15)

	tests := []struct {
		name      string
		expiry    *time.Time
		lookahead int
		want      models.Status
	}{
		{"nil expiry is always valid", nil, 120, models.StatusValid},
		{"expired yesterday", datePtr(2025, 6, 14), 120, models.StatusExpired},
		{"expired long ago", datePtr(2020, 1, 1), 120, models.StatusExpired},
		{"expires today", datePtr(2025, 6, 15), 120, models.StatusExpiring},
		{"inside window", datePtr(2025, 6, 25), 120, models.StatusExpiring},
		{"on window boundary", datePtr(2025, 10, 13), 120, models.StatusExpiring},
		{"one day past window", datePtr(2025, 10, 14), 120, models.StatusValid},
		{"far future", datePtr(2030, 1, 1), 120, models.StatusValid},
		{"zero window expires today", datePtr(2025, 6, 15), 0, models.StatusExpiring},
		{"zero window tomorrow", datePtr(2025, 6, 16), 0, models.StatusValid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.expiry, today, tt.lookahead))
		})
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	// Expiry late tonight must still count as "expires today", not expired,
	// regardless of the timezone suffix it arrived with.
	expiry := time.Date(2025, 6, 15, 23, 30, 0, 0, time.FixedZone("CET", 3600))
	today := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, models.StatusExpiring, Classify(&expiry, today, 90))

	// And an expiry at 00:01 tomorrow is not expired when checked at 23:59 today.
	expiry = time.Date(2025, 6, 16, 0, 1, 0, 0, time.UTC)
	today = time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	assert.NotEqual(t, models.StatusExpired, Classify(&expiry, today, 90))
}
