package services

import (
	"time"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/models"
)

// NRI retention rule: more than 182 days outside the country within the
// compliance year retains non-resident status.
const nriRetentionDays = 182

const recentVoyageLimit = 3

type Voyage struct {
	VesselName string    `json:"vesselName"`
	VesselType string    `json:"type"`
	DWT        float64   `json:"dwt"`
	Days       int       `json:"days"`
	SignOff    time.Time `json:"signOff"`
	Rank       string    `json:"rank"`
}

type SeaTimeStats struct {
	TotalDays     int      `json:"totalDays"`
	LastVessel    *string  `json:"lastVessel"`
	LastRank      *string  `json:"lastRank"`
	RecentVoyages []Voyage `json:"recentVoyages"`
}

type NRIStatus struct {
	Days          int    `json:"days"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	IsRetained    bool   `json:"isRetained"`
	DaysRemaining int    `json:"daysRemaining"`
}

// voyageDays is the whole-day length of a voyage, clamped to zero when the
// sign-off precedes the sign-on (bad data must not produce negative sea time).
func voyageDays(signOn, signOff time.Time) int {
	d := daysBetween(signOn, signOff)
	if d < 0 {
		return 0
	}
	return d
}

// usableVoyage filters out rows whose timestamps never parsed or were never set.
func usableVoyage(l *models.SeaTimeLog) bool {
	return !l.SignOn.IsZero() && !l.SignOff.IsZero()
}

// AggregateSeaTime computes cumulative sea service from voyages ordered
// descending by sign-off date.
func AggregateSeaTime(logs []models.SeaTimeLog) SeaTimeStats {
	stats := SeaTimeStats{RecentVoyages: make([]Voyage, 0, recentVoyageLimit)}
	for i := range logs {
		l := &logs[i]
		if !usableVoyage(l) {
			continue
		}
		days := voyageDays(l.SignOn, l.SignOff)
		stats.TotalDays += days

		if stats.LastVessel == nil {
			stats.LastVessel = &l.VesselName
			stats.LastRank = &l.Rank
		}
		if len(stats.RecentVoyages) < recentVoyageLimit {
			stats.RecentVoyages = append(stats.RecentVoyages, Voyage{
				VesselName: l.VesselName,
				VesselType: l.VesselType,
				DWT:        l.DWT,
				Days:       days,
				SignOff:    l.SignOff,
				Rank:       l.Rank,
			})
		}
	}
	return stats
}

// ComplianceYear returns the rolling 12-month window ending on the next
// March 31 on-or-after today. On or before March 31 the window runs from last
// year's March 31; after it, from this year's to next year's.
func ComplianceYear(today time.Time) (start, end time.Time) {
	t := toDate(today)
	year := t.Year()
	if t.Month() < time.March || (t.Month() == time.March && t.Day() <= 31) {
		start = time.Date(year-1, time.March, 31, 0, 0, 0, 0, time.UTC)
		end = time.Date(year, time.March, 31, 0, 0, 0, 0, time.UTC)
	} else {
		start = time.Date(year, time.March, 31, 0, 0, 0, 0, time.UTC)
		end = time.Date(year+1, time.March, 31, 0, 0, 0, 0, time.UTC)
	}
	return start, end
}

// AggregateNRI sums, per voyage, the whole-day overlap between
// [signOn, signOff] and the compliance year.
func AggregateNRI(logs []models.SeaTimeLog, today time.Time) NRIStatus {
	start, end := ComplianceYear(today)

	days := 0
	for i := range logs {
		l := &logs[i]
		if !usableVoyage(l) {
			continue
		}
		overlapStart := toDate(l.SignOn)
		if start.After(overlapStart) {
			overlapStart = start
		}
		overlapEnd := toDate(l.SignOff)
		if end.Before(overlapEnd) {
			overlapEnd = end
		}
		if overlapStart.Before(overlapEnd) {
			days += daysBetween(overlapStart, overlapEnd)
		}
	}

	remaining := nriRetentionDays + 1 - days
	if remaining < 0 {
		remaining = 0
	}
	return NRIStatus{
		Days:          days,
		StartDate:     start.Format("02 Jan 2006"),
		EndDate:       end.Format("02 Jan 2006"),
		IsRetained:    days > nriRetentionDays,
		DaysRemaining: remaining,
	}
}
