package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/models"
)

func newDashboard(t *testing.T, db *gorm.DB, today time.Time) *DashboardService {
	t.Helper()
	log := zaptest.NewLogger(t)
	rec := NewReconciler(db, log)
	rec.now = func() time.Time { return today }
	svc := NewDashboardService(db, rec, log)
	svc.now = rec.now
	return svc
}

func TestSummarizeEmptyUser(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboard(t, db, date(2025, 6, 15))

	summary, err := svc.Summarize(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Certificates.Total)
	assert.Equal(t, 100, summary.Certificates.CompliancePercent, "no certificates means fully compliant")
	assert.Equal(t, 0, summary.Documents.Total)
	assert.Empty(t, summary.Alerts)
	assert.Equal(t, 0, summary.SeaTime.TotalDays)
	assert.Nil(t, summary.SeaTime.LastVessel)
}

func TestSummarizeCountsAndCompliance(t *testing.T) {
	db := newTestDB(t)
	today := date(2025, 6, 15)
	svc := newDashboard(t, db, today)
	userID := uuid.New()

	certs := []models.Certificate{
		{UserID: userID, CertName: "CoC", Expiry: datePtr(2030, 1, 1), Status: models.StatusValid},
		{UserID: userID, CertName: "GMDSS", Expiry: datePtr(2025, 6, 25), Status: models.StatusValid},  // reconciles to EXPIRING
		{UserID: userID, CertName: "Medical", Expiry: datePtr(2025, 6, 14), Status: models.StatusValid}, // reconciles to EXPIRED
	}
	for i := range certs {
		require.NoError(t, db.Create(&certs[i]).Error)
	}

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Certificates.Total)
	assert.Equal(t, 1, summary.Certificates.Valid)
	assert.Equal(t, 1, summary.Certificates.Expiring)
	assert.Equal(t, 1, summary.Certificates.Expired)
	assert.Equal(t, 33, summary.Certificates.CompliancePercent)
}

func TestSummarizeAlerts(t *testing.T) {
	db := newTestDB(t)
	today := date(2025, 6, 15)
	svc := newDashboard(t, db, today)
	userID := uuid.New()

	// EXPIRING within the 30-day alert window
	require.NoError(t, db.Create(&models.Certificate{
		UserID: userID, CertName: "GMDSS", Expiry: datePtr(2025, 6, 25), Status: models.StatusValid,
	}).Error)
	// EXPIRING but outside the alert window (100 days out, inside the 120-day cert window)
	require.NoError(t, db.Create(&models.Certificate{
		UserID: userID, CertName: "CoC", Expiry: datePtr(2025, 9, 23), Status: models.StatusValid,
	}).Error)
	// EXPIRED yesterday: never an alert
	require.NoError(t, db.Create(&models.Certificate{
		UserID: userID, CertName: "Medical", Expiry: datePtr(2025, 6, 14), Status: models.StatusValid,
	}).Error)
	// document more urgent than the certificate
	require.NoError(t, db.Create(&models.Document{
		UserID: userID, DocName: "Visa", Expiry: datePtr(2025, 6, 18), Status: models.StatusValid,
		UploadDate: date(2025, 5, 1),
	}).Error)

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, summary.Alerts, 2)
	assert.Equal(t, "document", summary.Alerts[0].Type)
	assert.Equal(t, "Visa", summary.Alerts[0].Name)
	assert.Equal(t, 3, summary.Alerts[0].DaysRemaining)
	assert.Equal(t, "certificate", summary.Alerts[1].Type)
	assert.Equal(t, 10, summary.Alerts[1].DaysRemaining)
}

func TestSummarizeAlertsTruncatedToFive(t *testing.T) {
	db := newTestDB(t)
	today := date(2025, 6, 15)
	svc := newDashboard(t, db, today)
	userID := uuid.New()

	for day := 1; day <= 8; day++ {
		expiry := date(2025, 6, 15+day)
		require.NoError(t, db.Create(&models.Certificate{
			UserID: userID, CertName: "Cert", Expiry: &expiry, Status: models.StatusValid,
		}).Error)
	}

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, summary.Alerts, 5)
	for i := 1; i < len(summary.Alerts); i++ {
		assert.LessOrEqual(t, summary.Alerts[i-1].DaysRemaining, summary.Alerts[i].DaysRemaining)
	}
	assert.Equal(t, 1, summary.Alerts[0].DaysRemaining)
	assert.Equal(t, 5, summary.Alerts[4].DaysRemaining)
}

func TestSummarizeRecentDocuments(t *testing.T) {
	db := newTestDB(t)
	today := date(2025, 6, 15)
	svc := newDashboard(t, db, today)
	userID := uuid.New()

	names := []string{"Passport", "Visa", "Yellow Fever Card", "Discharge Book"}
	for i, name := range names {
		require.NoError(t, db.Create(&models.Document{
			UserID:     userID,
			DocName:    name,
			Status:     models.StatusValid,
			UploadDate: date(2025, 1, 1+i),
		}).Error)
	}

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Documents.Total)
	require.Len(t, summary.Documents.Recent, 3)
	assert.Equal(t, "Discharge Book", summary.Documents.Recent[0].Name)
	assert.Equal(t, "Yellow Fever Card", summary.Documents.Recent[1].Name)
	assert.Equal(t, "Visa", summary.Documents.Recent[2].Name)
}

func TestSummarizeSeaTimeAndNRI(t *testing.T) {
	db := newTestDB(t)
	today := date(2025, 6, 15) // compliance window [2025-03-31, 2026-03-31]
	svc := newDashboard(t, db, today)
	userID := uuid.New()

	logs := []models.SeaTimeLog{
		{UserID: userID, VesselName: "MV Vega", Rank: "CE", SignOn: date(2025, 6, 1), SignOff: date(2025, 10, 29)},
		{UserID: userID, VesselName: "MV Orion", Rank: "2E", SignOn: date(2025, 4, 1), SignOff: date(2025, 5, 11)},
	}
	for i := range logs {
		require.NoError(t, db.Create(&logs[i]).Error)
	}

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 190, summary.SeaTime.TotalDays)
	require.NotNil(t, summary.SeaTime.LastVessel)
	assert.Equal(t, "MV Vega", *summary.SeaTime.LastVessel)
	assert.Equal(t, "CE", *summary.SeaTime.LastRank)

	assert.Equal(t, 190, summary.NRIStatus.Days)
	assert.True(t, summary.NRIStatus.IsRetained)
	assert.Equal(t, 0, summary.NRIStatus.DaysRemaining)
}

func TestSummarizeScopedToUser(t *testing.T) {
	db := newTestDB(t)
	today := date(2025, 6, 15)
	svc := newDashboard(t, db, today)
	userID := uuid.New()
	otherID := uuid.New()

	require.NoError(t, db.Create(&models.Certificate{
		UserID: otherID, CertName: "Not yours", Expiry: datePtr(2025, 6, 14), Status: models.StatusValid,
	}).Error)

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Certificates.Total)
	assert.Equal(t, 100, summary.Certificates.CompliancePercent)
}
