package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/models"
)

const alertLimit = 5

const recentDocumentLimit = 3

type CertificateStats struct {
	Total             int `json:"total"`
	Valid             int `json:"valid"`
	Expiring          int `json:"expiring"`
	Expired           int `json:"expired"`
	CompliancePercent int `json:"compliancePercent"`
}

type RecentDocument struct {
	Name       string        `json:"name"`
	Status     models.Status `json:"status"`
	ExpiryDate *time.Time    `json:"expiryDate"`
	UploadDate time.Time     `json:"uploadDate"`
}

type DocumentStats struct {
	Total    int              `json:"total"`
	Valid    int              `json:"valid"`
	Expiring int              `json:"expiring"`
	Expired  int              `json:"expired"`
	Recent   []RecentDocument `json:"recent"`
}

type Alert struct {
	Type          string    `json:"type"` // "certificate" or "document"
	Name          string    `json:"name"`
	ExpiryDate    time.Time `json:"expiryDate"`
	DaysRemaining int       `json:"daysRemaining"`
}

type DashboardSummary struct {
	SeaTime      SeaTimeStats     `json:"seaTime"`
	Certificates CertificateStats `json:"certificates"`
	Documents    DocumentStats    `json:"documents"`
	Alerts       []Alert          `json:"alerts"`
	NRIStatus    NRIStatus        `json:"nriStatus"`
}

// DashboardService rolls sea-service, certificate and document statistics for
// one user into a single summary. The only writes it performs are the status
// repairs done by the Reconciler it composes.
type DashboardService struct {
	db         *gorm.DB
	reconciler *Reconciler
	logger     *zap.Logger
	now        func() time.Time
}

func NewDashboardService(db *gorm.DB, reconciler *Reconciler, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		db:         db,
		reconciler: reconciler,
		logger:     logger.Named("dashboard"),
		now:        time.Now,
	}
}

// Summarize builds the dashboard payload. The three record fetches are
// independent and run concurrently on the request context.
func (s *DashboardService) Summarize(ctx context.Context, userID uuid.UUID) (*DashboardSummary, error) {
	var (
		certs   []models.Certificate
		docs    []models.Document
		seaLogs []models.SeaTimeLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Omit("file_data").
			Where("user_id = ?", userID).
			Find(&certs).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Omit("file_data").
			Where("user_id = ?", userID).
			Order("upload_date DESC").
			Find(&docs).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Where("user_id = ?", userID).
			Order("sign_off DESC").
			Find(&seaLogs).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	certs = s.reconciler.Certificates(ctx, certs)
	docs = s.reconciler.Documents(ctx, docs)

	today := s.now()
	summary := &DashboardSummary{
		SeaTime:   AggregateSeaTime(seaLogs),
		NRIStatus: AggregateNRI(seaLogs, today),
		Alerts:    make([]Alert, 0, alertLimit),
	}

	for i := range certs {
		switch certs[i].Status {
		case models.StatusValid:
			summary.Certificates.Valid++
		case models.StatusExpiring:
			summary.Certificates.Expiring++
			if a, ok := alertFor("certificate", certs[i].CertName, certs[i].Expiry, today); ok {
				summary.Alerts = append(summary.Alerts, a)
			}
		default:
			summary.Certificates.Expired++
		}
	}
	summary.Certificates.Total = len(certs)
	summary.Certificates.CompliancePercent = compliancePercent(summary.Certificates.Valid, summary.Certificates.Total)

	summary.Documents.Recent = make([]RecentDocument, 0, recentDocumentLimit)
	for i := range docs {
		switch docs[i].Status {
		case models.StatusValid:
			summary.Documents.Valid++
		case models.StatusExpiring:
			summary.Documents.Expiring++
			if a, ok := alertFor("document", docs[i].DocName, docs[i].Expiry, today); ok {
				summary.Alerts = append(summary.Alerts, a)
			}
		default:
			summary.Documents.Expired++
		}
		// docs arrive ordered by upload date descending
		if len(summary.Documents.Recent) < recentDocumentLimit {
			summary.Documents.Recent = append(summary.Documents.Recent, RecentDocument{
				Name:       docs[i].DocName,
				Status:     docs[i].Status,
				ExpiryDate: docs[i].Expiry,
				UploadDate: docs[i].UploadDate,
			})
		}
	}
	summary.Documents.Total = len(docs)

	sort.SliceStable(summary.Alerts, func(i, j int) bool {
		return summary.Alerts[i].DaysRemaining < summary.Alerts[j].DaysRemaining
	})
	if len(summary.Alerts) > alertLimit {
		summary.Alerts = summary.Alerts[:alertLimit]
	}
	return summary, nil
}

// alertFor reports an EXPIRING record as an alert when its expiry falls
// within the 30-day alert window.
func alertFor(kind, name string, expiry *time.Time, today time.Time) (Alert, bool) {
	if expiry == nil {
		return Alert{}, false
	}
	remaining := daysBetween(today, *expiry)
	if remaining > AlertWindowDays {
		return Alert{}, false
	}
	return Alert{
		Type:          kind,
		Name:          name,
		ExpiryDate:    *expiry,
		DaysRemaining: remaining,
	}, true
}

// compliancePercent treats an empty record set as fully compliant.
func compliancePercent(valid, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(valid) / float64(total) * 100))
}
