package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/models"
)

// Reconciler repairs stored statuses lazily during reads: each listing
// recomputes every record's status and persists the ones that drifted, so no
// background job is needed. Recomputing an unchanged status is a no-op, which
// makes concurrent reconciliation of the same rows harmless.
type Reconciler struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

func NewReconciler(db *gorm.DB, logger *zap.Logger) *Reconciler {
	return &Reconciler{db: db, logger: logger.Named("reconciler"), now: time.Now}
}

type statusChange struct {
	id     string
	status models.Status
}

// Certificates recomputes and persists certificate statuses in place.
// A row that fails to update keeps its corrected value in the response but is
// only logged; the listing never fails because one row could not be written.
func (r *Reconciler) Certificates(ctx context.Context, certs []models.Certificate) []models.Certificate {
	today := r.now()
	var changes []statusChange
	for i := range certs {
		want := Classify(certs[i].Expiry, today, CertificateLookaheadDays)
		if want != certs[i].Status {
			certs[i].Status = want
			changes = append(changes, statusChange{certs[i].ID.String(), want})
		}
	}
	r.persist(ctx, &models.Certificate{}, changes)
	return certs
}

// Documents recomputes and persists document statuses in place.
func (r *Reconciler) Documents(ctx context.Context, docs []models.Document) []models.Document {
	today := r.now()
	var changes []statusChange
	for i := range docs {
		want := Classify(docs[i].Expiry, today, DocumentLookaheadDays)
		if want != docs[i].Status {
			docs[i].Status = want
			changes = append(changes, statusChange{docs[i].ID.String(), want})
		}
	}
	r.persist(ctx, &models.Document{}, changes)
	return docs
}

// persist writes the changed statuses in one transaction. Individual update
// errors are logged and skipped so the remaining rows still reconcile.
func (r *Reconciler) persist(ctx context.Context, model any, changes []statusChange) {
	if len(changes) == 0 {
		return
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ch := range changes {
			res := tx.Model(model).Where("id = ?", ch.id).Update("status", ch.status)
			if res.Error != nil {
				r.logger.Warn("status update skipped",
					zap.String("id", ch.id),
					zap.String("status", string(ch.status)),
					zap.Error(res.Error))
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("status reconciliation commit failed", zap.Error(err))
	}
}
