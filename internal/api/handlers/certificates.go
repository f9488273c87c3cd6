package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/api/middleware"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/models"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/services"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/utils"
)

type CertificateHandler struct {
	db         *gorm.DB
	reconciler *services.Reconciler
	logger     *zap.Logger
}

func NewCertificateHandler(db *gorm.DB, reconciler *services.Reconciler, logger *zap.Logger) *CertificateHandler {
	return &CertificateHandler{db: db, reconciler: reconciler, logger: logger.Named("certificates")}
}

// CertificatePatch is the allow-listed partial update shape; only non-nil
// fields enter the UPDATE set.
type CertificatePatch struct {
	CertName  *string        `json:"certName"`
	CertType  *string        `json:"certType"`
	IssuedBy  *string        `json:"issuedBy"`
	Status    *models.Status `json:"status"`
	Expiry    *time.Time     `json:"expiry"`
	IssueDate *time.Time     `json:"issueDate"`
	Hidden    *bool          `json:"hidden"`
	Archived  *bool          `json:"archived"`
}

func (p *CertificatePatch) Changes() map[string]any {
	changes := map[string]any{}
	if p.CertName != nil {
		changes["cert_name"] = *p.CertName
	}
	if p.CertType != nil {
		changes["cert_type"] = *p.CertType
	}
	if p.IssuedBy != nil {
		changes["issued_by"] = *p.IssuedBy
	}
	if p.Status != nil {
		changes["status"] = *p.Status
	}
	if p.Expiry != nil {
		changes["expiry"] = *p.Expiry
	}
	if p.IssueDate != nil {
		changes["issue_date"] = *p.IssueDate
	}
	if p.Hidden != nil {
		changes["hidden"] = *p.Hidden
	}
	if p.Archived != nil {
		changes["archived"] = *p.Archived
	}
	return changes
}

// List godoc
// @Summary List the caller's certificates
// @Description Statuses are reconciled against today's date before returning. Payload bytes are omitted; the stored size is returned instead.
// @Tags Certificates
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /certificates [get]
func (h *CertificateHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var certs []models.Certificate
	err := h.db.WithContext(r.Context()).
		Omit("file_data").
		Where("user_id = ?", userID).
		Order("upload_date DESC").
		Find(&certs).Error
	if err != nil {
		h.logger.Error("certificate list failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	certs = h.reconciler.Certificates(r.Context(), certs)
	utils.OK(w, "Certificates retrieved successfully", certs)
}

// Create godoc
// @Summary Upload a certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /certificates [post]
func (h *CertificateHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		FileData  []byte     `json:"fileData"`
		CertName  string     `json:"certName"`
		CertType  string     `json:"certType"`
		IssuedBy  string     `json:"issuedBy"`
		Expiry    *time.Time `json:"expiry"`
		IssueDate *time.Time `json:"issueDate"`
		Hidden    bool       `json:"hidden"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.CertName == "" {
		utils.Error(w, http.StatusBadRequest, "Certificate name is required")
		return
	}

	now := time.Now()
	cert := models.Certificate{
		UserID:     userID,
		FileData:   input.FileData,
		Size:       int64(len(input.FileData)),
		CertName:   input.CertName,
		CertType:   input.CertType,
		IssuedBy:   input.IssuedBy,
		Status:     services.Classify(input.Expiry, now, services.CertificateLookaheadDays),
		Expiry:     input.Expiry,
		IssueDate:  input.IssueDate,
		UploadDate: now,
		Hidden:     input.Hidden,
	}
	if err := h.db.WithContext(r.Context()).Create(&cert).Error; err != nil {
		h.logger.Error("certificate insert failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database insert failed")
		return
	}

	cert.FileData = nil
	utils.Created(w, "Certificate uploaded successfully", cert)
}

// Get godoc
// @Summary Fetch one certificate including its payload
// @Tags Certificates
// @Produce json
// @Param id path string true "Certificate id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /certificates/{id} [get]
func (h *CertificateHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Certificate not found")
		return
	}

	var cert models.Certificate
	err = h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&cert).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusNotFound, "Certificate not found")
		return
	case err != nil:
		h.logger.Error("certificate fetch failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.OK(w, "Certificate retrieved successfully", cert)
}

// Update godoc
// @Summary Partially update a certificate
// @Description Unset fields are left untouched; an empty patch is a read-through.
// @Tags Certificates
// @Accept json
// @Produce json
// @Param id path string true "Certificate id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /certificates/{id} [patch]
func (h *CertificateHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Certificate not found")
		return
	}

	var patch CertificatePatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if changes := patch.Changes(); len(changes) > 0 {
		res := h.db.WithContext(r.Context()).
			Model(&models.Certificate{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(changes)
		if res.Error != nil {
			h.logger.Error("certificate update failed", zap.Error(res.Error))
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}
		if res.RowsAffected == 0 {
			utils.Error(w, http.StatusNotFound, "Certificate not found")
			return
		}
	}

	var cert models.Certificate
	err = h.db.WithContext(r.Context()).
		Omit("file_data").
		Where("id = ? AND user_id = ?", id, userID).
		First(&cert).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusNotFound, "Certificate not found")
		return
	case err != nil:
		h.logger.Error("certificate fetch failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Certificate updated successfully", cert)
}

// Delete godoc
// @Summary Delete a certificate
// @Tags Certificates
// @Produce json
// @Param id path string true "Certificate id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /certificates/{id} [delete]
func (h *CertificateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Certificate not found")
		return
	}

	res := h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Certificate{})
	if res.Error != nil {
		h.logger.Error("certificate delete failed", zap.Error(res.Error))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(w, http.StatusNotFound, "Certificate not found")
		return
	}
	utils.OK(w, "Certificate deleted successfully", nil)
}
