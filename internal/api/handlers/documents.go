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

type DocumentHandler struct {
	db         *gorm.DB
	reconciler *services.Reconciler
	logger     *zap.Logger
}

func NewDocumentHandler(db *gorm.DB, reconciler *services.Reconciler, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{db: db, reconciler: reconciler, logger: logger.Named("documents")}
}

type DocumentPatch struct {
	DocID     *string        `json:"docId"`
	DocName   *string        `json:"docName"`
	DocType   *string        `json:"docType"`
	Category  *string        `json:"category"`
	IssuedBy  *string        `json:"issuedBy"`
	Status    *models.Status `json:"status"`
	Expiry    *time.Time     `json:"expiry"`
	IssueDate *time.Time     `json:"issueDate"`
	Hidden    *bool          `json:"hidden"`
	Archived  *bool          `json:"archived"`
}

func (p *DocumentPatch) Changes() map[string]any {
	changes := map[string]any{}
	if p.DocID != nil {
		changes["doc_id"] = *p.DocID
	}
	if p.DocName != nil {
		changes["doc_name"] = *p.DocName
	}
	if p.DocType != nil {
		changes["doc_type"] = *p.DocType
	}
	if p.Category != nil {
		changes["category"] = *p.Category
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
// @Summary List the caller's documents
// @Description Statuses are reconciled before returning; payload bytes omitted.
// @Tags Documents
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /documents [get]
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var docs []models.Document
	err := h.db.WithContext(r.Context()).
		Omit("file_data").
		Where("user_id = ?", userID).
		Order("upload_date DESC").
		Find(&docs).Error
	if err != nil {
		h.logger.Error("document list failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	docs = h.reconciler.Documents(r.Context(), docs)
	utils.OK(w, "Documents retrieved successfully", docs)
}

// Create godoc
// @Summary Upload a document
// @Tags Documents
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /documents [post]
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		DocID     string     `json:"docId"`
		FileData  []byte     `json:"fileData"`
		DocName   string     `json:"docName"`
		DocType   string     `json:"docType"`
		Category  string     `json:"category"`
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
	if input.DocName == "" {
		utils.Error(w, http.StatusBadRequest, "Document name is required")
		return
	}

	now := time.Now()
	doc := models.Document{
		UserID:     userID,
		DocID:      input.DocID,
		FileData:   input.FileData,
		Size:       int64(len(input.FileData)),
		DocName:    input.DocName,
		DocType:    input.DocType,
		Category:   input.Category,
		IssuedBy:   input.IssuedBy,
		Status:     services.Classify(input.Expiry, now, services.DocumentLookaheadDays),
		Expiry:     input.Expiry,
		IssueDate:  input.IssueDate,
		UploadDate: now,
		Hidden:     input.Hidden,
	}
	if err := h.db.WithContext(r.Context()).Create(&doc).Error; err != nil {
		h.logger.Error("document insert failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database insert failed")
		return
	}

	doc.FileData = nil
	utils.Created(w, "Document uploaded successfully", doc)
}

// Get godoc
// @Summary Fetch one document including its payload
// @Tags Documents
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Document not found")
		return
	}

	var doc models.Document
	err = h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&doc).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusNotFound, "Document not found")
		return
	case err != nil:
		h.logger.Error("document fetch failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.OK(w, "Document retrieved successfully", doc)
}

// Update godoc
// @Summary Partially update a document
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /documents/{id} [patch]
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Document not found")
		return
	}

	var patch DocumentPatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if changes := patch.Changes(); len(changes) > 0 {
		res := h.db.WithContext(r.Context()).
			Model(&models.Document{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(changes)
		if res.Error != nil {
			h.logger.Error("document update failed", zap.Error(res.Error))
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}
		if res.RowsAffected == 0 {
			utils.Error(w, http.StatusNotFound, "Document not found")
			return
		}
	}

	var doc models.Document
	err = h.db.WithContext(r.Context()).
		Omit("file_data").
		Where("id = ? AND user_id = ?", id, userID).
		First(&doc).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusNotFound, "Document not found")
		return
	case err != nil:
		h.logger.Error("document fetch failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Document updated successfully", doc)
}

// Delete godoc
// @Summary Delete a document
// @Tags Documents
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Document not found")
		return
	}

	res := h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Document{})
	if res.Error != nil {
		h.logger.Error("document delete failed", zap.Error(res.Error))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(w, http.StatusNotFound, "Document not found")
		return
	}
	utils.OK(w, "Document deleted successfully", nil)
}
