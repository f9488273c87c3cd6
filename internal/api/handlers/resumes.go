package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/api/middleware"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/models"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/utils"
)

type ResumeHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewResumeHandler(db *gorm.DB, logger *zap.Logger) *ResumeHandler {
	return &ResumeHandler{db: db, logger: logger.Named("resumes")}
}

type ResumeDraftPatch struct {
	Name *string         `json:"name"`
	Data *map[string]any `json:"data"`
}

// List godoc
// @Summary List the caller's resume drafts, most recently edited first
// @Tags Resumes
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /resumes [get]
func (h *ResumeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var drafts []models.ResumeDraft
	err := h.db.WithContext(r.Context()).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&drafts).Error
	if err != nil {
		h.logger.Error("resume draft list failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Resume drafts retrieved successfully", drafts)
}

// Create godoc
// @Summary Save a new resume draft
// @Tags Resumes
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /resumes [post]
func (h *ResumeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Name string         `json:"name"`
		Data map[string]any `json:"data"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" {
		utils.Error(w, http.StatusBadRequest, "Draft name is required")
		return
	}
	if input.Data == nil {
		input.Data = map[string]any{}
	}

	draft := models.ResumeDraft{
		UserID: userID,
		Name:   input.Name,
		Data:   input.Data,
	}
	if err := h.db.WithContext(r.Context()).Create(&draft).Error; err != nil {
		h.logger.Error("resume draft insert failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database insert failed")
		return
	}
	utils.Created(w, "Resume draft saved successfully", draft)
}

// Get godoc
// @Summary Fetch one resume draft
// @Tags Resumes
// @Produce json
// @Param id path string true "Draft id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /resumes/{id} [get]
func (h *ResumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Draft not found")
		return
	}

	var draft models.ResumeDraft
	err = h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&draft).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusNotFound, "Draft not found")
		return
	case err != nil:
		h.logger.Error("resume draft fetch failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Resume draft retrieved successfully", draft)
}

// Update godoc
// @Summary Partially update a resume draft
// @Description Unset fields are untouched; the editor blob is replaced whole, never merged.
// @Tags Resumes
// @Accept json
// @Produce json
// @Param id path string true "Draft id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /resumes/{id} [put]
func (h *ResumeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Draft not found")
		return
	}

	var patch ResumeDraftPatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var draft models.ResumeDraft
	err = h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&draft).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusNotFound, "Draft not found")
		return
	case err != nil:
		h.logger.Error("resume draft fetch failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	if patch.Name != nil {
		draft.Name = *patch.Name
	}
	if patch.Data != nil {
		draft.Data = *patch.Data
	}

	if err := h.db.WithContext(r.Context()).Save(&draft).Error; err != nil {
		h.logger.Error("resume draft update failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Resume draft updated successfully", draft)
}

// Delete godoc
// @Summary Delete a resume draft
// @Tags Resumes
// @Produce json
// @Param id path string true "Draft id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /resumes/{id} [delete]
func (h *ResumeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Draft not found")
		return
	}

	res := h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.ResumeDraft{})
	if res.Error != nil {
		h.logger.Error("resume draft delete failed", zap.Error(res.Error))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(w, http.StatusNotFound, "Draft not found")
		return
	}
	utils.OK(w, "Resume draft deleted successfully", nil)
}
