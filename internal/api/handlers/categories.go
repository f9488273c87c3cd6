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

type CategoryHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCategoryHandler(db *gorm.DB, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{db: db, logger: logger.Named("categories")}
}

type CategoryPatch struct {
	Label   *string `json:"label"`
	Color   *string `json:"color"`
	Icon    *string `json:"icon"`
	Pattern *string `json:"pattern"`
	Scope   *string `json:"scope"`
}

func (p *CategoryPatch) Changes() map[string]any {
	changes := map[string]any{}
	if p.Label != nil {
		changes["label"] = *p.Label
	}
	if p.Color != nil {
		changes["color"] = *p.Color
	}
	if p.Icon != nil {
		changes["icon"] = *p.Icon
	}
	if p.Pattern != nil {
		changes["pattern"] = *p.Pattern
	}
	if p.Scope != nil {
		changes["scope"] = *p.Scope
	}
	return changes
}

// List godoc
// @Summary List categories visible to the caller
// @Description Returns system defaults plus the caller's own categories for the given scope.
// @Tags Categories
// @Produce json
// @Param scope query string false "document or certificate" default(document)
// @Success 200 {object} utils.Payload
// @Router /categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = models.CategoryScopeDocument
	}

	var categories []models.Category
	err := h.db.WithContext(r.Context()).
		Where("(user_id = ? OR is_system) AND scope = ?", userID, scope).
		Order("is_system DESC, label ASC").
		Find(&categories).Error
	if err != nil {
		h.logger.Error("category list failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Categories retrieved successfully", categories)
}

// Create godoc
// @Summary Create a user-owned category
// @Tags Categories
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Label   string `json:"label"`
		Color   string `json:"color"`
		Icon    string `json:"icon"`
		Pattern string `json:"pattern"`
		Scope   string `json:"scope"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Label == "" {
		utils.Error(w, http.StatusBadRequest, "Label is required")
		return
	}
	if input.Scope == "" {
		input.Scope = models.CategoryScopeDocument
	}
	if input.Scope != models.CategoryScopeDocument && input.Scope != models.CategoryScopeCertificate {
		utils.Error(w, http.StatusBadRequest, "Scope must be 'document' or 'certificate'")
		return
	}

	category := models.Category{
		UserID:  &userID,
		Label:   input.Label,
		Color:   input.Color,
		Icon:    input.Icon,
		Pattern: input.Pattern,
		Scope:   input.Scope,
	}
	if err := h.db.WithContext(r.Context()).Create(&category).Error; err != nil {
		h.logger.Error("category insert failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database insert failed")
		return
	}
	utils.Created(w, "Category created successfully", category)
}

// Update godoc
// @Summary Update a user-owned category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Category not found")
		return
	}

	var patch CategoryPatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if patch.Scope != nil && *patch.Scope != models.CategoryScopeDocument && *patch.Scope != models.CategoryScopeCertificate {
		utils.Error(w, http.StatusBadRequest, "Scope must be 'document' or 'certificate'")
		return
	}

	if changes := patch.Changes(); len(changes) > 0 {
		res := h.db.WithContext(r.Context()).
			Model(&models.Category{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(changes)
		if res.Error != nil {
			h.logger.Error("category update failed", zap.Error(res.Error))
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}
		if res.RowsAffected == 0 {
			utils.Error(w, http.StatusNotFound, "Category not found")
			return
		}
	}

	var category models.Category
	err = h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&category).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusNotFound, "Category not found")
		return
	case err != nil:
		h.logger.Error("category fetch failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Category updated successfully", category)
}

// Delete godoc
// @Summary Delete a user-owned category
// @Description System defaults cannot be deleted.
// @Tags Categories
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} utils.Payload
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Category not found")
		return
	}

	var category models.Category
	err = h.db.WithContext(r.Context()).First(&category, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusNotFound, "Category not found")
		return
	case err != nil:
		h.logger.Error("category fetch failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	if category.IsSystem {
		utils.Error(w, http.StatusForbidden, "Cannot delete system categories")
		return
	}
	if category.UserID == nil || *category.UserID != userID {
		utils.Error(w, http.StatusNotFound, "Category not found")
		return
	}

	if err := h.db.WithContext(r.Context()).Delete(&category).Error; err != nil {
		h.logger.Error("category delete failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Category deleted successfully", nil)
}
