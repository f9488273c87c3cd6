package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/api/middleware"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/models"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/utils"
)

type ProfileHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProfileHandler(db *gorm.DB, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{db: db, logger: logger.Named("profile")}
}

type ProfilePatch struct {
	FirstName *string                     `json:"firstName"`
	LastName  *string                     `json:"lastName"`
	Email     *string                     `json:"email"`
	Password  *string                     `json:"password"`
	DOB       *time.Time                  `json:"dob"`
	Gender    *string                     `json:"gender"`
	Phone     *string                     `json:"phone"`
	JobTitle  *string                     `json:"jobTitle"`
	Bio       *string                     `json:"bio"`
	AvatarURL *string                     `json:"avatarUrl"`
	Skills    *[]string                   `json:"skills"`
	Address   *models.Address             `json:"address"`
	NextOfKin *models.NextOfKin           `json:"nextOfKin"`
	Physical  *models.PhysicalDescription `json:"physicalDescription"`
}

// Get godoc
// @Summary Fetch the caller's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /profile [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var profile models.Profile
	err := h.db.WithContext(r.Context()).First(&profile, "id = ?", userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusNotFound, "Profile not found")
		return
	case err != nil:
		h.logger.Error("profile fetch failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Profile retrieved successfully", profile)
}

// Update godoc
// @Summary Partially update the caller's profile
// @Description Unset fields are untouched; an empty body is a read-through.
// @Tags Profile
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /profile [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var patch ProfilePatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var profile models.Profile
	err := h.db.WithContext(r.Context()).First(&profile, "id = ?", userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusNotFound, "Profile not found")
		return
	case err != nil:
		h.logger.Error("profile fetch failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	if patch.FirstName != nil {
		profile.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		profile.LastName = *patch.LastName
	}
	if patch.Email != nil {
		profile.Email = *patch.Email
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		profile.PasswordHash = string(hash)
	}
	if patch.DOB != nil {
		profile.DOB = patch.DOB
	}
	if patch.Gender != nil {
		profile.Gender = *patch.Gender
	}
	if patch.Phone != nil {
		profile.Phone = *patch.Phone
	}
	if patch.JobTitle != nil {
		profile.JobTitle = *patch.JobTitle
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
	if patch.AvatarURL != nil {
		profile.AvatarURL = *patch.AvatarURL
	}
	if patch.Skills != nil {
		profile.Skills = *patch.Skills
	}
	if patch.Address != nil {
		profile.Address = *patch.Address
	}
	if patch.NextOfKin != nil {
		profile.NextOfKin = *patch.NextOfKin
	}
	if patch.Physical != nil {
		profile.Physical = *patch.Physical
	}

	if err := h.db.WithContext(r.Context()).Save(&profile).Error; err != nil {
		h.logger.Error("profile update failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Profile updated successfully", profile)
}
