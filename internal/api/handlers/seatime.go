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
	"github.com/Garia-IT-Solutions/certificate-manager/internal/utils"
)

type SeaTimeHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSeaTimeHandler(db *gorm.DB, logger *zap.Logger) *SeaTimeHandler {
	return &SeaTimeHandler{db: db, logger: logger.Named("seatime")}
}

type SeaTimeLogPatch struct {
	IMO        *int64     `json:"imo"`
	CallSign   *string    `json:"callSign"`
	Flag       *string    `json:"flag"`
	VesselName *string    `json:"vesselName"`
	VesselType *string    `json:"vesselType"`
	DWT        *float64   `json:"dwt"`
	Company    *string    `json:"company"`
	Department *string    `json:"department"`
	Rank       *string    `json:"rank"`
	MainEngine *string    `json:"mainEngine"`
	PowerKW    *float64   `json:"powerKw"`
	SignOn     *time.Time `json:"signOn"`
	SignOff    *time.Time `json:"signOff"`
}

func (p *SeaTimeLogPatch) Changes() map[string]any {
	changes := map[string]any{}
	if p.IMO != nil {
		changes["imo"] = *p.IMO
	}
	if p.CallSign != nil {
		changes["call_sign"] = *p.CallSign
	}
	if p.Flag != nil {
		changes["flag"] = *p.Flag
	}
	if p.VesselName != nil {
		changes["vessel_name"] = *p.VesselName
	}
	if p.VesselType != nil {
		changes["vessel_type"] = *p.VesselType
	}
	if p.DWT != nil {
		changes["dwt"] = *p.DWT
	}
	if p.Company != nil {
		changes["company"] = *p.Company
	}
	if p.Department != nil {
		changes["department"] = *p.Department
	}
	if p.Rank != nil {
		changes["rank"] = *p.Rank
	}
	if p.MainEngine != nil {
		changes["main_engine"] = *p.MainEngine
	}
	if p.PowerKW != nil {
		changes["power_kw"] = *p.PowerKW
	}
	if p.SignOn != nil {
		changes["sign_on"] = *p.SignOn
	}
	if p.SignOff != nil {
		changes["sign_off"] = *p.SignOff
	}
	return changes
}

// List godoc
// @Summary List the caller's voyage records, most recent sign-off first
// @Tags SeaTime
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /seatime [get]
func (h *SeaTimeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var logs []models.SeaTimeLog
	err := h.db.WithContext(r.Context()).
		Where("user_id = ?", userID).
		Order("sign_off DESC").
		Find(&logs).Error
	if err != nil {
		h.logger.Error("sea time list failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Sea time logs retrieved successfully", logs)
}

// Create godoc
// @Summary Record a voyage
// @Tags SeaTime
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /seatime [post]
func (h *SeaTimeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		IMO        int64     `json:"imo"`
		CallSign   string    `json:"callSign"`
		Flag       string    `json:"flag"`
		VesselName string    `json:"vesselName"`
		VesselType string    `json:"vesselType"`
		DWT        float64   `json:"dwt"`
		Company    string    `json:"company"`
		Department string    `json:"department"`
		Rank       string    `json:"rank"`
		MainEngine string    `json:"mainEngine"`
		PowerKW    float64   `json:"powerKw"`
		SignOn     time.Time `json:"signOn"`
		SignOff    time.Time `json:"signOff"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.VesselName == "" {
		utils.Error(w, http.StatusBadRequest, "Vessel name is required")
		return
	}
	if input.SignOn.IsZero() || input.SignOff.IsZero() {
		utils.Error(w, http.StatusBadRequest, "Sign-on and sign-off dates are required")
		return
	}

	seaLog := models.SeaTimeLog{
		UserID:     userID,
		IMO:        input.IMO,
		CallSign:   input.CallSign,
		Flag:       input.Flag,
		VesselName: input.VesselName,
		VesselType: input.VesselType,
		DWT:        input.DWT,
		Company:    input.Company,
		Department: input.Department,
		Rank:       input.Rank,
		MainEngine: input.MainEngine,
		PowerKW:    input.PowerKW,
		SignOn:     input.SignOn,
		SignOff:    input.SignOff,
		UploadDate: time.Now(),
	}
	if err := h.db.WithContext(r.Context()).Create(&seaLog).Error; err != nil {
		h.logger.Error("sea time insert failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database insert failed")
		return
	}
	utils.Created(w, "Sea time log recorded successfully", seaLog)
}

// Get godoc
// @Summary Fetch one voyage record
// @Tags SeaTime
// @Produce json
// @Param id path string true "Log id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /seatime/{id} [get]
func (h *SeaTimeHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Sea time log not found")
		return
	}

	var seaLog models.SeaTimeLog
	err = h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&seaLog).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusNotFound, "Sea time log not found")
		return
	case err != nil:
		h.logger.Error("sea time fetch failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Sea time log retrieved successfully", seaLog)
}

// Update godoc
// @Summary Partially update a voyage record
// @Tags SeaTime
// @Accept json
// @Produce json
// @Param id path string true "Log id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /seatime/{id} [patch]
func (h *SeaTimeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Sea time log not found")
		return
	}

	var patch SeaTimeLogPatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if changes := patch.Changes(); len(changes) > 0 {
		res := h.db.WithContext(r.Context()).
			Model(&models.SeaTimeLog{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(changes)
		if res.Error != nil {
			h.logger.Error("sea time update failed", zap.Error(res.Error))
			utils.Error(w, http.StatusInternalServerError, "Database error")
			return
		}
		if res.RowsAffected == 0 {
			utils.Error(w, http.StatusNotFound, "Sea time log not found")
			return
		}
	}

	var seaLog models.SeaTimeLog
	err = h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&seaLog).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusNotFound, "Sea time log not found")
		return
	case err != nil:
		h.logger.Error("sea time fetch failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Sea time log updated successfully", seaLog)
}

// Delete godoc
// @Summary Delete a voyage record
// @Tags SeaTime
// @Produce json
// @Param id path string true "Log id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /seatime/{id} [delete]
func (h *SeaTimeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Sea time log not found")
		return
	}

	res := h.db.WithContext(r.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.SeaTimeLog{})
	if res.Error != nil {
		h.logger.Error("sea time delete failed", zap.Error(res.Error))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(w, http.StatusNotFound, "Sea time log not found")
		return
	}
	utils.OK(w, "Sea time log deleted successfully", nil)
}
