package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/models"
)

func newSeaTimeMux(t *testing.T, db *gorm.DB) *http.ServeMux {
	t.Helper()
	h := NewSeaTimeHandler(db, zaptest.NewLogger(t))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /seatime", h.List)
	mux.HandleFunc("POST /seatime", h.Create)
	mux.HandleFunc("GET /seatime/{id}", h.Get)
	mux.HandleFunc("PATCH /seatime/{id}", h.Update)
	mux.HandleFunc("DELETE /seatime/{id}", h.Delete)
	return mux
}

func TestSeaTimeCreateValidation(t *testing.T) {
	db := newHandlerDB(t)
	mux := newSeaTimeMux(t, db)
	userID := uuid.New()

	rr := doJSON(t, mux, userID, http.MethodPost, "/seatime", map[string]any{
		"rank": "Chief Engineer",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "vessel name missing")

	rr = doJSON(t, mux, userID, http.MethodPost, "/seatime", map[string]any{
		"vesselName": "MV Orion",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "sign-on and sign-off missing")

	rr = doJSON(t, mux, userID, http.MethodPost, "/seatime", map[string]any{
		"vesselName": "MV Orion",
		"rank":       "Chief Engineer",
		"powerKw":    9930.0,
		"signOn":     time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		"signOff":    time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var created models.SeaTimeLog
	decodePayload(t, rr, &created)
	assert.Equal(t, "MV Orion", created.VesselName)
	assert.Equal(t, 9930.0, created.PowerKW)
	assert.False(t, created.UploadDate.IsZero())
}

func TestSeaTimeListOrderedBySignOffDesc(t *testing.T) {
	db := newHandlerDB(t)
	mux := newSeaTimeMux(t, db)
	userID := uuid.New()

	logs := []models.SeaTimeLog{
		{UserID: userID, VesselName: "MV Alpha", SignOn: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), SignOff: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
		{UserID: userID, VesselName: "MV Beta", SignOn: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), SignOff: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	for i := range logs {
		require.NoError(t, db.Create(&logs[i]).Error)
	}

	rr := doJSON(t, mux, userID, http.MethodGet, "/seatime", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var listed []models.SeaTimeLog
	decodePayload(t, rr, &listed)
	require.Len(t, listed, 2)
	assert.Equal(t, "MV Beta", listed[0].VesselName)
	assert.Equal(t, "MV Alpha", listed[1].VesselName)
}

func TestSeaTimePatchScopedToOwner(t *testing.T) {
	db := newHandlerDB(t)
	mux := newSeaTimeMux(t, db)
	owner := uuid.New()

	seaLog := models.SeaTimeLog{
		UserID:     owner,
		VesselName: "MV Orion",
		Rank:       "Second Engineer",
		SignOn:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		SignOff:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&seaLog).Error)

	rr := doJSON(t, mux, uuid.New(), http.MethodPatch, "/seatime/"+seaLog.ID.String(), map[string]any{
		"rank": "Chief Engineer",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, mux, owner, http.MethodPatch, "/seatime/"+seaLog.ID.String(), map[string]any{
		"rank": "Chief Engineer",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var got models.SeaTimeLog
	decodePayload(t, rr, &got)
	assert.Equal(t, "Chief Engineer", got.Rank)
	assert.Equal(t, "MV Orion", got.VesselName)
}
