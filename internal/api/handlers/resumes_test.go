package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/models"
)

func newResumeMux(t *testing.T, db *gorm.DB) *http.ServeMux {
	t.Helper()
	h := NewResumeHandler(db, zaptest.NewLogger(t))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /resumes", h.List)
	mux.HandleFunc("POST /resumes", h.Create)
	mux.HandleFunc("GET /resumes/{id}", h.Get)
	mux.HandleFunc("PUT /resumes/{id}", h.Update)
	mux.HandleFunc("DELETE /resumes/{id}", h.Delete)
	return mux
}

func TestResumeDraftCreateAndGet(t *testing.T) {
	db := newHandlerDB(t)
	mux := newResumeMux(t, db)
	userID := uuid.New()

	rr := doJSON(t, mux, userID, http.MethodPost, "/resumes", map[string]any{
		"name": "Deck Officer CV",
		"data": map[string]any{
			"summary":  "12 years tanker experience",
			"sections": []string{"experience", "education"},
		},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var created models.ResumeDraft
	decodePayload(t, rr, &created)
	assert.Equal(t, "Deck Officer CV", created.Name)
	assert.Equal(t, "12 years tanker experience", created.Data["summary"])

	rr = doJSON(t, mux, userID, http.MethodGet, "/resumes/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got models.ResumeDraft
	decodePayload(t, rr, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "12 years tanker experience", got.Data["summary"])
}

func TestResumeDraftCreateRequiresName(t *testing.T) {
	db := newHandlerDB(t)
	mux := newResumeMux(t, db)

	rr := doJSON(t, mux, uuid.New(), http.MethodPost, "/resumes", map[string]any{
		"data": map[string]any{"summary": "unnamed"},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestResumeDraftListScopedToUser(t *testing.T) {
	db := newHandlerDB(t)
	mux := newResumeMux(t, db)
	userID := uuid.New()
	otherID := uuid.New()

	require.NoError(t, db.Create(&models.ResumeDraft{UserID: userID, Name: "Mine", Data: map[string]any{}}).Error)
	require.NoError(t, db.Create(&models.ResumeDraft{UserID: otherID, Name: "Not Mine", Data: map[string]any{}}).Error)

	rr := doJSON(t, mux, userID, http.MethodGet, "/resumes", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var listed []models.ResumeDraft
	decodePayload(t, rr, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Mine", listed[0].Name)
}

func TestResumeDraftUpdateReplacesBlobWhole(t *testing.T) {
	db := newHandlerDB(t)
	mux := newResumeMux(t, db)
	userID := uuid.New()

	draft := models.ResumeDraft{
		UserID: userID,
		Name:   "Draft v1",
		Data:   map[string]any{"summary": "old", "rank": "2/O"},
	}
	require.NoError(t, db.Create(&draft).Error)

	// rename only: blob untouched
	rr := doJSON(t, mux, userID, http.MethodPut, "/resumes/"+draft.ID.String(), map[string]any{
		"name": "Draft v2",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var got models.ResumeDraft
	decodePayload(t, rr, &got)
	assert.Equal(t, "Draft v2", got.Name)
	assert.Equal(t, "old", got.Data["summary"])

	// new blob replaces the stored one, no key merging
	rr = doJSON(t, mux, userID, http.MethodPut, "/resumes/"+draft.ID.String(), map[string]any{
		"data": map[string]any{"summary": "new"},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	got = models.ResumeDraft{}
	decodePayload(t, rr, &got)
	assert.Equal(t, "new", got.Data["summary"])
	assert.NotContains(t, got.Data, "rank")
}

func TestResumeDraftHiddenFromOtherUsers(t *testing.T) {
	db := newHandlerDB(t)
	mux := newResumeMux(t, db)
	owner := uuid.New()

	draft := models.ResumeDraft{UserID: owner, Name: "Private", Data: map[string]any{}}
	require.NoError(t, db.Create(&draft).Error)

	stranger := uuid.New()
	rr := doJSON(t, mux, stranger, http.MethodGet, "/resumes/"+draft.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, mux, stranger, http.MethodPut, "/resumes/"+draft.ID.String(), map[string]any{"name": "Taken"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, mux, stranger, http.MethodDelete, "/resumes/"+draft.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestResumeDraftDeleteThenDeleteAgain(t *testing.T) {
	db := newHandlerDB(t)
	mux := newResumeMux(t, db)
	userID := uuid.New()

	draft := models.ResumeDraft{UserID: userID, Name: "Scrap", Data: map[string]any{}}
	require.NoError(t, db.Create(&draft).Error)

	rr := doJSON(t, mux, userID, http.MethodDelete, "/resumes/"+draft.ID.String(), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, mux, userID, http.MethodDelete, "/resumes/"+draft.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
