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
	"github.com/Garia-IT-Solutions/certificate-manager/internal/services"
)

func newDocumentMux(t *testing.T, db *gorm.DB) *http.ServeMux {
	t.Helper()
	log := zaptest.NewLogger(t)
	h := NewDocumentHandler(db, services.NewReconciler(db, log), log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /documents", h.List)
	mux.HandleFunc("POST /documents", h.Create)
	mux.HandleFunc("GET /documents/{id}", h.Get)
	mux.HandleFunc("PATCH /documents/{id}", h.Update)
	mux.HandleFunc("DELETE /documents/{id}", h.Delete)
	return mux
}

func TestDocumentCreateAndList(t *testing.T) {
	db := newHandlerDB(t)
	mux := newDocumentMux(t, db)
	userID := uuid.New()

	expiry := time.Date(2032, time.July, 1, 0, 0, 0, 0, time.UTC)
	rr := doJSON(t, mux, userID, http.MethodPost, "/documents", map[string]any{
		"docName":  "Passport",
		"docId":    "Z1234567",
		"docType":  "Travel",
		"category": "Travel",
		"fileData": []byte("scanned pages"),
		"expiry":   expiry,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var created models.Document
	payload := decodePayload(t, rr, &created)
	assert.True(t, payload.Success)
	assert.Equal(t, "Passport", created.DocName)
	assert.Equal(t, "Z1234567", created.DocID)
	assert.Equal(t, models.StatusValid, created.Status)
	assert.Equal(t, int64(len("scanned pages")), created.Size)
	assert.Empty(t, created.FileData, "payload bytes are not echoed back")

	rr = doJSON(t, mux, userID, http.MethodGet, "/documents", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var listed []models.Document
	decodePayload(t, rr, &listed)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].FileData, "list omits payload bytes")
}

func TestDocumentCreateRequiresName(t *testing.T) {
	db := newHandlerDB(t)
	mux := newDocumentMux(t, db)

	rr := doJSON(t, mux, uuid.New(), http.MethodPost, "/documents", map[string]any{
		"docType": "Travel",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDocumentListReconcilesStaleStatus(t *testing.T) {
	db := newHandlerDB(t)
	mux := newDocumentMux(t, db)
	userID := uuid.New()

	// inside the 90-day document window
	soon := time.Now().UTC().AddDate(0, 0, 45)
	doc := models.Document{UserID: userID, DocName: "Visa", Status: models.StatusValid, Expiry: &soon}
	require.NoError(t, db.Create(&doc).Error)

	rr := doJSON(t, mux, userID, http.MethodGet, "/documents", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var listed []models.Document
	decodePayload(t, rr, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, models.StatusExpiring, listed[0].Status)

	var stored models.Document
	require.NoError(t, db.First(&stored, "id = ?", doc.ID).Error)
	assert.Equal(t, models.StatusExpiring, stored.Status)
}

func TestDocumentPatchOwnershipAndFields(t *testing.T) {
	db := newHandlerDB(t)
	mux := newDocumentMux(t, db)
	owner := uuid.New()

	doc := models.Document{UserID: owner, DocName: "Yellow Fever Card", Category: "Medical"}
	require.NoError(t, db.Create(&doc).Error)

	rr := doJSON(t, mux, uuid.New(), http.MethodPatch, "/documents/"+doc.ID.String(), map[string]any{
		"docName": "Hijacked",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, mux, owner, http.MethodPatch, "/documents/"+doc.ID.String(), map[string]any{
		"docName": "Yellow Fever Vaccination Card",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var got models.Document
	decodePayload(t, rr, &got)
	assert.Equal(t, "Yellow Fever Vaccination Card", got.DocName)
	assert.Equal(t, "Medical", got.Category)

	// empty patch is a read-through
	rr = doJSON(t, mux, owner, http.MethodPatch, "/documents/"+doc.ID.String(), map[string]any{})
	require.Equal(t, http.StatusOK, rr.Code)
	got = models.Document{}
	decodePayload(t, rr, &got)
	assert.Equal(t, "Yellow Fever Vaccination Card", got.DocName)
}

func TestDocumentDeleteScopedToOwner(t *testing.T) {
	db := newHandlerDB(t)
	mux := newDocumentMux(t, db)
	owner := uuid.New()

	doc := models.Document{UserID: owner, DocName: "CDC"}
	require.NoError(t, db.Create(&doc).Error)

	rr := doJSON(t, mux, uuid.New(), http.MethodDelete, "/documents/"+doc.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, mux, owner, http.MethodDelete, "/documents/"+doc.ID.String(), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
