package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/api/middleware"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/services"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/utils"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard *services.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger.Named("dashboard")}
}

// Summary godoc
// @Summary Aggregated dashboard data for the caller
// @Description Sea-service totals, certificate/document compliance counts, NRI day count and the five most urgent expiry alerts.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := h.dashboard.Summarize(r.Context(), userID)
	if err != nil {
		h.logger.Error("dashboard summary failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.OK(w, "Dashboard summary retrieved successfully", summary)
}
