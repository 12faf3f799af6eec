package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Stats godoc
// @Summary Get dashboard statistics
// @Description Counts, recent activity, paid revenue and a six month revenue trend
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardStatsDTO
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats(r.Context())
	if err != nil {
		h.logger.Error("failed to get dashboard stats", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get dashboard stats",
		})
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
