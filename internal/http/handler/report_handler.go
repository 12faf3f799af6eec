package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/service"
)

// reports default to the last 30 days when no range is given
const defaultReportWindow = 30 * 24 * time.Hour

type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

func (h *ReportHandler) reportRange(r *http.Request) service.ReportRange {
	rr := service.ReportRange{
		GroupBy: r.URL.Query().Get("groupBy"),
		Limit:   queryInt(r, "limit"),
	}
	if rr.GroupBy == "" {
		rr.GroupBy = "day"
	}

	if end := queryDate(r, "endDate"); end != nil {
		rr.End = endOfDay(*end)
	} else {
		rr.End = time.Now()
	}
	if start := queryDate(r, "startDate"); start != nil {
		rr.Start = *start
	} else {
		rr.Start = rr.End.Add(-defaultReportWindow)
	}

	return rr
}

func (h *ReportHandler) respondReportError(w http.ResponseWriter, err error, name string) {
	h.logger.Error("failed to build report", zap.Error(err), zap.String("report", name))
	respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
		Error:   "Internal Server Error",
		Message: "Failed to build report",
	})
}

// Revenue godoc
// @Summary Revenue report
// @Description Groups paid invoice revenue by day, week, month or year
// @Tags Reports
// @Produce json
// @Param startDate query string false "Range start (YYYY-MM-DD), defaults to 30 days ago"
// @Param endDate query string false "Range end (YYYY-MM-DD), defaults to today"
// @Param groupBy query string false "day, week, month or year"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /reports/revenue [get]
func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.RevenueReport(r.Context(), h.reportRange(r))
	if err != nil {
		h.respondReportError(w, err, "revenue")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"revenue": rows})
}

// TopProducts godoc
// @Summary Top products by paid revenue
// @Tags Reports
// @Produce json
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Param limit query int false "Number of entries, defaults to 10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /reports/top-products [get]
func (h *ReportHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.reportService.TopProducts(r.Context(), h.reportRange(r))
	if err != nil {
		h.respondReportError(w, err, "top_products")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"products": items})
}

// TopServices godoc
// @Summary Top catalog services by paid revenue
// @Tags Reports
// @Produce json
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Param limit query int false "Number of entries, defaults to 10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /reports/top-services [get]
func (h *ReportHandler) TopServices(w http.ResponseWriter, r *http.Request) {
	items, err := h.reportService.TopServices(r.Context(), h.reportRange(r))
	if err != nil {
		h.respondReportError(w, err, "top_services")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"services": items})
}

// TopCustomers godoc
// @Summary Top customers by paid spend
// @Tags Reports
// @Produce json
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Param limit query int false "Number of entries, defaults to 10"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /reports/top-customers [get]
func (h *ReportHandler) TopCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.reportService.TopCustomers(r.Context(), h.reportRange(r))
	if err != nil {
		h.respondReportError(w, err, "top_customers")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"customers": customers})
}

// NewCustomers godoc
// @Summary New customer signups per day
// @Tags Reports
// @Produce json
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /reports/new-customers [get]
func (h *ReportHandler) NewCustomers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.NewCustomers(r.Context(), h.reportRange(r))
	if err != nil {
		h.respondReportError(w, err, "new_customers")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"newCustomers": rows})
}

// Comprehensive godoc
// @Summary Full report bundle with summary totals
// @Tags Reports
// @Produce json
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Param groupBy query string false "day, week, month or year"
// @Param limit query int false "Entries per ranking, defaults to 10"
// @Success 200 {object} domain.ComprehensiveReportDTO
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /reports/comprehensive [get]
func (h *ReportHandler) Comprehensive(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.ComprehensiveReport(r.Context(), h.reportRange(r))
	if err != nil {
		h.respondReportError(w, err, "comprehensive")
		return
	}

	respondJSON(w, http.StatusOK, report)
}
