package admin

import (
	"fmt"
	"time"

	"github.com/panaderia-next/internal/http/response"
	"github.com/panaderia-next/internal/service"

	"github.com/gin-gonic/gin"
)

// reportRange parses the from/to query parameters as dates in bakery
// time. The window defaults to the last 30 days and the end date is
// exclusive at the following midnight.
func (h *Handler) reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	loc := h.OrderService.Location()
	now := time.Now().In(loc)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -31)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.date_range_invalid", err)
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.date_range_invalid", err)
			return time.Time{}, time.Time{}, false
		}
		to = parsed.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		respondError(c, response.CodeBadRequest, "error.date_range_invalid", nil)
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// AdminRevenueReport returns revenue aggregates for a date window.
func (h *Handler) AdminRevenueReport(c *gin.Context) {
	from, to, ok := h.reportRange(c)
	if !ok {
		return
	}
	orders, err := h.ReportService.ReportWindow(from, to)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, h.ReportService.Revenue(orders))
}

// AdminVolumeReport returns order volume aggregates for a date window.
func (h *Handler) AdminVolumeReport(c *gin.Context) {
	from, to, ok := h.reportRange(c)
	if !ok {
		return
	}
	orders, err := h.ReportService.ReportWindow(from, to)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, h.ReportService.Volume(orders))
}

// AdminCustomerReport returns per-customer aggregates for a date
// window.
func (h *Handler) AdminCustomerReport(c *gin.Context) {
	from, to, ok := h.reportRange(c)
	if !ok {
		return
	}
	orders, err := h.ReportService.ReportWindow(from, to)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, h.ReportService.Customers(orders))
}

// AdminDashboardOverview returns the operational dashboard summary.
func (h *Handler) AdminDashboardOverview(c *gin.Context) {
	summary, err := h.DashboardService.Summary(time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, summary)
}

// AdminExportOrders streams orders in the window as a CSV download.
func (h *Handler) AdminExportOrders(c *gin.Context) {
	from, to, ok := h.reportRange(c)
	if !ok {
		return
	}
	if _, err := service.NormalizeExportFormat(c.Query("format")); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	filename := service.ExportFilename(time.Now())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.ExportService.ExportOrdersCreatedBetween(c.Writer, from, to); err != nil {
		requestLog(c).Errorw("admin_export_orders_failed", "error", err)
		// Headers are already sent; nothing useful left to write.
		c.Abort()
	}
}
