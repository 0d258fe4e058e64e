package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"smilecare/internal/services"
	"smilecare/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
}

func NewReportController(reportService services.ReportServiceInterface) *ReportController {
	return &ReportController{reportService: reportService}
}

func (r *ReportController) Summary(c *gin.Context) {
	start, end := parseRange(c)

	summary, err := r.reportService.BuildSummary(c.Request.Context(), start, end)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, summary, "")
}

// ExportVisits streams the visit log for the requested range as a
// spreadsheet download.
func (r *ReportController) ExportVisits(c *gin.Context) {
	start, end := parseRange(c)

	data, err := r.reportService.ExportVisitsXLSX(c.Request.Context(), start, end)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("visits-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, xlsxContentType, data)
}

// parseRange reads start/end as RFC 3339 or plain dates. Zero values let the
// service apply its default window.
func parseRange(c *gin.Context) (time.Time, time.Time) {
	return parseTimeQuery(c.Query("start")), parseTimeQuery(c.Query("end"))
}

func parseTimeQuery(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	return time.Time{}
}
