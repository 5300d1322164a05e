package handlers

import (
	"net/http"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/activity"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/resolver"
	"github.com/labstack/echo/v4"
)

// ReportHandler handles HTTP requests related to moderation reports
type ReportHandler struct {
	reports  repositories.Store[models.Report]
	targets  *resolver.Resolver
	recorder *activity.Recorder
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports repositories.Store[models.Report], targets *resolver.Resolver, recorder *activity.Recorder) *ReportHandler {
	return &ReportHandler{
		reports:  reports,
		targets:  targets,
		recorder: recorder,
	}
}

// RegisterReportRoutes registers report-related routes
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.GET("/reports", h.GetReports)
	g.GET("/reports/:id", h.GetReport)
	g.POST("/reports", h.CreateReport)
	g.PUT("/reports/:id", h.UpdateReport)
	g.DELETE("/reports/:id", h.DeleteReport)
}

func (h *ReportHandler) GetReports(c echo.Context) error {
	return listRecords(c, h.reports, ref("reporter_id"), text("target_type"), text("status"))
}

// GetReport returns the report with the reported user, post or comment attached
func (h *ReportHandler) GetReport(c echo.Context) error {
	ctx := c.Request().Context()
	report, err := h.reports.GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeError(err, "Report")
	}

	res, err := h.targets.Resolve(ctx, resolver.ReportTargets, report.TargetType, report.TargetID.Hex())
	if err != nil {
		return err
	}
	body, err := withTarget(report, res)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, body)
}

func (h *ReportHandler) CreateReport(c echo.Context) error {
	var req models.CreateReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	report := &models.Report{
		ReporterID: req.ReporterID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
		Status:     req.Status,
	}
	if report.Status == "" {
		report.Status = models.ReportPending
	}

	ctx := c.Request().Context()
	if err := h.reports.Create(ctx, report); err != nil {
		return err
	}

	h.recorder.Log(ctx, report.ReporterID, models.ActionReportedContent, &report.ID)
	return c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) UpdateReport(c echo.Context) error {
	var req models.UpdateReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	report, err := updateRecord(c, h.reports, "Report", &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) DeleteReport(c echo.Context) error {
	if _, err := deleteRecord(c, h.reports, "Report"); err != nil {
		return err
	}
	return deleted(c, "Report")
}
