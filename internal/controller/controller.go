package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"ads-report-service/internal/model"
	"ads-report-service/internal/repository"
	"ads-report-service/internal/service"
)

const dateLayout = "2006-01-02"

type ReportController interface {
	GetReport(c *fiber.Ctx) error
	Refresh(c *fiber.Ctx) error
	ExportCSV(c *fiber.Ctx) error
	History(c *fiber.Ctx) error
}

type reportController struct {
	reportService service.ReportService
	archive       repository.SnapshotRepository
	demoDefault   bool
	now           func() time.Time
}

// NewReportController builds a ReportController. archive may be nil when the
// snapshot store is disabled; the history endpoint then answers 404.
func NewReportController(svc service.ReportService, archive repository.SnapshotRepository, demoDefault bool) ReportController {
	return &reportController{
		reportService: svc,
		archive:       archive,
		demoDefault:   demoDefault,
		now:           time.Now,
	}
}

// GetReport serves the aggregated report for the requested window.
func (h *reportController) GetReport(c *fiber.Ctx) error {
	dateRange, demoMode, err := h.buildQuery(c)
	if err != nil {
		return err
	}

	report, svcErr := h.reportService.GetReport(c.Context(), dateRange, demoMode)
	if svcErr != nil {
		return toHTTPError(svcErr)
	}
	return c.JSON(report)
}

// Refresh invalidates the cached entry for the window and returns a freshly
// computed report.
func (h *reportController) Refresh(c *fiber.Ctx) error {
	dateRange, _, err := h.buildQuery(c)
	if err != nil {
		return err
	}

	report, svcErr := h.reportService.Refresh(c.Context(), dateRange)
	if svcErr != nil {
		return toHTTPError(svcErr)
	}
	return c.JSON(report)
}

// ExportCSV streams the by-campaign rows as a CSV download.
func (h *reportController) ExportCSV(c *fiber.Ctx) error {
	dateRange, demoMode, err := h.buildQuery(c)
	if err != nil {
		return err
	}

	report, svcErr := h.reportService.GetReport(c.Context(), dateRange, demoMode)
	if svcErr != nil {
		return toHTTPError(svcErr)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"group_key", "platform", "spend", "leads", "clicks", "impressions", "cpl", "ctr", "cpc", "conversion_rate"})
	for _, row := range report.ByCampaign {
		_ = w.Write([]string{
			row.GroupKey,
			string(row.Platform),
			strconv.FormatFloat(row.Spend, 'f', 2, 64),
			strconv.FormatInt(row.LeadCount, 10),
			strconv.FormatInt(row.ClickCount, 10),
			strconv.FormatInt(row.ImpressionCount, 10),
			formatMetric(row.CPL),
			formatMetric(row.CTR),
			formatMetric(row.CPC),
			formatMetric(row.ConversionRate),
		})
	}
	w.Flush()

	filename := fmt.Sprintf("report_%s_%s.csv",
		model.Day(dateRange.Start).Format(dateLayout),
		model.Day(dateRange.End).Format(dateLayout))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// History returns recently archived campaign rows.
func (h *reportController) History(c *fiber.Ctx) error {
	if h.archive == nil {
		return fiber.NewError(fiber.StatusNotFound, "snapshot archive is disabled")
	}

	limit := c.QueryInt("limit", 100)
	snapshots, err := h.archive.RecentSnapshots(c.Context(), limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to read snapshot history")
	}
	return c.JSON(fiber.Map{"snapshots": snapshots})
}

// buildQuery parses the shared start/end/demo query parameters. A missing
// window defaults to the last 30 days.
func (h *reportController) buildQuery(c *fiber.Ctx) (model.DateRange, bool, error) {
	end := model.Day(h.now().UTC())
	start := end.AddDate(0, 0, -29)

	if raw := utils.Trim(c.Query("start"), ' '); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return model.DateRange{}, false, fiber.NewError(fiber.StatusBadRequest, "invalid start date")
		}
		start = parsed
	}
	if raw := utils.Trim(c.Query("end"), ' '); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return model.DateRange{}, false, fiber.NewError(fiber.StatusBadRequest, "invalid end date")
		}
		end = parsed
	}

	demoMode := h.demoDefault
	if raw := utils.Trim(c.Query("demo"), ' '); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return model.DateRange{}, false, fiber.NewError(fiber.StatusBadRequest, "invalid demo flag")
		}
		demoMode = parsed
	}

	return model.DateRange{Start: start, End: end}, demoMode, nil
}

func toHTTPError(err error) error {
	if _, ok := err.(*service.ValidationError); ok {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to build report")
}

func formatMetric(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
