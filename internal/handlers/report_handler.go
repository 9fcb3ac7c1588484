package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-report-bot/internal/config"
	"go-report-bot/internal/database"
	"go-report-bot/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ReportRow is one flattened report for the dashboard, same column set
// as the spreadsheet export.
type ReportRow struct {
	ID                  uint    `json:"id"`
	Date                string  `json:"date"`
	Branch              string  `json:"branch"`
	Employee            string  `json:"employee"`
	TotalIncome         float64 `json:"total_income"`
	Cash                float64 `json:"cash"`
	Cashless            float64 `json:"cashless"`
	CashBalance         float64 `json:"cash_balance"`
	ClientsCount        int     `json:"clients_count"`
	CashToSuppliers     float64 `json:"cash_to_suppliers"`
	CashlessToSuppliers float64 `json:"cashless_to_suppliers"`
	Version             int     `json:"version"`
	CreatedAt           string  `json:"created_at"`
}

func toRow(r models.Report) ReportRow {
	return ReportRow{
		ID:                  r.ID,
		Date:                r.ReportDate.Format("2006-01-02"),
		Branch:              r.Branch.Name,
		Employee:            r.Employee.FullName,
		TotalIncome:         r.TotalIncome.InexactFloat64(),
		Cash:                r.Cash.InexactFloat64(),
		Cashless:            r.Cashless.InexactFloat64(),
		CashBalance:         r.CashBalance.InexactFloat64(),
		ClientsCount:        r.ClientsCount,
		CashToSuppliers:     r.CashToSuppliers.InexactFloat64(),
		CashlessToSuppliers: r.CashlessToSuppliers.InexactFloat64(),
		Version:             r.Version,
		CreatedAt:           r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toRows(reports []models.Report) []ReportRow {
	rows := make([]ReportRow, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, toRow(r))
	}
	return rows
}

// --- GET: /api/reports/today ---
func GetTodayReports(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		reports, err := database.GetReportsForDay(cfg.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reports": toRows(reports)})
	}
}

// --- GET: /api/reports/:id ---
func GetReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	report, err := database.GetReportByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": toRow(*report)})
}

// --- GET: /api/reports/day/:date ---
func GetReportsByDay(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, err := time.ParseInLocation("2006-01-02", c.Param("date"), cfg.Location)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
			return
		}

		reports, err := database.GetReportsForDay(day)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reports": toRows(reports)})
	}
}

func parseRange(c *gin.Context, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", c.Query("start"), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date")
	}
	end, err := time.ParseInLocation("2006-01-02", c.Query("end"), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date")
	}
	return start, end, nil
}

// --- GET: /api/reports?start=YYYY-MM-DD&end=YYYY-MM-DD ---
func GetReportsByRange(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, err := parseRange(c, cfg.Location)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		reports, err := database.GetReportsForRange(start, end)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reports": toRows(reports)})
	}
}

// exportHeader matches the spreadsheet column order exactly.
var exportHeader = []interface{}{
	"Date", "Branch", "Employee", "Total income", "Cash", "Cashless",
	"Cash balance", "Clients", "Cash to suppliers", "Cashless to suppliers",
	"Version", "Created",
}

// --- GET: /api/reports/export?start=YYYY-MM-DD&end=YYYY-MM-DD ---
// ExportReports streams an xlsx workbook with one row per report.
func ExportReports(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, err := parseRange(c, cfg.Location)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		reports, err := database.GetReportsForRange(start, end)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
			return
		}

		f := excelize.NewFile()
		defer f.Close()
		const sheet = "Reports"
		f.SetSheetName(f.GetSheetName(0), sheet)

		if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
			return
		}
		for i, r := range reports {
			row := toRow(r)
			cells := []interface{}{
				row.Date, row.Branch, row.Employee,
				row.TotalIncome, row.Cash, row.Cashless, row.CashBalance,
				row.ClientsCount, row.CashToSuppliers, row.CashlessToSuppliers,
				row.Version, row.CreatedAt,
			}
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
				return
			}
		}

		filename := fmt.Sprintf("reports_%s_%s.xlsx", c.Query("start"), c.Query("end"))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(c.Writer); err != nil {
			c.Status(http.StatusInternalServerError)
		}
	}
}
