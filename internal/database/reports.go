package database

import (
	"errors"
	"time"

	"go-report-bot/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrVersionTaken means another submission won the race for this
// (employee, day, version) slot. The caller may simply retry the send:
// the next attempt re-reads the latest version.
var ErrVersionTaken = errors.New("report version already taken")

// CreateReport persists a new immutable report. ReportDay is derived from
// ReportDate so the unique (employee, day, version) index applies.
func CreateReport(report *models.Report) error {
	report.ReportDay = models.Day(report.ReportDate)
	err := DB.Create(report).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrVersionTaken
	}
	return err
}

// GetTodayReportFor returns the highest-version report the employee filed
// on the given business day, or nil if there is none yet.
func GetTodayReportFor(employeeID uint, day time.Time) (*models.Report, error) {
	var report models.Report
	err := DB.Where("employee_id = ? AND report_day = ?", employeeID, models.Day(day)).
		Order("version desc").
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetRecentReports returns the employee's latest reports, newest day first,
// resubmissions of the same day in descending version order.
func GetRecentReports(employeeID uint, limit int) ([]models.Report, error) {
	var reports []models.Report
	err := DB.Where("employee_id = ?", employeeID).
		Order("report_date desc, version desc").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

func GetReportByID(id uint) (*models.Report, error) {
	var report models.Report
	err := DB.Preload("Employee").Preload("Branch").First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetReportsForDay returns all reports filed on one business day with
// employee and branch loaded, ordered by branch then employee for display.
func GetReportsForDay(day time.Time) ([]models.Report, error) {
	var reports []models.Report
	err := DB.Preload("Employee").Preload("Branch").
		Joins("JOIN employees ON employees.id = reports.employee_id").
		Joins("JOIN branches ON branches.id = reports.branch_id").
		Where("report_day = ?", models.Day(day)).
		Order("branches.name, employees.full_name, reports.version").
		Find(&reports).Error
	return reports, err
}

// GetReportsForRange returns reports whose business day falls inside
// [start, end] inclusive.
func GetReportsForRange(start, end time.Time) ([]models.Report, error) {
	var reports []models.Report
	err := DB.Preload("Employee").Preload("Branch").
		Joins("JOIN employees ON employees.id = reports.employee_id").
		Joins("JOIN branches ON branches.id = reports.branch_id").
		Where("report_day BETWEEN ? AND ?", models.Day(start), models.Day(end)).
		Order("reports.report_day, branches.name, employees.full_name, reports.version").
		Find(&reports).Error
	return reports, err
}

// DailySummary aggregates one day's reports for the owner overview.
type DailySummary struct {
	Day           time.Time
	Reports       int
	Branches      int
	TotalIncome   decimal.Decimal
	TotalCash     decimal.Decimal
	TotalCashless decimal.Decimal
	TotalClients  int
}

// GetDailySummary totals the day's reports in Go rather than SQL so the
// decimal arithmetic stays exact across drivers.
func GetDailySummary(day time.Time) (*DailySummary, error) {
	reports, err := GetReportsForDay(day)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{
		Day:           models.Day(day),
		Reports:       len(reports),
		TotalIncome:   decimal.Zero,
		TotalCash:     decimal.Zero,
		TotalCashless: decimal.Zero,
	}
	branches := make(map[uint]bool)
	for _, r := range reports {
		branches[r.BranchID] = true
		summary.TotalIncome = summary.TotalIncome.Add(r.TotalIncome)
		summary.TotalCash = summary.TotalCash.Add(r.Cash)
		summary.TotalCashless = summary.TotalCashless.Add(r.Cashless)
		summary.TotalClients += r.ClientsCount
	}
	summary.Branches = len(branches)
	return summary, nil
}
