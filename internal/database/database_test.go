package database

import (
	"fmt"
	"testing"
	"time"

	"go-report-bot/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB points the package at a fresh in-memory database.
func openTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	DB = db
	if err := Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func seedEmployee(t *testing.T, telegramID int64) *models.Employee {
	t.Helper()
	branch, err := CreateBranch(fmt.Sprintf("Branch %d", telegramID))
	if err != nil {
		t.Fatalf("create branch: %v", err)
	}
	employee, err := CreateEmployee(telegramID, fmt.Sprintf("Employee %d", telegramID), branch.ID)
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return employee
}

func seedReport(t *testing.T, employee *models.Employee, date time.Time, version int, income string) *models.Report {
	t.Helper()
	amount := decimal.RequireFromString(income)
	half := amount.Div(decimal.NewFromInt(2))
	rec := &models.Report{
		ReportDate:          date,
		TotalIncome:         amount,
		Cash:                half,
		Cashless:            amount.Sub(half),
		CashBalance:         decimal.NewFromInt(100),
		ClientsCount:        10,
		CashToSuppliers:     decimal.Zero,
		CashlessToSuppliers: decimal.Zero,
		Version:             version,
		EmployeeID:          employee.ID,
		BranchID:            employee.BranchID,
	}
	if err := CreateReport(rec); err != nil {
		t.Fatalf("create report v%d: %v", version, err)
	}
	return rec
}

func TestGetTodayReportFor_ReturnsHighestVersion(t *testing.T) {
	openTestDB(t)
	employee := seedEmployee(t, 100)
	day := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	got, err := GetTodayReportFor(employee.ID, day)
	if err != nil {
		t.Fatalf("GetTodayReportFor: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no report, got v%d", got.Version)
	}

	seedReport(t, employee, day, 1, "1000")
	seedReport(t, employee, day, 2, "1100")
	seedReport(t, employee, day, 3, "1200")

	got, err = GetTodayReportFor(employee.ID, day)
	if err != nil {
		t.Fatalf("GetTodayReportFor: %v", err)
	}
	if got == nil || got.Version != 3 {
		t.Fatalf("expected version 3, got %+v", got)
	}
	if got.TotalIncome.String() != "1200" {
		t.Fatalf("expected the v3 income, got %s", got.TotalIncome)
	}
}

func TestCreateReport_DuplicateVersionRejected(t *testing.T) {
	openTestDB(t)
	employee := seedEmployee(t, 101)
	day := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	seedReport(t, employee, day, 1, "1000")

	dup := &models.Report{
		ReportDate:  day,
		TotalIncome: decimal.NewFromInt(900),
		Version:     1,
		EmployeeID:  employee.ID,
		BranchID:    employee.BranchID,
	}
	if err := CreateReport(dup); err != ErrVersionTaken {
		t.Fatalf("expected ErrVersionTaken, got %v", err)
	}

	// A different day with the same version is fine.
	seedReport(t, employee, day.AddDate(0, 0, 1), 1, "900")
}

func TestGetRecentReports_Ordering(t *testing.T) {
	openTestDB(t)
	employee := seedEmployee(t, 102)
	day1 := time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 27, 18, 0, 0, 0, time.UTC)

	seedReport(t, employee, day1, 1, "500")
	seedReport(t, employee, day2, 1, "600")
	seedReport(t, employee, day2.Add(time.Hour), 2, "650")

	reports, err := GetRecentReports(employee.ID, 10)
	if err != nil {
		t.Fatalf("GetRecentReports: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	if reports[0].Version != 2 || reports[1].Version != 1 || reports[2].TotalIncome.String() != "500" {
		t.Fatalf("wrong order: %+v", reports)
	}

	limited, err := GetRecentReports(employee.ID, 2)
	if err != nil {
		t.Fatalf("GetRecentReports: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limit not applied, got %d", len(limited))
	}
}

func TestDeactivateEmployee_KeepsReports(t *testing.T) {
	openTestDB(t)
	employee := seedEmployee(t, 103)
	day := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	rec := seedReport(t, employee, day, 1, "1000")

	if _, err := DeactivateEmployee(employee.TelegramID); err != nil {
		t.Fatalf("DeactivateEmployee: %v", err)
	}

	active, err := GetActiveEmployees()
	if err != nil {
		t.Fatalf("GetActiveEmployees: %v", err)
	}
	for _, e := range active {
		if e.ID == employee.ID {
			t.Fatal("deactivated employee still listed as active")
		}
	}

	byID, err := GetReportByID(rec.ID)
	if err != nil {
		t.Fatalf("historical report lost: %v", err)
	}
	if byID.EmployeeID != employee.ID {
		t.Fatalf("report reattached: %+v", byID)
	}

	recent, err := GetRecentReports(employee.ID, 5)
	if err != nil || len(recent) != 1 {
		t.Fatalf("reports by employee id lost: %v (%d)", err, len(recent))
	}
}

func TestGetReportsForDayAndSummary(t *testing.T) {
	openTestDB(t)
	alice := seedEmployee(t, 104)
	bob := seedEmployee(t, 105) // separate branch
	day := time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC)

	seedReport(t, alice, day, 1, "1000")
	seedReport(t, bob, day, 1, "500")
	seedReport(t, alice, day.AddDate(0, 0, -1), 1, "777")

	reports, err := GetReportsForDay(day)
	if err != nil {
		t.Fatalf("GetReportsForDay: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports for the day, got %d", len(reports))
	}
	for _, r := range reports {
		if r.Employee.FullName == "" || r.Branch.Name == "" {
			t.Fatalf("associations not loaded: %+v", r)
		}
	}

	summary, err := GetDailySummary(day)
	if err != nil {
		t.Fatalf("GetDailySummary: %v", err)
	}
	if summary.Reports != 2 || summary.Branches != 2 {
		t.Fatalf("wrong counts: %+v", summary)
	}
	if summary.TotalIncome.String() != "1500" {
		t.Fatalf("expected total income 1500, got %s", summary.TotalIncome)
	}
	if summary.TotalClients != 20 {
		t.Fatalf("expected 20 clients, got %d", summary.TotalClients)
	}

	ranged, err := GetReportsForRange(day.AddDate(0, 0, -1), day)
	if err != nil {
		t.Fatalf("GetReportsForRange: %v", err)
	}
	if len(ranged) != 3 {
		t.Fatalf("expected 3 reports in range, got %d", len(ranged))
	}
}

func TestCreateBranch_UniqueName(t *testing.T) {
	openTestDB(t)
	if _, err := CreateBranch("Downtown"); err != nil {
		t.Fatalf("CreateBranch: %v", err)
	}
	if _, err := CreateBranch("Downtown"); err == nil {
		t.Fatal("duplicate branch name accepted")
	}
}
