package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-report-bot/internal/database"
	"go-report-bot/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	database.DB = db
	if err := database.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/reports/:id", GetReport)
	return r
}

func seedReport(t *testing.T) *models.Report {
	t.Helper()
	branch, err := database.CreateBranch("Central")
	if err != nil {
		t.Fatalf("create branch: %v", err)
	}
	employee, err := database.CreateEmployee(100, "Alice", branch.ID)
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	rec := &models.Report{
		ReportDate:  time.Date(2026, 8, 28, 19, 0, 0, 0, time.UTC),
		TotalIncome: decimal.NewFromInt(1000),
		Cash:        decimal.NewFromInt(600),
		Cashless:    decimal.NewFromInt(400),
		Version:     1,
		EmployeeID:  employee.ID,
		BranchID:    branch.ID,
	}
	if err := database.CreateReport(rec); err != nil {
		t.Fatalf("create report: %v", err)
	}
	return rec
}

func TestGetReportByID(t *testing.T) {
	r := setupRouter(t)
	rec := seedReport(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/reports/%d", rec.ID), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Report ReportRow `json:"report"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Report.ID != rec.ID {
		t.Errorf("got report %d, want %d", body.Report.ID, rec.ID)
	}
	if body.Report.Branch != "Central" || body.Report.Employee != "Alice" {
		t.Errorf("branch/employee not loaded: %+v", body.Report)
	}
	if body.Report.TotalIncome != 1000 {
		t.Errorf("got total income %v, want 1000", body.Report.TotalIncome)
	}
}

func TestGetReportByIDNotFound(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/12345", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetReportByIDBadID(t *testing.T) {
	r := setupRouter(t)

	for _, id := range []string{"abc", "-1", "0"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/reports/"+id, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", id, w.Code)
		}
	}
}
