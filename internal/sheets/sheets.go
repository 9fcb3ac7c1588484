// Package sheets mirrors the report database into a Google spreadsheet.
// Every call is best-effort: a failed push is logged and swallowed, the
// authoritative record already lives in MySQL.
package sheets

import (
	"context"
	"fmt"
	"time"

	"go-report-bot/internal/logger"
	"go-report-bot/internal/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	reportsSheet   = "Reports"
	branchesSheet  = "Branches"
	employeesSheet = "Employees"
)

// Service wraps the Sheets API client for one spreadsheet.
type Service struct {
	api           *sheets.Service
	spreadsheetID string
}

// New builds the client from a service-account credentials file.
func New(ctx context.Context, credentialsPath, spreadsheetID string) (*Service, error) {
	api, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, err
	}
	return &Service{api: api, spreadsheetID: spreadsheetID}, nil
}

// AppendReport appends one row for a freshly persisted report.
// Column order is fixed: date, branch, employee, the seven fields,
// version, creation timestamp.
func (s *Service) AppendReport(ctx context.Context, rec *models.Report, employee *models.Employee, branch *models.Branch) {
	row := []interface{}{
		rec.ReportDate.Format("2006-01-02"),
		branch.Name,
		employee.FullName,
		rec.TotalIncome.InexactFloat64(),
		rec.Cash.InexactFloat64(),
		rec.Cashless.InexactFloat64(),
		rec.CashBalance.InexactFloat64(),
		rec.ClientsCount,
		rec.CashToSuppliers.InexactFloat64(),
		rec.CashlessToSuppliers.InexactFloat64(),
		rec.Version,
		rec.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	_, err := s.api.Spreadsheets.Values.Append(
		s.spreadsheetID,
		reportsSheet,
		&sheets.ValueRange{Values: [][]interface{}{row}},
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		logger.LogError("sheets", "AppendReport", rec.ID, err)
	}
}

// SyncBranches clears the branches worksheet and rewrites it.
func (s *Service) SyncBranches(ctx context.Context, branches []models.Branch) {
	rows := [][]interface{}{{"ID", "Name", "Created"}}
	for _, b := range branches {
		rows = append(rows, []interface{}{
			b.ID, b.Name, b.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	s.rewrite(ctx, branchesSheet, rows)
}

// SyncEmployees clears the employees worksheet and rewrites it.
// Expects employees with their branch preloaded.
func (s *Service) SyncEmployees(ctx context.Context, employees []models.Employee) {
	rows := [][]interface{}{{"ID", "Telegram ID", "Full name", "Branch", "Active", "Admin", "Created"}}
	for _, e := range employees {
		rows = append(rows, []interface{}{
			e.ID, e.TelegramID, e.FullName, e.Branch.Name,
			yesNo(e.IsActive), yesNo(e.IsAdmin),
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	s.rewrite(ctx, employeesSheet, rows)
}

func (s *Service) rewrite(ctx context.Context, sheet string, rows [][]interface{}) {
	_, err := s.api.Spreadsheets.Values.Clear(
		s.spreadsheetID, sheet, &sheets.ClearValuesRequest{},
	).Context(ctx).Do()
	if err != nil {
		logger.LogError("sheets", "rewrite", sheet, err)
		return
	}

	_, err = s.api.Spreadsheets.Values.Update(
		s.spreadsheetID,
		fmt.Sprintf("%s!A1", sheet),
		&sheets.ValueRange{Values: rows},
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		logger.LogError("sheets", "rewrite", sheet, err)
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// pushTimeout bounds every fire-and-forget push.
const pushTimeout = 30 * time.Second

// Async runs fn on its own goroutine with a bounded context. Used by the
// conversation flow so a slow spreadsheet never blocks a reply.
func Async(fn func(ctx context.Context)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		fn(ctx)
	}()
}
