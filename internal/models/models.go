package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Branch - A physical location employees report against
type Branch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Employees []Employee `gorm:"foreignKey:BranchID" json:"employees,omitempty"`
	Reports   []Report   `gorm:"foreignKey:BranchID" json:"reports,omitempty"`
}

// Employee - A registered bot user tied to one branch
type Employee struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TelegramID int64     `gorm:"uniqueIndex" json:"telegram_id"`
	FullName   string    `gorm:"size:100" json:"full_name"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	IsAdmin    bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt  time.Time `json:"created_at"`
	BranchID   uint      `json:"branch_id"`
	Branch     Branch    `json:"branch"`
}

// Report - One versioned daily financial submission.
// Reports are immutable once created; a same-day resubmission gets a new
// row with the next version number. The composite unique index closes the
// race where two concurrent sends compute the same next version.
type Report struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReportDate time.Time `json:"report_date"`
	// ReportDay is the calendar day in the business timezone, stored
	// timezone-free so same-day lookups are a plain equality.
	ReportDay time.Time `gorm:"type:date;uniqueIndex:idx_employee_day_version,priority:2" json:"report_day"`

	TotalIncome         decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_income"`
	Cash                decimal.Decimal `gorm:"type:decimal(10,2)" json:"cash"`
	Cashless            decimal.Decimal `gorm:"type:decimal(10,2)" json:"cashless"`
	CashBalance         decimal.Decimal `gorm:"type:decimal(10,2)" json:"cash_balance"`
	ClientsCount        int             `json:"clients_count"`
	CashToSuppliers     decimal.Decimal `gorm:"type:decimal(10,2)" json:"cash_to_suppliers"`
	CashlessToSuppliers decimal.Decimal `gorm:"type:decimal(10,2)" json:"cashless_to_suppliers"`

	Version   int       `gorm:"default:1;uniqueIndex:idx_employee_day_version,priority:3" json:"version"`
	CreatedAt time.Time `json:"created_at"`

	EmployeeID uint     `gorm:"uniqueIndex:idx_employee_day_version,priority:1" json:"employee_id"`
	Employee   Employee `json:"employee"`
	BranchID   uint     `json:"branch_id"`
	Branch     Branch   `json:"branch"`
}

// Day normalizes t to its calendar day with the timezone stripped.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
