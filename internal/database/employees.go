package database

import (
	"go-report-bot/internal/models"
)

// GetEmployees returns every employee (active or not) with their branch,
// ordered by branch name then full name.
func GetEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	err := DB.Preload("Branch").
		Joins("JOIN branches ON branches.id = employees.branch_id").
		Order("branches.name, employees.full_name").
		Find(&employees).Error
	return employees, err
}

func GetEmployeeByTelegramID(telegramID int64) (*models.Employee, error) {
	var employee models.Employee
	err := DB.Preload("Branch").Where("telegram_id = ?", telegramID).First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetActiveEmployees returns the employees the reminder loop should nag.
func GetActiveEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	err := DB.Preload("Branch").Where("is_active = ?", true).Find(&employees).Error
	return employees, err
}

// CreateEmployee registers a new employee on a branch. The unique index on
// telegram_id keeps external identities globally unique.
func CreateEmployee(telegramID int64, fullName string, branchID uint) (*models.Employee, error) {
	employee := models.Employee{
		TelegramID: telegramID,
		FullName:   fullName,
		IsActive:   true,
		BranchID:   branchID,
	}
	if err := DB.Create(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// DeactivateEmployee soft-disables an employee. Historical reports stay.
func DeactivateEmployee(telegramID int64) (*models.Employee, error) {
	employee, err := GetEmployeeByTelegramID(telegramID)
	if err != nil {
		return nil, err
	}
	if err := DB.Model(employee).Update("is_active", false).Error; err != nil {
		return nil, err
	}
	employee.IsActive = false
	return employee, nil
}
