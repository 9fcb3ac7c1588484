package database

import (
	"go-report-bot/internal/models"
)

// GetBranches returns all branches ordered by name, with employees loaded
// so callers can show headcounts.
func GetBranches() ([]models.Branch, error) {
	var branches []models.Branch
	err := DB.Preload("Employees").Order("name").Find(&branches).Error
	return branches, err
}

func GetBranchByID(id uint) (*models.Branch, error) {
	var branch models.Branch
	if err := DB.First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func GetBranchByName(name string) (*models.Branch, error) {
	var branch models.Branch
	if err := DB.Where("name = ?", name).First(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

// CreateBranch persists a new branch. The unique index on name rejects
// duplicates at the database level.
func CreateBranch(name string) (*models.Branch, error) {
	branch := models.Branch{Name: name}
	if err := DB.Create(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}
