package handlers

import (
	"net/http"
	"strconv"

	"go-report-bot/internal/database"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/branches ---
func GetBranches(c *gin.Context) {
	branches, err := database.GetBranches()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch branches"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

type CreateBranchRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

// --- POST: /api/branches ---
func CreateBranch(c *gin.Context) {
	var input CreateBranchRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	branch, err := database.CreateBranch(input.Name)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Branch likely already exists"})
		return
	}
	c.JSON(http.StatusCreated, branch)
}

// --- GET: /api/employees ---
func GetEmployees(c *gin.Context) {
	employees, err := database.GetEmployees()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

type CreateEmployeeRequest struct {
	TelegramID int64  `json:"telegram_id" binding:"required"`
	FullName   string `json:"full_name" binding:"required,min=2"`
	BranchID   uint   `json:"branch_id" binding:"required"`
}

// --- POST: /api/employees ---
func CreateEmployee(c *gin.Context) {
	var input CreateEmployeeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if _, err := database.GetBranchByID(input.BranchID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown branch"})
		return
	}

	employee, err := database.CreateEmployee(input.TelegramID, input.FullName, input.BranchID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Employee with this Telegram ID likely already exists"})
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// --- DELETE: /api/employees/:telegram_id ---
// Deactivates, never deletes: historical reports stay attached.
func DeactivateEmployee(c *gin.Context) {
	telegramID, err := strconv.ParseInt(c.Param("telegram_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Telegram ID"})
		return
	}

	employee, err := database.DeactivateEmployee(telegramID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	c.JSON(http.StatusOK, employee)
}
