package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go-report-bot/internal/database"
	"go-report-bot/internal/logger"
	"go-report-bot/internal/models"
	"go-report-bot/internal/sheets"
)

// The management wizards (add employee, add branch, remove employee) are
// short fixed sequences with their own session store, separate from the
// report workflow.
type adminState int

const (
	adminIdle adminState = iota
	adminAddEmployeeID
	adminAddEmployeeName
	adminAddEmployeeBranch
	adminAddBranchName
	adminRemoveEmployeePick
)

type adminSession struct {
	state      adminState
	telegramID int64
	fullName   string
	branches   []models.Branch
	employees  []models.Employee
}

type adminSessions struct {
	mu       sync.Mutex
	sessions map[int64]*adminSession
}

func newAdminSessions() *adminSessions {
	return &adminSessions{sessions: make(map[int64]*adminSession)}
}

func (a *adminSessions) active(chatID int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.sessions[chatID]
	return ok
}

func (a *adminSessions) get(chatID int64) *adminSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessions[chatID]
}

func (a *adminSessions) set(chatID int64, s *adminSession) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions[chatID] = s
}

func (a *adminSessions) clear(chatID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, chatID)
}

func (b *Bot) showManageMenu(chatID int64, employee *models.Employee) {
	b.requireAdmin(chatID, employee, func() {
		b.reply(chatID,
			"👥 Employee management:\n\n"+
				"/add_employee - register a new employee\n"+
				"/remove_employee - deactivate an employee\n"+
				"/list_employees - list all employees\n"+
				"/add_branch - register a new branch\n"+
				"/list_branches - list all branches")
	})
}

func (b *Bot) startAddEmployee(chatID int64, employee *models.Employee) {
	b.requireAdmin(chatID, employee, func() {
		b.admin.set(chatID, &adminSession{state: adminAddEmployeeID})
		b.replyWithKeyboard(chatID, "Enter the new employee's Telegram ID:", cancelKeyboard())
	})
}

func (b *Bot) startAddBranch(chatID int64, employee *models.Employee) {
	b.requireAdmin(chatID, employee, func() {
		b.admin.set(chatID, &adminSession{state: adminAddBranchName})
		b.replyWithKeyboard(chatID, "Enter the new branch name:", cancelKeyboard())
	})
}

func (b *Bot) startRemoveEmployee(chatID int64, employee *models.Employee) {
	b.requireAdmin(chatID, employee, func() {
		employees, err := database.GetEmployees()
		if err != nil {
			logger.LogError("bot", "startRemoveEmployee", nil, err)
			b.reply(chatID, "⚠️ Something went wrong. Please try again.")
			return
		}
		if len(employees) == 0 {
			b.reply(chatID, "📭 No employees registered.")
			return
		}

		var sb strings.Builder
		sb.WriteString("Pick the employee to deactivate (enter the number):\n\n")
		for i, emp := range employees {
			status := "✅"
			if !emp.IsActive {
				status = "❌"
			}
			fmt.Fprintf(&sb, "%d. %s %s (%d) - %s\n",
				i+1, status, emp.FullName, emp.TelegramID, emp.Branch.Name)
		}
		b.admin.set(chatID, &adminSession{state: adminRemoveEmployeePick, employees: employees})
		b.replyWithKeyboard(chatID, sb.String(), cancelKeyboard())
	})
}

func (b *Bot) handleAdminWizardInput(chatID int64, text string, employee *models.Employee) {
	s := b.admin.get(chatID)
	if s == nil {
		return
	}

	switch s.state {
	case adminAddEmployeeID:
		telegramID, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			b.reply(chatID, "❌ Invalid ID. Enter a number:")
			return
		}
		s.telegramID = telegramID
		s.state = adminAddEmployeeName
		b.reply(chatID, "Enter the employee's full name:")

	case adminAddEmployeeName:
		name := strings.TrimSpace(text)
		if len(name) < 2 {
			b.reply(chatID, "❌ The name must be at least 2 characters:")
			return
		}
		s.fullName = name

		branches, err := database.GetBranches()
		if err != nil {
			logger.LogError("bot", "handleAdminWizardInput", nil, err)
			b.reply(chatID, "⚠️ Something went wrong. Please try again.")
			return
		}
		if len(branches) == 0 {
			b.admin.clear(chatID)
			b.replyWithMenu(chatID, "❌ No branches yet. Add a branch first (/add_branch).", employee.IsAdmin)
			return
		}

		var sb strings.Builder
		sb.WriteString("Pick a branch (enter the number):\n\n")
		for i, branch := range branches {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, branch.Name)
		}
		s.branches = branches
		s.state = adminAddEmployeeBranch
		b.reply(chatID, sb.String())

	case adminAddEmployeeBranch:
		b.finishAddEmployee(chatID, text, s, employee)

	case adminAddBranchName:
		b.finishAddBranch(chatID, text, employee)

	case adminRemoveEmployeePick:
		b.finishRemoveEmployee(chatID, text, s, employee)
	}
}

func (b *Bot) finishAddEmployee(chatID int64, text string, s *adminSession, admin *models.Employee) {
	choice, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || choice < 1 || choice > len(s.branches) {
		b.reply(chatID, "❌ Invalid branch number. Try again:")
		return
	}
	branch := s.branches[choice-1]

	if existing, err := database.GetEmployeeByTelegramID(s.telegramID); err == nil && existing != nil {
		b.admin.clear(chatID)
		b.replyWithMenu(chatID, "❌ An employee with this Telegram ID already exists.", admin.IsAdmin)
		return
	}

	created, err := database.CreateEmployee(s.telegramID, s.fullName, branch.ID)
	if err != nil {
		logger.LogError("bot", "finishAddEmployee", s.telegramID, err)
		b.reply(chatID, "⚠️ Could not save the employee. Please try again.")
		return
	}

	b.admin.clear(chatID)
	b.replyWithMenu(chatID, fmt.Sprintf(
		"✅ Employee added:\n👤 %s\n🆔 Telegram ID: %d\n🏢 Branch: %s",
		created.FullName, created.TelegramID, branch.Name),
		admin.IsAdmin)
	b.syncEmployeesToSheet()
}

func (b *Bot) finishAddBranch(chatID int64, text string, admin *models.Employee) {
	name := strings.TrimSpace(text)
	if len(name) < 2 {
		b.reply(chatID, "❌ The name must be at least 2 characters:")
		return
	}

	if existing, err := database.GetBranchByName(name); err == nil && existing != nil {
		b.admin.clear(chatID)
		b.replyWithMenu(chatID, "❌ A branch with this name already exists.", admin.IsAdmin)
		return
	}

	created, err := database.CreateBranch(name)
	if err != nil {
		logger.LogError("bot", "finishAddBranch", name, err)
		b.reply(chatID, "⚠️ Could not save the branch. Please try again.")
		return
	}

	b.admin.clear(chatID)
	b.replyWithMenu(chatID, fmt.Sprintf("✅ Branch %q added!", created.Name), admin.IsAdmin)
	b.syncBranchesToSheet()
}

func (b *Bot) finishRemoveEmployee(chatID int64, text string, s *adminSession, admin *models.Employee) {
	choice, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || choice < 1 || choice > len(s.employees) {
		b.reply(chatID, "❌ Invalid number. Try again:")
		return
	}
	picked := s.employees[choice-1]

	deactivated, err := database.DeactivateEmployee(picked.TelegramID)
	if err != nil {
		logger.LogError("bot", "finishRemoveEmployee", picked.TelegramID, err)
		b.reply(chatID, "⚠️ Could not deactivate the employee. Please try again.")
		return
	}

	b.admin.clear(chatID)
	b.replyWithMenu(chatID, fmt.Sprintf(
		"✅ %s deactivated. Their historical reports are kept.", deactivated.FullName),
		admin.IsAdmin)
	b.syncEmployeesToSheet()
}

func (b *Bot) listEmployees(chatID int64, employee *models.Employee) {
	b.requireAdmin(chatID, employee, func() {
		employees, err := database.GetEmployees()
		if err != nil {
			logger.LogError("bot", "listEmployees", nil, err)
			b.reply(chatID, "⚠️ Something went wrong. Please try again.")
			return
		}
		if len(employees) == 0 {
			b.reply(chatID, "📭 No employees registered.")
			return
		}

		var sb strings.Builder
		sb.WriteString("👥 Employees:\n\n")
		for _, emp := range employees {
			status := "✅ Active"
			if !emp.IsActive {
				status = "❌ Inactive"
			}
			role := "👤 Employee"
			if emp.IsAdmin {
				role = "👑 Admin"
			}
			fmt.Fprintf(&sb, "👤 %s\n   🆔 ID: %d\n   🏢 Branch: %s\n   %s | %s\n   📅 Added: %s\n\n",
				emp.FullName, emp.TelegramID, emp.Branch.Name,
				status, role, emp.CreatedAt.Format("02.01.2006"))
		}
		b.reply(chatID, sb.String())
	})
}

func (b *Bot) syncEmployeesToSheet() {
	if b.sheets == nil {
		return
	}
	employees, err := database.GetEmployees()
	if err != nil {
		logger.LogError("bot", "syncEmployeesToSheet", nil, err)
		return
	}
	sheetsSvc := b.sheets
	sheets.Async(func(ctx context.Context) {
		sheetsSvc.SyncEmployees(ctx, employees)
	})
}

func (b *Bot) syncBranchesToSheet() {
	if b.sheets == nil {
		return
	}
	branches, err := database.GetBranches()
	if err != nil {
		logger.LogError("bot", "syncBranchesToSheet", nil, err)
		return
	}
	sheetsSvc := b.sheets
	sheets.Async(func(ctx context.Context) {
		sheetsSvc.SyncBranches(ctx, branches)
	})
}
