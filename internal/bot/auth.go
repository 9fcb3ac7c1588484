package bot

import (
	"fmt"

	"go-report-bot/internal/database"
	"go-report-bot/internal/models"
)

// resolve is the access gate: it maps an inbound Telegram user to an
// Employee. Unknown or deactivated users are checked against the
// configured admin allow-list, which synthesizes an ephemeral admin
// identity (ID 0, never persisted) so owners don't need an Employee row.
func (b *Bot) resolve(telegramID int64) (*models.Employee, bool) {
	employee, err := database.GetEmployeeByTelegramID(telegramID)
	if err == nil && employee.IsActive {
		return employee, true
	}

	if b.cfg.IsAdminID(telegramID) {
		return &models.Employee{
			TelegramID: telegramID,
			FullName:   fmt.Sprintf("Admin_%d", telegramID),
			IsAdmin:    true,
			IsActive:   true,
		}, true
	}
	return nil, false
}

// isEphemeral reports whether the principal came from the allow-list
// rather than storage. Ephemeral admins have no branch and cannot file
// reports, only run admin operations.
func isEphemeral(e *models.Employee) bool {
	return e.ID == 0
}
