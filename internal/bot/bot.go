// Package bot is the Telegram conversation surface. It routes updates to
// the report workflow, the admin wizards, and the read-only queries, with
// the access gate in front of everything.
package bot

import (
	"context"
	"fmt"
	"regexp"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-report-bot/internal/config"
	"go-report-bot/internal/logger"
	"go-report-bot/internal/models"
	"go-report-bot/internal/sheets"
	"go-report-bot/internal/workflow"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	cfg    *config.Config
	flow   *workflow.Manager
	sheets *sheets.Service // nil when the spreadsheet is not configured
	admin  *adminSessions
}

func New(cfg *config.Config, flow *workflow.Manager, sheetsSvc *sheets.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	logger.Get().Infof("🤖 Authorized as @%s", api.Self.UserName)

	return &Bot{
		api:    api,
		cfg:    cfg,
		flow:   flow,
		sheets: sheetsSvc,
		admin:  newAdminSessions(),
	}, nil
}

// Run long-polls for updates until ctx is cancelled. Each update is
// handled on its own goroutine so one chat's slow round-trip cannot
// stall every other conversation; the workflow and wizard session
// stores serialize access per chat. Rapid-fire messages from the same
// chat may interleave, which the state machines tolerate.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		from := update.CallbackQuery.From
		employee, ok := b.resolve(from.ID)
		if !ok {
			return
		}
		b.handleCallback(update.CallbackQuery, employee)
	case update.Message != nil:
		from := update.Message.From
		if from == nil {
			return
		}
		employee, ok := b.resolve(from.ID)
		if !ok {
			b.reply(update.Message.Chat.ID, "❌ You do not have access to this bot.")
			return
		}
		b.handleMessage(update.Message, employee)
	}
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func (b *Bot) handleMessage(msg *tgbotapi.Message, employee *models.Employee) {
	chatID := msg.Chat.ID
	text := msg.Text

	// A running wizard owns the conversation until done or cancelled.
	if state := b.flow.State(chatID); state != workflow.StateIdle {
		switch {
		case text == btnCancel || msg.Command() == "cancel":
			b.flow.Cancel(chatID)
			b.replyWithMenu(chatID, "❌ Report entry cancelled.", employee.IsAdmin)
		case state.Awaiting():
			b.handleFieldInput(chatID, text, employee)
		default:
			b.reply(chatID, "Use the buttons under the summary to send, edit or start over.")
		}
		return
	}
	if b.admin.active(chatID) {
		if text == btnCancel || msg.Command() == "cancel" {
			b.admin.clear(chatID)
			b.replyWithMenu(chatID, "❌ Cancelled.", employee.IsAdmin)
			return
		}
		b.handleAdminWizardInput(chatID, text, employee)
		return
	}

	switch {
	case msg.Command() == "start":
		b.sendWelcome(chatID, employee)

	// Employee actions
	case text == btnFillReport, text == btnFixReport:
		b.startReport(chatID, employee)
	case text == btnMyReports:
		b.showMyReports(chatID, employee)

	// Admin queries
	case text == btnTodaySummary, msg.Command() == "today":
		b.showTodayReports(chatID, employee)
	case text == btnReportForDate, msg.Command() == "daily":
		b.requireAdmin(chatID, employee, func() {
			b.reply(chatID, "Enter a date as YYYY-MM-DD:")
		})
	case datePattern.MatchString(text):
		b.showReportsForDate(chatID, employee, text)
	case text == btnBranches, msg.Command() == "branches":
		b.showBranches(chatID, employee)
	case text == btnRecentReports, msg.Command() == "reports_last":
		b.showRecentReports(chatID, employee)

	// Admin management
	case text == btnManageStaff:
		b.showManageMenu(chatID, employee)
	case msg.Command() == "add_employee":
		b.startAddEmployee(chatID, employee)
	case msg.Command() == "remove_employee":
		b.startRemoveEmployee(chatID, employee)
	case msg.Command() == "list_employees":
		b.listEmployees(chatID, employee)
	case msg.Command() == "add_branch":
		b.startAddBranch(chatID, employee)
	case msg.Command() == "list_branches":
		b.showBranches(chatID, employee)
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery, employee *models.Employee) {
	// Telegram keeps showing a spinner until the callback is answered.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		logger.LogError("bot", "handleCallback", cb.ID, err)
	}
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	switch cb.Data {
	case cbConfirmSend:
		b.confirmSend(chatID, employee)
	case cbConfirmEdit:
		b.confirmEdit(chatID)
	case cbConfirmRestart:
		b.confirmRestart(chatID)
	}
}

func (b *Bot) sendWelcome(chatID int64, employee *models.Employee) {
	role := "Branch employee"
	if employee.IsAdmin {
		role = "Administrator"
	}
	b.replyWithMenu(chatID,
		fmt.Sprintf("👋 Welcome, %s!\nRole: %s", employee.FullName, role),
		employee.IsAdmin)
}

// requireAdmin runs fn only for admins; everyone else gets a refusal.
func (b *Bot) requireAdmin(chatID int64, employee *models.Employee, fn func()) {
	if !employee.IsAdmin {
		b.reply(chatID, "❌ Administrators only.")
		return
	}
	fn()
}

// SendText implements the reminders.Sender interface.
func (b *Bot) SendText(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.LogError("bot", "reply", chatID, err)
	}
}

func (b *Bot) replyWithMenu(chatID int64, text string, isAdmin bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainMenu(isAdmin)
	if _, err := b.api.Send(msg); err != nil {
		logger.LogError("bot", "replyWithMenu", chatID, err)
	}
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := b.api.Send(msg); err != nil {
		logger.LogError("bot", "replyWithKeyboard", chatID, err)
	}
}
