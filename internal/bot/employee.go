package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-report-bot/internal/database"
	"go-report-bot/internal/logger"
	"go-report-bot/internal/models"
	"go-report-bot/internal/report"
	"go-report-bot/internal/sheets"
	"go-report-bot/internal/workflow"
)

// prompts shown when entering each Awaiting state.
var prompts = map[report.Field]string{
	report.FieldTotalIncome:         "Enter the total income for the day:",
	report.FieldCash:                "Enter the cash amount:",
	report.FieldCashless:            "Enter the cashless amount:",
	report.FieldCashBalance:         "Enter the remaining cash balance in the till:",
	report.FieldClientsCount:        "Enter the number of clients:",
	report.FieldCashToSuppliers:     "Enter cash paid to suppliers:",
	report.FieldCashlessToSuppliers: "Enter cashless paid to suppliers:",
}

func (b *Bot) startReport(chatID int64, employee *models.Employee) {
	if isEphemeral(employee) {
		b.reply(chatID, "❌ Admins without an employee profile cannot file reports.")
		return
	}

	existing, err := database.GetTodayReportFor(employee.ID, b.cfg.Now())
	if err != nil {
		logger.LogError("bot", "startReport", employee.ID, err)
		b.reply(chatID, "⚠️ Something went wrong. Please try again.")
		return
	}
	if existing != nil {
		b.reply(chatID, fmt.Sprintf(
			"📝 You already have a report for today (version %d).\nA new version will be created.",
			existing.Version))
	}

	first := b.flow.Begin(chatID)
	b.replyWithKeyboard(chatID, prompts[first], cancelKeyboard())
}

func (b *Bot) handleFieldInput(chatID int64, text string, employee *models.Employee) {
	result, err := b.flow.Input(chatID, text)
	if err != nil {
		logger.LogError("bot", "handleFieldInput", chatID, err)
		return
	}

	switch {
	case result.Invalid != nil:
		field := b.flow.State(chatID).Field()
		if field == report.FieldClientsCount {
			b.reply(chatID, "❌ Invalid value. Enter a whole non-negative number:")
		} else {
			b.reply(chatID, "❌ Invalid amount. Enter a non-negative number:")
		}
	case result.Discarded != nil:
		b.replyWithMenu(chatID,
			"❌ Validation failed: "+result.Discarded.Error()+"\nPlease start over.",
			employee.IsAdmin)
	case result.SummaryReached:
		b.showSummary(chatID)
	default:
		b.reply(chatID, prompts[result.Next])
	}
}

func (b *Bot) showSummary(chatID int64) {
	draft := b.flow.Draft(chatID)
	if draft == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Report summary:\n\n")
	fmt.Fprintf(&sb, "💰 Total income: %s\n", draft.TotalIncome)
	fmt.Fprintf(&sb, "💵 Cash: %s\n", draft.Cash)
	fmt.Fprintf(&sb, "💳 Cashless: %s\n", draft.Cashless)
	fmt.Fprintf(&sb, "🏦 Cash balance: %s\n", draft.CashBalance)
	fmt.Fprintf(&sb, "👥 Clients: %d\n", *draft.ClientsCount)
	fmt.Fprintf(&sb, "📤 Cash to suppliers: %s\n", draft.CashToSuppliers)
	fmt.Fprintf(&sb, "📥 Cashless to suppliers: %s\n\n", draft.CashlessToSuppliers)
	sb.WriteString("Check the numbers and confirm.")

	b.replyWithKeyboard(chatID, sb.String(), confirmationKeyboard())
}

func (b *Bot) confirmSend(chatID int64, employee *models.Employee) {
	rec, err := b.flow.Send(chatID, employee)
	if errors.Is(err, workflow.ErrNoSession) || errors.Is(err, workflow.ErrNotSummary) {
		return
	}
	if err != nil {
		// Storage failure: the session stays at Summary so the user can
		// just press Send again without retyping seven values.
		logger.LogError("bot", "confirmSend", employee.ID, err)
		b.reply(chatID, "⚠️ Could not save the report right now. Please try sending again.")
		return
	}

	b.replyWithMenu(chatID, fmt.Sprintf(
		"✅ Report saved!\nVersion: %d\nDate: %s",
		rec.Version, rec.ReportDate.Format("2006-01-02")),
		employee.IsAdmin)

	// Best-effort spreadsheet push after the authoritative write.
	if b.sheets != nil {
		b.pushReportToSheet(rec, employee)
	}
}

func (b *Bot) pushReportToSheet(rec *models.Report, employee *models.Employee) {
	sheetsSvc := b.sheets
	recCopy := *rec
	employeeCopy := *employee
	branchCopy := employee.Branch
	sheets.Async(func(ctx context.Context) {
		sheetsSvc.AppendReport(ctx, &recCopy, &employeeCopy, &branchCopy)
	})
}

func (b *Bot) confirmEdit(chatID int64) {
	first, err := b.flow.Edit(chatID)
	if err != nil {
		return
	}
	b.replyWithKeyboard(chatID, "Editing the report. "+prompts[first], cancelKeyboard())
}

func (b *Bot) confirmRestart(chatID int64) {
	first, err := b.flow.Restart(chatID)
	if err != nil {
		return
	}
	b.replyWithKeyboard(chatID, "Starting over. "+prompts[first], cancelKeyboard())
}

func (b *Bot) showMyReports(chatID int64, employee *models.Employee) {
	if isEphemeral(employee) {
		b.reply(chatID, "📭 You have no reports yet.")
		return
	}

	reports, err := database.GetRecentReports(employee.ID, 5)
	if err != nil {
		logger.LogError("bot", "showMyReports", employee.ID, err)
		b.reply(chatID, "⚠️ Something went wrong. Please try again.")
		return
	}
	if len(reports) == 0 {
		b.reply(chatID, "📭 You have no reports yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 Your recent reports:\n\n")
	for _, r := range reports {
		fmt.Fprintf(&sb, "📅 %s (v%d)\n💰 Income: %s\n👥 Clients: %d\n---\n",
			r.ReportDate.Format("02.01.2006"), r.Version,
			r.TotalIncome.StringFixed(2), r.ClientsCount)
	}
	b.reply(chatID, sb.String())
}
