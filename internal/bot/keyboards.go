package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Menu button labels. The router matches on these exact strings.
const (
	btnFillReport    = "📊 Fill today's report"
	btnFixReport     = "✏️ Fix today's report"
	btnMyReports     = "📋 My recent reports"
	btnTodaySummary  = "📊 Today's summary"
	btnReportForDate = "📅 Report for a date"
	btnBranches      = "🏢 Branches"
	btnRecentReports = "📋 Recent reports"
	btnManageStaff   = "👥 Manage employees"
	btnCancel        = "❌ Cancel"
)

// Inline callback payloads for the summary confirmation step.
const (
	cbConfirmSend    = "confirm_send"
	cbConfirmEdit    = "confirm_edit"
	cbConfirmRestart = "confirm_restart"
)

func mainMenu(isAdmin bool) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	if isAdmin {
		rows = [][]tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(btnTodaySummary),
				tgbotapi.NewKeyboardButton(btnReportForDate),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(btnBranches),
				tgbotapi.NewKeyboardButton(btnRecentReports),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(btnManageStaff),
			),
		}
	} else {
		rows = [][]tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(btnFillReport),
				tgbotapi.NewKeyboardButton(btnFixReport),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(btnMyReports),
			),
		}
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	markup := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)),
	)
	markup.ResizeKeyboard = true
	return markup
}

func confirmationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Send", cbConfirmSend),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit", cbConfirmEdit),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Start over", cbConfirmRestart),
		),
	)
}
