package bot

import (
	"fmt"
	"strings"
	"time"

	"go-report-bot/internal/database"
	"go-report-bot/internal/logger"
	"go-report-bot/internal/models"
)

func (b *Bot) showTodayReports(chatID int64, employee *models.Employee) {
	b.requireAdmin(chatID, employee, func() {
		now := b.cfg.Now()
		reports, err := database.GetReportsForDay(now)
		if err != nil {
			logger.LogError("bot", "showTodayReports", nil, err)
			b.reply(chatID, "⚠️ Something went wrong. Please try again.")
			return
		}
		if len(reports) == 0 {
			b.reply(chatID, "📭 No reports yet today.")
			return
		}

		summary, err := database.GetDailySummary(now)
		if err != nil {
			logger.LogError("bot", "showTodayReports", nil, err)
			b.reply(chatID, "⚠️ Something went wrong. Please try again.")
			return
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "📊 Summary for today (%s):\n\n", now.Format("02.01.2006"))
		fmt.Fprintf(&sb, "🏢 Branches reported: %d\n", summary.Branches)
		fmt.Fprintf(&sb, "💰 Total income: %s\n", summary.TotalIncome.StringFixed(2))
		fmt.Fprintf(&sb, "💵 Cash: %s\n", summary.TotalCash.StringFixed(2))
		fmt.Fprintf(&sb, "💳 Cashless: %s\n", summary.TotalCashless.StringFixed(2))
		fmt.Fprintf(&sb, "👥 Clients total: %d\n\n", summary.TotalClients)
		sb.WriteString("Per branch:\n")
		writeGroupedReports(&sb, reports, false)
		b.reply(chatID, sb.String())
	})
}

func (b *Bot) showReportsForDate(chatID int64, employee *models.Employee, rawDate string) {
	if !employee.IsAdmin {
		return
	}

	day, err := time.ParseInLocation("2006-01-02", rawDate, b.cfg.Location)
	if err != nil {
		b.reply(chatID, "❌ Invalid date. Use YYYY-MM-DD.")
		return
	}

	reports, err := database.GetReportsForDay(day)
	if err != nil {
		logger.LogError("bot", "showReportsForDate", rawDate, err)
		b.reply(chatID, "⚠️ Something went wrong. Please try again.")
		return
	}
	if len(reports) == 0 {
		b.reply(chatID, fmt.Sprintf("📭 No reports for %s.", rawDate))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Reports for %s:\n\n", rawDate)
	writeGroupedReports(&sb, reports, true)
	b.reply(chatID, sb.String())
}

// writeGroupedReports renders reports grouped under branch headers.
// Callers pass reports already ordered by branch.
func writeGroupedReports(sb *strings.Builder, reports []models.Report, detailed bool) {
	var currentBranch uint
	for _, r := range reports {
		if r.BranchID != currentBranch {
			currentBranch = r.BranchID
			fmt.Fprintf(sb, "\n🏢 %s:\n", r.Branch.Name)
		}
		if detailed {
			fmt.Fprintf(sb,
				"  👤 %s:\n    💰 Income: %s\n    👥 Clients: %d\n    💵 Cash: %s\n    💳 Cashless: %s\n    📝 Version: %d\n",
				r.Employee.FullName, r.TotalIncome.StringFixed(2), r.ClientsCount,
				r.Cash.StringFixed(2), r.Cashless.StringFixed(2), r.Version)
		} else {
			fmt.Fprintf(sb, "  👤 %s (v%d):\n    💰 %s | 👥 %d\n",
				r.Employee.FullName, r.Version, r.TotalIncome.StringFixed(2), r.ClientsCount)
		}
	}
}

func (b *Bot) showBranches(chatID int64, employee *models.Employee) {
	b.requireAdmin(chatID, employee, func() {
		branches, err := database.GetBranches()
		if err != nil {
			logger.LogError("bot", "showBranches", nil, err)
			b.reply(chatID, "⚠️ Something went wrong. Please try again.")
			return
		}
		if len(branches) == 0 {
			b.reply(chatID, "🏢 No branches yet.")
			return
		}

		var sb strings.Builder
		sb.WriteString("🏢 Branches:\n\n")
		for _, branch := range branches {
			active := 0
			for _, e := range branch.Employees {
				if e.IsActive {
					active++
				}
			}
			fmt.Fprintf(&sb, "📍 %s\n   🆔 ID: %d\n   👥 Employees: %d/%d active\n   📅 Added: %s\n\n",
				branch.Name, branch.ID, active, len(branch.Employees),
				branch.CreatedAt.Format("02.01.2006"))
		}
		b.reply(chatID, sb.String())
	})
}

// showRecentReports lists the last three days of reports, newest first.
func (b *Bot) showRecentReports(chatID int64, employee *models.Employee) {
	b.requireAdmin(chatID, employee, func() {
		now := b.cfg.Now()
		reports, err := database.GetReportsForRange(now.AddDate(0, 0, -3), now)
		if err != nil {
			logger.LogError("bot", "showRecentReports", nil, err)
			b.reply(chatID, "⚠️ Something went wrong. Please try again.")
			return
		}
		if len(reports) == 0 {
			b.reply(chatID, "📭 No reports in the last days.")
			return
		}

		// Range queries come back oldest first; show the latest ten.
		if len(reports) > 10 {
			reports = reports[len(reports)-10:]
		}

		var sb strings.Builder
		sb.WriteString("📋 Recent reports:\n\n")
		for i := len(reports) - 1; i >= 0; i-- {
			r := reports[i]
			fmt.Fprintf(&sb, "📅 %s\n🏢 %s | 👤 %s\n💰 %s | 👥 %d | v%d\n---\n",
				r.ReportDate.Format("02.01.2006 15:04"),
				r.Branch.Name, r.Employee.FullName,
				r.TotalIncome.StringFixed(2), r.ClientsCount, r.Version)
		}
		b.reply(chatID, sb.String())
	})
}
