// Package reminders runs the daily nag loop: at 19:00 business time every
// active employee without a report for the day gets a reminder, at 20:00
// the configured admins get the day's summary. The loop polls the clock
// every 30 seconds; a matching minute fires at most once.
package reminders

import (
	"context"
	"fmt"
	"time"

	"go-report-bot/internal/config"
	"go-report-bot/internal/database"
	"go-report-bot/internal/logger"
)

// Sender pushes a plain text message to a chat. Satisfied by the bot.
type Sender interface {
	SendText(chatID int64, text string) error
}

const (
	employeeReminderHour = 19
	ownerSummaryHour     = 20
	pollInterval         = 30 * time.Second
)

// Scheduler is the long-lived reminder loop.
type Scheduler struct {
	sender Sender
	cfg    *config.Config

	lastReminder time.Time
	lastSummary  time.Time
}

func NewScheduler(sender Sender, cfg *config.Config) *Scheduler {
	return &Scheduler{sender: sender, cfg: cfg}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	logger.Get().Info("⏰ Reminder scheduler started")
	for {
		select {
		case <-ctx.Done():
			logger.Get().Info("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.tick(s.cfg.Now())
		}
	}
}

func (s *Scheduler) tick(now time.Time) {
	if due(now, employeeReminderHour, s.lastReminder) {
		s.lastReminder = now
		s.sendEmployeeReminders(now)
	}
	if due(now, ownerSummaryHour, s.lastSummary) {
		s.lastSummary = now
		s.sendOwnerSummary(now)
	}
}

// due reports whether the hour:00 slot matches now and has not fired
// within the last minute (the 30 s poll hits each minute twice).
func due(now time.Time, hour int, last time.Time) bool {
	if now.Hour() != hour || now.Minute() != 0 {
		return false
	}
	return now.Sub(last) >= time.Minute
}

func (s *Scheduler) sendEmployeeReminders(now time.Time) {
	employees, err := database.GetActiveEmployees()
	if err != nil {
		logger.LogError("reminders", "sendEmployeeReminders", nil, err)
		return
	}

	for _, employee := range employees {
		today, err := database.GetTodayReportFor(employee.ID, now)
		if err != nil {
			logger.LogError("reminders", "sendEmployeeReminders", employee.ID, err)
			continue
		}
		if today != nil {
			continue
		}
		err = s.sender.SendText(employee.TelegramID,
			"⏰ Reminder: don't forget to file today's financial report!")
		if err != nil {
			// Delivery failures are logged and dropped, never retried.
			logger.LogError("reminders", "sendEmployeeReminders", employee.TelegramID, err)
		}
	}
}

func (s *Scheduler) sendOwnerSummary(now time.Time) {
	summary, err := database.GetDailySummary(now)
	if err != nil {
		logger.LogError("reminders", "sendOwnerSummary", nil, err)
		return
	}

	text := fmt.Sprintf(
		"📊 Daily summary for %s:\n\n"+
			"🏢 Branches reported: %d\n"+
			"📋 Reports: %d\n"+
			"💰 Total income: %s\n"+
			"💵 Cash: %s\n"+
			"💳 Cashless: %s\n"+
			"👥 Clients: %d",
		now.Format("02.01.2006"),
		summary.Branches, summary.Reports,
		summary.TotalIncome.StringFixed(2),
		summary.TotalCash.StringFixed(2),
		summary.TotalCashless.StringFixed(2),
		summary.TotalClients,
	)

	for _, adminID := range s.cfg.AdminIDs {
		if err := s.sender.SendText(adminID, text); err != nil {
			logger.LogError("reminders", "sendOwnerSummary", adminID, err)
		}
	}
}
