package bot

import (
	"fmt"
	"testing"

	"go-report-bot/internal/config"
	"go-report-bot/internal/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const allowListedID = int64(555)

func setupGate(t *testing.T) *Bot {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	database.DB = db
	if err := database.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &Bot{cfg: &config.Config{AdminIDs: []int64{allowListedID}}}
}

func seedActiveEmployee(t *testing.T, telegramID int64, name string) {
	t.Helper()
	branch, err := database.CreateBranch("Gate branch " + name)
	if err != nil {
		t.Fatalf("create branch: %v", err)
	}
	if _, err := database.CreateEmployee(telegramID, name, branch.ID); err != nil {
		t.Fatalf("create employee: %v", err)
	}
}

func TestResolveActiveEmployee(t *testing.T) {
	b := setupGate(t)
	seedActiveEmployee(t, 100, "Alice")

	employee, ok := b.resolve(100)
	if !ok {
		t.Fatal("active employee should be resolved")
	}
	if employee.FullName != "Alice" || employee.TelegramID != 100 {
		t.Fatalf("resolved wrong principal: %+v", employee)
	}
	if employee.IsAdmin {
		t.Error("plain employee must not be admin")
	}
	if isEphemeral(employee) {
		t.Error("stored employee must not be ephemeral")
	}
}

func TestResolveDeniesUnknown(t *testing.T) {
	b := setupGate(t)

	if _, ok := b.resolve(999); ok {
		t.Fatal("unknown telegram id must be denied")
	}
}

func TestResolveDeniesDeactivated(t *testing.T) {
	b := setupGate(t)
	seedActiveEmployee(t, 200, "Bob")
	if _, err := database.DeactivateEmployee(200); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, ok := b.resolve(200); ok {
		t.Fatal("deactivated employee must be denied")
	}
}

func TestResolveAllowListedEphemeralAdmin(t *testing.T) {
	b := setupGate(t)

	employee, ok := b.resolve(allowListedID)
	if !ok {
		t.Fatal("allow-listed id should be resolved")
	}
	if !employee.IsAdmin {
		t.Error("allow-listed principal must be admin")
	}
	if !employee.IsActive {
		t.Error("allow-listed principal must be active")
	}
	// The principal is synthesized, never persisted, and has no branch:
	// startReport refuses it on exactly this property.
	if !isEphemeral(employee) {
		t.Error("allow-listed principal must be ephemeral")
	}
	if employee.FullName != fmt.Sprintf("Admin_%d", allowListedID) {
		t.Errorf("unexpected synthesized name %q", employee.FullName)
	}

	var count int64
	database.DB.Table("employees").Count(&count)
	if count != 0 {
		t.Errorf("ephemeral admin must not be persisted, found %d rows", count)
	}
}

func TestResolveDeactivatedAllowListedFallsBackToEphemeral(t *testing.T) {
	b := setupGate(t)
	seedActiveEmployee(t, allowListedID, "Owner")
	if _, err := database.DeactivateEmployee(allowListedID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	employee, ok := b.resolve(allowListedID)
	if !ok {
		t.Fatal("allow-listed id should still be resolved after deactivation")
	}
	if !employee.IsAdmin || !isEphemeral(employee) {
		t.Fatalf("expected ephemeral admin, got %+v", employee)
	}
}
