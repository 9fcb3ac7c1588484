package database

import (
	"time"

	"go-report-bot/internal/logger"
	"go-report-bot/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the MySQL connection and syncs the schema.
// The bot is usually started together with the database container,
// so we wait for it instead of dying on the first refused connection.
func Connect(dsn string) error {
	var err error
	for i := 0; i < 5; i++ {
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
			TranslateError: true, // map duplicate-key errors to gorm.ErrDuplicatedKey
		})
		if err == nil {
			break
		}
		logger.Get().Warnf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return err
	}

	logger.Get().Info("✅ Successfully connected to MySQL!")
	return Migrate()
}

// Migrate syncs the schema on whatever DB is currently installed.
func Migrate() error {
	err := DB.AutoMigrate(
		&models.Branch{},
		&models.Employee{},
		&models.Report{},
	)
	if err != nil {
		return err
	}
	logger.Get().Info("✅ Database schema synced!")
	return nil
}
