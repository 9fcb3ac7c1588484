package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the bot reads from the environment.
// Load it once in main and pass it down; nothing else touches os.Getenv.
type Config struct {
	BotToken string
	AdminIDs []int64 // Telegram IDs allowed in even without an Employee row

	DBDSN string

	SheetsCredentialsPath string
	ReportSheetID         string

	Timezone string
	Location *time.Location

	// Dashboard API
	HTTPAddr          string
	JWTSecret         string
	DashboardUser     string
	DashboardPassHash string // bcrypt hash
	CORSOrigin        string

	GeminiAPIKey string
}

// Load reads the environment into a Config. BOT_TOKEN and DB_DSN are
// mandatory; everything else has a default or degrades a feature.
func Load() (*Config, error) {
	cfg := &Config{
		BotToken:              os.Getenv("BOT_TOKEN"),
		DBDSN:                 os.Getenv("DB_DSN"),
		SheetsCredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
		ReportSheetID:         os.Getenv("REPORT_SHEET_ID"),
		Timezone:              getEnv("TIMEZONE", "Europe/Moscow"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		DashboardUser:         getEnv("DASHBOARD_USER", "admin"),
		DashboardPassHash:     os.Getenv("DASHBOARD_PASSWORD_HASH"),
		CORSOrigin:            getEnv("CORS_ORIGIN", "http://localhost:5173"),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
	}

	if cfg.BotToken == "" {
		return nil, ErrMissing("BOT_TOKEN")
	}
	if cfg.DBDSN == "" {
		return nil, ErrMissing("DB_DSN")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	cfg.Location = loc

	cfg.AdminIDs = parseAdminIDs(os.Getenv("ADMIN_IDS"))
	return cfg, nil
}

// IsAdminID reports whether id is on the configured allow-list.
func (c *Config) IsAdminID(id int64) bool {
	for _, admin := range c.AdminIDs {
		if admin == id {
			return true
		}
	}
	return false
}

// Now returns the current time in the business timezone.
func (c *Config) Now() time.Time {
	return time.Now().In(c.Location)
}

// parseAdminIDs accepts "123,456,789"; malformed entries are skipped.
func parseAdminIDs(raw string) []int64 {
	if raw == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ErrMissing names a required environment variable that was not set.
type ErrMissing string

func (e ErrMissing) Error() string {
	return "missing required environment variable: " + string(e)
}
