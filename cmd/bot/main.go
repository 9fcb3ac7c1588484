package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go-report-bot/internal/auth"
	"go-report-bot/internal/bot"
	"go-report-bot/internal/config"
	"go-report-bot/internal/database"
	"go-report-bot/internal/handlers"
	"go-report-bot/internal/logger"
	"go-report-bot/internal/middleware"
	"go-report-bot/internal/reminders"
	"go-report-bot/internal/sheets"
	"go-report-bot/internal/workflow"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Get().Warn("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal(err)
	}
	auth.Init(cfg.JWTSecret)

	if err := database.Connect(cfg.DBDSN); err != nil {
		logger.Get().Fatal("Failed to connect to database: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The spreadsheet mirror is optional; without credentials the bot
	// simply keeps everything in MySQL.
	var sheetsSvc *sheets.Service
	if cfg.SheetsCredentialsPath != "" && cfg.ReportSheetID != "" {
		sheetsSvc, err = sheets.New(ctx, cfg.SheetsCredentialsPath, cfg.ReportSheetID)
		if err != nil {
			logger.Get().Warn("Google Sheets disabled: ", err)
			sheetsSvc = nil
		}
	} else {
		logger.Get().Warn("Google Sheets disabled: credentials not configured")
	}

	flow := workflow.NewManager(cfg.Location)
	tgBot, err := bot.New(cfg, flow, sheetsSvc)
	if err != nil {
		logger.Get().Fatal("Failed to start Telegram bot: ", err)
	}

	scheduler := reminders.NewScheduler(tgBot, cfg)
	go scheduler.Run(ctx)

	go runHTTP(ctx, cfg)

	logger.Get().Info("🚀 Bot is up")
	tgBot.Run(ctx)
	logger.Get().Info("Bot stopped")
}

// runHTTP serves the owner's dashboard API next to the bot.
func runHTTP(ctx context.Context, cfg *config.Config) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", handlers.Login(cfg))

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	api.Use(middleware.RequireRole("admin"))
	{
		api.GET("/reports/today", handlers.GetTodayReports(cfg))
		api.GET("/reports/day/:date", handlers.GetReportsByDay(cfg))
		api.GET("/reports/:id", handlers.GetReport)
		api.GET("/reports", handlers.GetReportsByRange(cfg))
		api.GET("/reports/export", handlers.ExportReports(cfg))

		api.GET("/branches", handlers.GetBranches)
		api.POST("/branches", handlers.CreateBranch)
		api.GET("/employees", handlers.GetEmployees)
		api.POST("/employees", handlers.CreateEmployee)
		api.DELETE("/employees/:telegram_id", handlers.DeactivateEmployee)

		api.POST("/ask", handlers.AskAssistant(cfg))
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Get().Info("🌐 Dashboard API listening on " + cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Get().Error("Dashboard API failed: ", err)
	}
}
