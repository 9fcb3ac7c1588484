package handlers

import (
	"net/http"

	"go-report-bot/internal/ai"
	"go-report-bot/internal/config"

	"github.com/gin-gonic/gin"
)

type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

// --- POST: /api/ask ---
// AskAssistant lets the owner ask free-form questions about the reports.
func AskAssistant(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		if cfg.GeminiAPIKey == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server missing Gemini API key"})
			return
		}

		response, err := ai.RunAgent(req.Message, cfg.GeminiAPIKey, cfg.Location)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"reply": response})
	}
}
