package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mines-backend/internal/config"
	"mines-backend/internal/models"
	"mines-backend/internal/services"
)

const dailyCooldown = 24 * time.Hour

type UserHandler struct {
	redisService *services.RedisService
	cfg          *config.Config
}

func NewUserHandler(redisService *services.RedisService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		redisService: redisService,
		cfg:          cfg,
	}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.redisService.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	wallet, err := h.redisService.GetWallet(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"isAdmin":   user.IsAdmin,
			"lastLogin": user.LastLogin,
		},
		"wallet": gin.H{
			"balance":      wallet.Balance,
			"gamesPlayed":  wallet.GamesPlayed,
			"totalWagered": wallet.TotalWagered,
			"totalWon":     wallet.TotalWon,
		},
	})
}

// ClaimDaily credits the daily bonus through the ledger, once per 24h.
func (h *UserHandler) ClaimDaily(c *gin.Context) {
	userID := c.GetInt64("user_id")

	nextAvailable, err := h.redisService.ClaimDaily(
		c.Request.Context(), userID, h.cfg.DailyBonusAmount, dailyCooldown)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if nextAvailable > 0 {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":         "Cooldown",
			"nextAvailable": time.UnixMilli(nextAvailable).UTC().Format(time.RFC3339),
			"msLeft":        nextAvailable - time.Now().UnixMilli(),
		})
		return
	}

	h.redisService.RecordTransaction(c.Request.Context(), &models.Transaction{
		ID:          models.GenerateTransactionID(),
		UserID:      userID,
		Type:        models.TransactionTypeBonus,
		Amount:      h.cfg.DailyBonusAmount,
		Description: "Daily bonus",
		CreatedAt:   time.Now(),
	})

	wallet, err := h.redisService.GetWallet(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"added":   h.cfg.DailyBonusAmount,
		"balance": wallet.Balance,
	})
}

func (h *UserHandler) GetTransactions(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	transactions, err := h.redisService.GetUserTransactions(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"count":        len(transactions),
	})
}
