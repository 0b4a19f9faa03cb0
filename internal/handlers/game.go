package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mines-backend/internal/models"
	"mines-backend/internal/services"
)

type GameHandler struct {
	gameEngine   *services.GameEngine
	redisService *services.RedisService
}

func NewGameHandler(gameEngine *services.GameEngine, redisService *services.RedisService) *GameHandler {
	return &GameHandler{
		gameEngine:   gameEngine,
		redisService: redisService,
	}
}

func (h *GameHandler) StartGame(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.gameEngine.StartGame(c.Request.Context(), userID, req.BetAmount, req.MineCount)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gameId":        result.GameID,
		"balance":       result.Balance,
		"gridSize":      result.GridSize,
		"mineCount":     result.MineCount,
		"multiplier":    result.Multiplier,
		"revealedCells": []models.Cell{},
	})
}

func (h *GameHandler) RevealCell(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.RevealCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	view, err := h.gameEngine.RevealCell(c.Request.Context(), userID, req.GameID, req.Row, req.Col)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) Cashout(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req models.CashoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	result, err := h.gameEngine.Cashout(c.Request.Context(), userID, req.GameID)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"winAmount":  result.WinAmount,
		"multiplier": result.Multiplier,
		"balance":    result.Balance,
		"gameOver":   true,
	})
}

func (h *GameHandler) GetActiveGame(c *gin.Context) {
	userID := c.GetInt64("user_id")

	session, err := h.gameEngine.ActiveGame(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active game found"})
			return
		}
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gameId":        session.ID,
		"betAmount":     session.BetAmount,
		"mineCount":     session.MineCount,
		"gridSize":      session.GridSize,
		"multiplier":    session.Multiplier,
		"revealedCells": session.RevealedCells,
		"status":        session.Status,
	})
}

func (h *GameHandler) GetBalance(c *gin.Context) {
	userID := c.GetInt64("user_id")

	wallet, err := h.redisService.GetWallet(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, models.BalanceResponse{
		Balance:      wallet.Balance,
		GamesPlayed:  wallet.GamesPlayed,
		TotalWagered: wallet.TotalWagered,
		TotalWon:     wallet.TotalWon,
	})
}

func (h *GameHandler) GetGameHistory(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	games, err := h.gameEngine.GameHistory(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	var response []gin.H
	for _, game := range games {
		response = append(response, gin.H{
			"gameId":     game.ID,
			"betAmount":  game.BetAmount,
			"mineCount":  game.MineCount,
			"multiplier": game.Multiplier,
			"winAmount":  game.WinAmount,
			"status":     game.Status,
			"createdAt":  game.CreatedAt,
			"endedAt":    game.EndedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"games": response,
		"count": len(response),
	})
}

// gameError translates engine failure kinds into wire responses. The only
// place status codes and player-facing messages are decided.
func gameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
	case errors.Is(err, services.ErrSessionNotOpen):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Game is not in progress"})
	case errors.Is(err, services.ErrCellAlreadyRevealed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cell already revealed"})
	case errors.Is(err, services.ErrOutOfBounds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cell out of bounds"})
	case errors.Is(err, services.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidParameters):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}
