package services_test

import (
	"context"
	"testing"
	"time"

	"mines-backend/internal/config"
	"mines-backend/internal/models"
	"mines-backend/internal/services"
)

func setupTestRedis(t *testing.T) *services.RedisService {
	t.Helper()

	cfg := &config.Config{
		RedisURL:        "localhost:6379",
		RedisPass:       "",
		RedisDB:         0,
		StartingBalance: 1000,
	}

	redisService, err := services.NewRedisService(cfg)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	return redisService
}

func TestLedgerOperations(t *testing.T) {
	redisService := setupTestRedis(t)
	defer redisService.Close()

	ctx := context.Background()
	userID := int64(999901)
	defer redisService.DeleteWallet(ctx, userID)

	wallet, err := redisService.GetWallet(ctx, userID)
	if err != nil {
		t.Fatalf("Failed to get wallet: %v", err)
	}
	if wallet.Balance != 1000 {
		t.Errorf("Expected starting balance 1000, got %f", wallet.Balance)
	}

	if err := redisService.DebitBet(ctx, userID, 100); err != nil {
		t.Fatalf("Failed to debit bet: %v", err)
	}

	wallet, _ = redisService.GetWallet(ctx, userID)
	if wallet.Balance != 900 {
		t.Errorf("Expected balance 900 after debit, got %f", wallet.Balance)
	}
	if wallet.TotalWagered != 100 {
		t.Errorf("Expected total wagered 100, got %f", wallet.TotalWagered)
	}

	if err := redisService.DebitBet(ctx, userID, 5000); err != services.ErrInsufficientBalance {
		t.Errorf("Expected ErrInsufficientBalance, got %v", err)
	}

	if err := redisService.CreditWin(ctx, userID, 120); err != nil {
		t.Fatalf("Failed to credit win: %v", err)
	}

	wallet, _ = redisService.GetWallet(ctx, userID)
	if wallet.Balance != 1020 {
		t.Errorf("Expected balance 1020 after win, got %f", wallet.Balance)
	}
	if wallet.TotalWon != 120 {
		t.Errorf("Expected total won 120, got %f", wallet.TotalWon)
	}
	if wallet.GamesPlayed != 1 {
		t.Errorf("Expected 1 game played, got %d", wallet.GamesPlayed)
	}

	if err := redisService.RecordLoss(ctx, userID); err != nil {
		t.Fatalf("Failed to record loss: %v", err)
	}

	wallet, _ = redisService.GetWallet(ctx, userID)
	if wallet.GamesPlayed != 2 {
		t.Errorf("Expected 2 games played, got %d", wallet.GamesPlayed)
	}
}

func TestSessionStoreRoundtrip(t *testing.T) {
	redisService := setupTestRedis(t)
	defer redisService.Close()

	ctx := context.Background()
	userID := int64(999902)

	session := &models.GameSession{
		ID:            "test_mines_game_1",
		UserID:        userID,
		BetAmount:     100,
		MineCount:     5,
		GridSize:      5,
		MinePositions: []models.Cell{{Row: 4, Col: 0}, {Row: 4, Col: 1}},
		RevealedCells: []models.Cell{},
		Multiplier:    1.0,
		Status:        models.GameStatusInProgress,
		CreatedAt:     time.Now(),
	}
	defer redisService.DeleteGameSession(ctx, session.ID)

	if err := redisService.CreateSession(ctx, session); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	retrieved, err := redisService.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if retrieved.ID != session.ID || retrieved.MineCount != 5 {
		t.Errorf("Session roundtrip mismatch: %+v", retrieved)
	}
	if len(retrieved.MinePositions) != 2 {
		t.Errorf("Expected 2 mine positions, got %d", len(retrieved.MinePositions))
	}

	activeID, err := redisService.ActiveSessionID(ctx, userID)
	if err != nil {
		t.Fatalf("Failed to get active session id: %v", err)
	}
	if activeID != session.ID {
		t.Errorf("Expected active session %s, got %s", session.ID, activeID)
	}

	if err := redisService.CompleteSession(ctx, userID, session.ID); err != nil {
		t.Fatalf("Failed to complete session: %v", err)
	}

	activeID, _ = redisService.ActiveSessionID(ctx, userID)
	if activeID != "" {
		t.Errorf("Expected no active session after completion, got %s", activeID)
	}

	history, err := redisService.SessionHistory(ctx, userID, 10)
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("Expected 1 game in history, got %d", len(history))
	}

	if _, err := redisService.GetSession(ctx, "no-such-game"); err != services.ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestClaimDailyCooldown(t *testing.T) {
	redisService := setupTestRedis(t)
	defer redisService.Close()

	ctx := context.Background()
	userID := int64(999903)
	defer redisService.DeleteWallet(ctx, userID)

	next, err := redisService.ClaimDaily(ctx, userID, 1000, 24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to claim daily bonus: %v", err)
	}
	if next != 0 {
		t.Errorf("First claim should succeed, got next available %d", next)
	}

	wallet, _ := redisService.GetWallet(ctx, userID)
	if wallet.Balance != 2000 {
		t.Errorf("Expected balance 2000 after bonus, got %f", wallet.Balance)
	}

	next, err = redisService.ClaimDaily(ctx, userID, 1000, 24*time.Hour)
	if err != nil {
		t.Fatalf("Second claim errored: %v", err)
	}
	if next == 0 {
		t.Error("Second claim inside the cooldown should be refused")
	}

	wallet, _ = redisService.GetWallet(ctx, userID)
	if wallet.Balance != 2000 {
		t.Errorf("Balance should be unchanged by refused claim, got %f", wallet.Balance)
	}
}
