package models_test

import (
	"testing"

	"mines-backend/internal/models"
)

func TestStartGameRequestValidate(t *testing.T) {
	valid := &models.StartGameRequest{BetAmount: 100, MineCount: 5}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	for _, req := range []models.StartGameRequest{
		{BetAmount: 0, MineCount: 5},
		{BetAmount: -10, MineCount: 5},
		{BetAmount: 0.5, MineCount: 5},
		{BetAmount: 20000, MineCount: 5},
		{BetAmount: 100, MineCount: 4},
		{BetAmount: 100, MineCount: 0},
		{BetAmount: 100, MineCount: 25},
	} {
		if err := req.Validate(); err == nil {
			t.Errorf("expected rejection for bet=%v mines=%d", req.BetAmount, req.MineCount)
		}
	}

	for _, n := range models.AllowedMineCounts {
		req := &models.StartGameRequest{BetAmount: 100, MineCount: n}
		if err := req.Validate(); err != nil {
			t.Errorf("mine count %d should be allowed: %v", n, err)
		}
	}
}

func TestGameSessionHelpers(t *testing.T) {
	session := &models.GameSession{
		GridSize:      5,
		MinePositions: []models.Cell{{Row: 4, Col: 0}, {Row: 4, Col: 1}},
		RevealedCells: []models.Cell{{Row: 0, Col: 0}},
	}

	if !session.InBounds(0, 0) || !session.InBounds(4, 4) {
		t.Error("corner cells should be in bounds")
	}
	if session.InBounds(5, 0) || session.InBounds(0, 5) || session.InBounds(-1, 0) {
		t.Error("cells past the edge should be out of bounds")
	}

	if !session.IsMine(4, 0) {
		t.Error("(4,0) is a mine")
	}
	if session.IsMine(0, 0) {
		t.Error("(0,0) is not a mine")
	}

	if !session.IsRevealed(0, 0) {
		t.Error("(0,0) is revealed")
	}
	if session.IsRevealed(1, 1) {
		t.Error("(1,1) is not revealed")
	}
}

func TestIDGenerators(t *testing.T) {
	if models.GenerateGameID() == models.GenerateGameID() {
		t.Error("game ids should be unique")
	}
	if models.GenerateTransactionID() == "" {
		t.Error("transaction id should not be empty")
	}
}
