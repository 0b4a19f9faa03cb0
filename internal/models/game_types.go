package models

import "fmt"

const (
	MinBetAmount = 1.0
	MaxBetAmount = 10000.0
)

// AllowedMineCounts is the full set of mine counts a game can be started with.
var AllowedMineCounts = []int{3, 5, 7}

type StartGameRequest struct {
	BetAmount float64 `json:"betAmount" binding:"required"`
	MineCount int     `json:"mineCount" binding:"required"`
}

// Validate covers the rules gin binding tags cannot express. Requests that
// pass here are fully in-range; nothing downstream re-checks them.
func (r *StartGameRequest) Validate() error {
	if r.BetAmount <= 0 {
		return fmt.Errorf("bet amount must be positive")
	}
	if r.BetAmount < MinBetAmount {
		return fmt.Errorf("minimum bet is %.2f", MinBetAmount)
	}
	if r.BetAmount > MaxBetAmount {
		return fmt.Errorf("maximum bet is %.2f", MaxBetAmount)
	}

	for _, n := range AllowedMineCounts {
		if r.MineCount == n {
			return nil
		}
	}
	return fmt.Errorf("mine count must be one of %v", AllowedMineCounts)
}

// Row and Col carry no binding tags: bounds belong to the game, which knows
// its grid size and answers with the right error kind.
type RevealCellRequest struct {
	GameID string `json:"gameId" binding:"required"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

type CashoutRequest struct {
	GameID string `json:"gameId" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
