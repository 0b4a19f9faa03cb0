package models

import "time"

type TransactionType string

const (
	TransactionTypeBet   TransactionType = "bet"
	TransactionTypeWin   TransactionType = "win"
	TransactionTypeBonus TransactionType = "bonus"
)

type Transaction struct {
	ID          string          `json:"id" redis:"id"`
	UserID      int64           `json:"user_id" redis:"user_id"`
	Type        TransactionType `json:"type" redis:"type"`
	Amount      float64         `json:"amount" redis:"amount"`
	GameID      string          `json:"game_id,omitempty" redis:"game_id"`
	Description string          `json:"description" redis:"description"`
	CreatedAt   time.Time       `json:"created_at" redis:"created_at"`
}
