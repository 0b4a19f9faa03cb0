package models

// Wallet is the ledger's view of an account: the balance plus the aggregate
// stats that move with it. JSON field names are load-bearing: the ledger's
// Lua scripts decode this exact shape with cjson.
type Wallet struct {
	UserID       int64   `json:"user_id" redis:"user_id"`
	Balance      float64 `json:"balance" redis:"balance"`
	GamesPlayed  int64   `json:"games_played" redis:"games_played"`
	TotalWagered float64 `json:"total_wagered" redis:"total_wagered"`
	TotalWon     float64 `json:"total_won" redis:"total_won"`

	LastDailyClaim int64 `json:"last_daily_claim" redis:"last_daily_claim"`
}

type BalanceResponse struct {
	Balance      float64 `json:"balance"`
	GamesPlayed  int64   `json:"gamesPlayed"`
	TotalWagered float64 `json:"totalWagered"`
	TotalWon     float64 `json:"totalWon"`
}
