package services

import "time"

const (
	KeyNextUserID    = "user:next_id"
	KeyUserInfo      = "user:%d:info"
	KeyUsernameIndex = "username:%s"
	KeyEmailIndex    = "email:%s"

	KeyWallet = "wallet:%d"

	KeyGameSession      = "mines:session:%s"
	KeyUserActiveGames  = "user:%d:mines:active"
	KeyUserGameHistory  = "user:%d:mines:history"
	KeyTransaction      = "transaction:%s"
	KeyUserTransactions = "user:%d:transactions"

	KeyRateLimit = "ratelimit:%d:%s"

	TTLGameSession = 7 * 24 * time.Hour
	TTLTransaction = 30 * 24 * time.Hour
)
