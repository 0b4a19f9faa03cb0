package services

import "context"

// Ledger is the single boundary through which balances move. The engine
// only issues relative debit/credit instructions and never writes a balance
// wholesale; each call is atomic with respect to concurrent calls on the
// same account, and the adapter owns that invariant.
type Ledger interface {
	Balance(ctx context.Context, userID int64) (float64, error)

	// DebitBet takes the stake and bumps total wagered. Returns
	// ErrInsufficientBalance without any change when funds are short.
	DebitBet(ctx context.Context, userID int64, amount float64) error

	// RefundBet undoes a DebitBet whose game never came to exist.
	RefundBet(ctx context.Context, userID int64, amount float64) error

	// CreditWin pays out a cashout and bumps total won and games played.
	CreditWin(ctx context.Context, userID int64, amount float64) error

	// RecordLoss bumps games played. The stake was already taken at start,
	// so a loss moves no money.
	RecordLoss(ctx context.Context, userID int64) error

	// Credit moves money in with no game attached (bonuses).
	Credit(ctx context.Context, userID int64, amount float64) error
}
