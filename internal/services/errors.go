package services

import "errors"

// One sentinel per failure kind the game surfaces. Handlers map these to
// HTTP statuses with errors.Is; everything else is a 500.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidParameters   = errors.New("invalid grid parameters")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSessionNotFound covers both an unknown game id and a game owned
	// by someone else, so callers cannot probe for other users' games.
	ErrSessionNotFound     = errors.New("game not found")
	ErrSessionNotOpen      = errors.New("game is not in progress")
	ErrCellAlreadyRevealed = errors.New("cell already revealed")
	ErrOutOfBounds         = errors.New("cell out of bounds")

	// ErrLedgerFailure is fatal to the operation in flight; money movement
	// is never silently retried.
	ErrLedgerFailure = errors.New("ledger operation failed")

	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already registered")
)
