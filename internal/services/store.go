package services

import (
	"context"

	"mines-backend/internal/models"
)

// SessionStore persists game sessions. Implementations must be safe for
// concurrent use; serializing operations against a single session is the
// engine's job, not the store's.
type SessionStore interface {
	CreateSession(ctx context.Context, session *models.GameSession) error

	// GetSession returns ErrSessionNotFound for unknown ids.
	GetSession(ctx context.Context, gameID string) (*models.GameSession, error)

	UpdateSession(ctx context.Context, session *models.GameSession) error

	// CompleteSession moves the session out of the user's active index and
	// into their history.
	CompleteSession(ctx context.Context, userID int64, gameID string) error

	// ActiveSessionID returns the most recently created open session for
	// the user, or "" when there is none.
	ActiveSessionID(ctx context.Context, userID int64) (string, error)

	SessionHistory(ctx context.Context, userID int64, limit int64) ([]*models.GameSession, error)
}

// TransactionLog records money movements for the account history screen.
// Failures here are logged and swallowed; the ledger already holds the
// authoritative balance.
type TransactionLog interface {
	RecordTransaction(ctx context.Context, tx *models.Transaction) error
}
