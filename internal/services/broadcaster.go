package services

import "mines-backend/internal/models"

// Broadcaster pushes state changes to connected clients. Delivery is
// best-effort; game state never depends on it.
type Broadcaster interface {
	BroadcastBalanceUpdate(userID int64, balance float64)
	BroadcastGameUpdate(userID int64, view *models.GameView)
}
