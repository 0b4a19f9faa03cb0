package models

import "time"

type GameStatus string

const (
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusLost       GameStatus = "lost"
	GameStatusCashedOut  GameStatus = "cashed_out"
)

// Cell is a single grid coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type GameSession struct {
	ID        string  `json:"id" redis:"id"`
	UserID    int64   `json:"user_id" redis:"user_id"`
	BetAmount float64 `json:"bet_amount" redis:"bet_amount"`
	MineCount int     `json:"mine_count" redis:"mine_count"`
	GridSize  int     `json:"grid_size" redis:"grid_size"`

	// MinePositions is fixed at creation and never shown to the player
	// while the game is in progress.
	MinePositions []Cell `json:"mine_positions" redis:"mine_positions"`

	// RevealedCells keeps reveal order and never overlaps MinePositions
	// while Status is in_progress.
	RevealedCells []Cell `json:"revealed_cells" redis:"revealed_cells"`

	Multiplier float64    `json:"multiplier" redis:"multiplier"`
	WinAmount  float64    `json:"win_amount" redis:"win_amount"`
	Status     GameStatus `json:"status" redis:"status"`

	CreatedAt time.Time `json:"created_at" redis:"created_at"`
	EndedAt   time.Time `json:"ended_at,omitempty" redis:"ended_at"`
}

func (g *GameSession) InBounds(row, col int) bool {
	return row >= 0 && row < g.GridSize && col >= 0 && col < g.GridSize
}

func (g *GameSession) IsMine(row, col int) bool {
	for _, m := range g.MinePositions {
		if m.Row == row && m.Col == col {
			return true
		}
	}
	return false
}

func (g *GameSession) IsRevealed(row, col int) bool {
	for _, c := range g.RevealedCells {
		if c.Row == row && c.Col == col {
			return true
		}
	}
	return false
}

// GameView is the session as the player sees it. The same shape goes out
// on the reveal response and on game_update websocket pushes.
type GameView struct {
	GameID        string  `json:"gameId"`
	BetAmount     float64 `json:"betAmount"`
	MineCount     int     `json:"mineCount"`
	GridSize      int     `json:"gridSize"`
	Multiplier    float64 `json:"multiplier"`
	PotentialWin  float64 `json:"potentialWin"`
	RevealedCells []Cell  `json:"revealedCells"`
	MinePositions []Cell  `json:"minePositions,omitempty"`
	GameOver      bool    `json:"gameOver"`
	Result        string  `json:"result"`
	Balance       float64 `json:"balance"`
}
