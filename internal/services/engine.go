package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"mines-backend/internal/models"
)

// DefaultGridSize is the board edge length. Carried as a session field so
// everything below the handlers treats it as a parameter.
const DefaultGridSize = 5

// GameEngine owns the session lifecycle: in_progress -> lost or
// in_progress -> cashed_out, nothing else. It coordinates the grid
// generator, the payout model, the session store, and the ledger.
type GameEngine struct {
	store  SessionStore
	ledger Ledger
	txLog  TransactionLog

	broadcaster Broadcaster

	// One mutex per in-flight session id. Reveal and cashout against the
	// same game are serialized here; different games never contend.
	locks sync.Map
}

func NewGameEngine(store SessionStore, ledger Ledger, txLog TransactionLog) *GameEngine {
	return &GameEngine{
		store:  store,
		ledger: ledger,
		txLog:  txLog,
	}
}

// SetBroadcaster attaches the push channel. Optional; the engine works
// without one.
func (ge *GameEngine) SetBroadcaster(b Broadcaster) {
	ge.broadcaster = b
}

type StartGameResult struct {
	GameID     string
	GridSize   int
	MineCount  int
	Multiplier float64
	Balance    float64
}

type CashoutResult struct {
	WinAmount  float64
	Multiplier float64
	Balance    float64
}

// StartGame debits the stake and creates a new in-progress session as one
// failure-atomic unit: no debit without a session, no session without a
// debit. The refund path covers the window in between.
func (ge *GameEngine) StartGame(ctx context.Context, userID int64, betAmount float64, mineCount int) (*StartGameResult, error) {
	if betAmount <= 0 {
		return nil, fmt.Errorf("%w: bet amount must be positive", ErrInvalidInput)
	}
	if !allowedMineCount(mineCount) {
		return nil, fmt.Errorf("%w: mine count must be one of %v", ErrInvalidInput, models.AllowedMineCounts)
	}

	// Layout first: a generator failure must not move money.
	mines, err := GenerateMineLayout(DefaultGridSize, mineCount)
	if err != nil {
		return nil, err
	}

	if err := ge.ledger.DebitBet(ctx, userID, betAmount); err != nil {
		return nil, err
	}

	session := &models.GameSession{
		ID:            models.GenerateGameID(),
		UserID:        userID,
		BetAmount:     betAmount,
		MineCount:     mineCount,
		GridSize:      DefaultGridSize,
		MinePositions: mines,
		RevealedCells: []models.Cell{},
		Multiplier:    1.0,
		Status:        models.GameStatusInProgress,
		CreatedAt:     time.Now(),
	}

	if err := ge.store.CreateSession(ctx, session); err != nil {
		if refundErr := ge.ledger.RefundBet(ctx, userID, betAmount); refundErr != nil {
			log.Printf("failed to refund bet for user %d after store error: %v", userID, refundErr)
		}
		return nil, fmt.Errorf("failed to create game: %v", err)
	}

	ge.recordTransaction(ctx, &models.Transaction{
		ID:          models.GenerateTransactionID(),
		UserID:      userID,
		Type:        models.TransactionTypeBet,
		Amount:      -betAmount,
		GameID:      session.ID,
		Description: fmt.Sprintf("Mines bet at %d mines", mineCount),
		CreatedAt:   time.Now(),
	})

	balance, err := ge.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerFailure, err)
	}

	ge.pushBalance(userID, balance)

	return &StartGameResult{
		GameID:     session.ID,
		GridSize:   session.GridSize,
		MineCount:  session.MineCount,
		Multiplier: session.Multiplier,
		Balance:    balance,
	}, nil
}

// RevealCell uncovers one cell. A mine resolves the session to lost in the
// same step; a safe cell appends to the reveal order and recomputes the
// multiplier from scratch.
func (ge *GameEngine) RevealCell(ctx context.Context, userID int64, gameID string, row, col int) (*models.GameView, error) {
	unlock := ge.lockSession(gameID)
	defer unlock()

	session, err := ge.ownedSession(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.GameStatusInProgress {
		return nil, ErrSessionNotOpen
	}
	if !session.InBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d,%d) on a %dx%d grid",
			ErrOutOfBounds, row, col, session.GridSize, session.GridSize)
	}
	if session.IsRevealed(row, col) {
		return nil, ErrCellAlreadyRevealed
	}

	if session.IsMine(row, col) {
		return ge.resolveLoss(ctx, session, gameID)
	}

	session.RevealedCells = append(session.RevealedCells, models.Cell{Row: row, Col: col})
	session.Multiplier = Multiplier(
		len(session.RevealedCells),
		session.GridSize*session.GridSize,
		session.MineCount,
	)

	if err := ge.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save game: %v", err)
	}

	balance, err := ge.ledger.Balance(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerFailure, err)
	}

	view := &models.GameView{
		GameID:        session.ID,
		BetAmount:     session.BetAmount,
		MineCount:     session.MineCount,
		GridSize:      session.GridSize,
		Multiplier:    session.Multiplier,
		PotentialWin:  PotentialWin(session.BetAmount, session.Multiplier),
		RevealedCells: session.RevealedCells,
		GameOver:      false,
		Result:        "safe",
		Balance:       balance,
	}

	ge.pushGame(session.UserID, view)

	return view, nil
}

// resolveLoss is the mine branch of RevealCell; the caller holds the
// session lock. The mine coordinate is never appended to RevealedCells.
func (ge *GameEngine) resolveLoss(ctx context.Context, session *models.GameSession, gameID string) (*models.GameView, error) {
	session.Status = models.GameStatusLost
	session.WinAmount = 0
	session.EndedAt = time.Now()

	if err := ge.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save game: %v", err)
	}
	if err := ge.store.CompleteSession(ctx, session.UserID, gameID); err != nil {
		log.Printf("failed to archive lost game %s: %v", gameID, err)
	}

	// The stake left at start; a loss moves no money.
	if err := ge.ledger.RecordLoss(ctx, session.UserID); err != nil {
		log.Printf("failed to record loss for user %d: %v", session.UserID, err)
	}

	ge.dropLock(gameID)

	balance, err := ge.ledger.Balance(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerFailure, err)
	}

	view := &models.GameView{
		GameID:        session.ID,
		BetAmount:     session.BetAmount,
		MineCount:     session.MineCount,
		GridSize:      session.GridSize,
		Multiplier:    session.Multiplier,
		PotentialWin:  0,
		RevealedCells: session.RevealedCells,
		MinePositions: session.MinePositions,
		GameOver:      true,
		Result:        "mine",
		Balance:       balance,
	}

	ge.pushGame(session.UserID, view)
	ge.pushBalance(session.UserID, balance)

	return view, nil
}

// Cashout resolves an in-progress session to cashed_out and credits the win
// as one unit. If the credit fails the status transition is rolled back and
// the game stays open.
func (ge *GameEngine) Cashout(ctx context.Context, userID int64, gameID string) (*CashoutResult, error) {
	unlock := ge.lockSession(gameID)
	defer unlock()

	session, err := ge.ownedSession(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.GameStatusInProgress {
		return nil, ErrSessionNotOpen
	}

	winAmount := PotentialWin(session.BetAmount, session.Multiplier)

	session.Status = models.GameStatusCashedOut
	session.WinAmount = winAmount
	session.EndedAt = time.Now()

	if err := ge.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save game: %v", err)
	}

	if err := ge.ledger.CreditWin(ctx, userID, winAmount); err != nil {
		session.Status = models.GameStatusInProgress
		session.WinAmount = 0
		session.EndedAt = time.Time{}
		if rbErr := ge.store.UpdateSession(ctx, session); rbErr != nil {
			log.Printf("failed to reopen game %s after credit failure: %v", gameID, rbErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrLedgerFailure, err)
	}

	if err := ge.store.CompleteSession(ctx, userID, gameID); err != nil {
		log.Printf("failed to archive cashed out game %s: %v", gameID, err)
	}

	ge.dropLock(gameID)

	ge.recordTransaction(ctx, &models.Transaction{
		ID:          models.GenerateTransactionID(),
		UserID:      userID,
		Type:        models.TransactionTypeWin,
		Amount:      winAmount,
		GameID:      session.ID,
		Description: fmt.Sprintf("Mines cashout at %.2fx with %d reveals", session.Multiplier, len(session.RevealedCells)),
		CreatedAt:   time.Now(),
	})

	balance, err := ge.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerFailure, err)
	}

	ge.pushBalance(userID, balance)

	return &CashoutResult{
		WinAmount:  winAmount,
		Multiplier: session.Multiplier,
		Balance:    balance,
	}, nil
}

// ActiveGame returns the user's most recently created in-progress session.
func (ge *GameEngine) ActiveGame(ctx context.Context, userID int64) (*models.GameSession, error) {
	gameID, err := ge.store.ActiveSessionID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up active game: %v", err)
	}
	if gameID == "" {
		return nil, ErrSessionNotFound
	}

	session, err := ge.store.GetSession(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.GameStatusInProgress {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

func (ge *GameEngine) GameHistory(ctx context.Context, userID int64, limit int64) ([]*models.GameSession, error) {
	return ge.store.SessionHistory(ctx, userID, limit)
}

// ownedSession loads a session and checks ownership. Unknown id and wrong
// owner are the same error on purpose.
func (ge *GameEngine) ownedSession(ctx context.Context, userID int64, gameID string) (*models.GameSession, error) {
	session, err := ge.store.GetSession(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (ge *GameEngine) lockSession(gameID string) func() {
	v, _ := ge.locks.LoadOrStore(gameID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// dropLock forgets a resolved session's mutex. Terminal sessions take no
// further mutations, so a waiter that raced the drop only ever observes the
// terminal status.
func (ge *GameEngine) dropLock(gameID string) {
	ge.locks.Delete(gameID)
}

func (ge *GameEngine) recordTransaction(ctx context.Context, tx *models.Transaction) {
	if ge.txLog == nil {
		return
	}
	if err := ge.txLog.RecordTransaction(ctx, tx); err != nil {
		log.Printf("failed to record transaction %s: %v", tx.ID, err)
	}
}

func (ge *GameEngine) pushBalance(userID int64, balance float64) {
	if ge.broadcaster != nil {
		ge.broadcaster.BroadcastBalanceUpdate(userID, balance)
	}
}

func (ge *GameEngine) pushGame(userID int64, view *models.GameView) {
	if ge.broadcaster != nil {
		ge.broadcaster.BroadcastGameUpdate(userID, view)
	}
}

func allowedMineCount(n int) bool {
	for _, allowed := range models.AllowedMineCounts {
		if n == allowed {
			return true
		}
	}
	return false
}
