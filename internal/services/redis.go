package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"mines-backend/internal/config"
	"mines-backend/internal/models"
)

// RedisService is the storage side of the system: user profiles, wallets
// (the ledger), game sessions, and the transaction log all live here. It
// implements SessionStore, Ledger, and TransactionLog.
type RedisService struct {
	client *redis.Client

	startingBalance float64
}

func NewRedisService(cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisService{
		client:          client,
		startingBalance: cfg.StartingBalance,
	}, nil
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

// --- users ---

func (s *RedisService) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	usernameKey := fmt.Sprintf(KeyUsernameIndex, strings.ToLower(username))
	emailKey := fmt.Sprintf(KeyEmailIndex, strings.ToLower(email))

	id, err := s.client.Incr(ctx, KeyNextUserID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate user id: %v", err)
	}

	ok, err := s.client.SetNX(ctx, usernameKey, id, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to reserve username: %v", err)
	}
	if !ok {
		return nil, ErrUsernameTaken
	}

	ok, err = s.client.SetNX(ctx, emailKey, id, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to reserve email: %v", err)
	}
	if !ok {
		s.client.Del(ctx, usernameKey)
		return nil, ErrEmailTaken
	}

	user := &models.User{
		ID:           id,
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	if err := s.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *RedisService) SaveUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %v", err)
	}

	key := fmt.Sprintf(KeyUserInfo, user.ID)
	return s.client.Set(ctx, key, data, 0).Err()
}

func (s *RedisService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	key := fmt.Sprintf(KeyUserInfo, userID)

	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %v", err)
	}

	return &user, nil
}

func (s *RedisService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	key := fmt.Sprintf(KeyUsernameIndex, strings.ToLower(username))

	id, err := s.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve username: %v", err)
	}

	return s.GetUser(ctx, id)
}

// --- ledger ---

func (s *RedisService) GetWallet(ctx context.Context, userID int64) (*models.Wallet, error) {
	key := fmt.Sprintf(KeyWallet, userID)

	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		wallet := &models.Wallet{
			UserID:  userID,
			Balance: s.startingBalance,
		}
		if err := s.saveWallet(ctx, wallet); err != nil {
			return nil, fmt.Errorf("failed to create wallet: %v", err)
		}
		return wallet, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %v", err)
	}

	var wallet models.Wallet
	if err := json.Unmarshal([]byte(data), &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %v", err)
	}

	return &wallet, nil
}

func (s *RedisService) saveWallet(ctx context.Context, wallet *models.Wallet) error {
	data, err := json.Marshal(wallet)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet: %v", err)
	}

	key := fmt.Sprintf(KeyWallet, wallet.UserID)
	return s.client.Set(ctx, key, data, 0).Err()
}

func (s *RedisService) Balance(ctx context.Context, userID int64) (float64, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// Each balance move is a single Lua script so concurrent operations on the
// same account never interleave. Scripts decode the wallet JSON, apply the
// relative change plus its stat increments, and write it back.

var debitBetScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)

	if wallet.balance < amount then
		return redis.error_reply("insufficient balance")
	end

	wallet.balance = wallet.balance - amount
	wallet.total_wagered = (wallet.total_wagered or 0) + amount

	redis.call("SET", key, cjson.encode(wallet))
	return "OK"
`)

var refundBetScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)

	wallet.balance = wallet.balance + amount
	wallet.total_wagered = (wallet.total_wagered or 0) - amount
	if wallet.total_wagered < 0 then
		wallet.total_wagered = 0
	end

	redis.call("SET", key, cjson.encode(wallet))
	return "OK"
`)

var creditWinScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)

	wallet.balance = wallet.balance + amount
	wallet.total_won = (wallet.total_won or 0) + amount
	wallet.games_played = (wallet.games_played or 0) + 1

	redis.call("SET", key, cjson.encode(wallet))
	return "OK"
`)

var recordLossScript = redis.NewScript(`
	local key = KEYS[1]

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)
	wallet.games_played = (wallet.games_played or 0) + 1

	redis.call("SET", key, cjson.encode(wallet))
	return "OK"
`)

var creditScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)
	wallet.balance = wallet.balance + amount

	redis.call("SET", key, cjson.encode(wallet))
	return "OK"
`)

func (s *RedisService) DebitBet(ctx context.Context, userID int64, amount float64) error {
	if _, err := s.GetWallet(ctx, userID); err != nil {
		return err
	}

	key := fmt.Sprintf(KeyWallet, userID)
	if err := debitBetScript.Run(ctx, s.client, []string{key}, amount).Err(); err != nil {
		if strings.Contains(err.Error(), "insufficient balance") {
			return ErrInsufficientBalance
		}
		return fmt.Errorf("%w: %v", ErrLedgerFailure, err)
	}
	return nil
}

func (s *RedisService) RefundBet(ctx context.Context, userID int64, amount float64) error {
	key := fmt.Sprintf(KeyWallet, userID)
	if err := refundBetScript.Run(ctx, s.client, []string{key}, amount).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerFailure, err)
	}
	return nil
}

func (s *RedisService) CreditWin(ctx context.Context, userID int64, amount float64) error {
	key := fmt.Sprintf(KeyWallet, userID)
	if err := creditWinScript.Run(ctx, s.client, []string{key}, amount).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerFailure, err)
	}
	return nil
}

func (s *RedisService) RecordLoss(ctx context.Context, userID int64) error {
	key := fmt.Sprintf(KeyWallet, userID)
	if err := recordLossScript.Run(ctx, s.client, []string{key}).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerFailure, err)
	}
	return nil
}

func (s *RedisService) Credit(ctx context.Context, userID int64, amount float64) error {
	if _, err := s.GetWallet(ctx, userID); err != nil {
		return err
	}

	key := fmt.Sprintf(KeyWallet, userID)
	if err := creditScript.Run(ctx, s.client, []string{key}, amount).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerFailure, err)
	}
	return nil
}

var claimDailyScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])
	local now = tonumber(ARGV[2])
	local cooldown = tonumber(ARGV[3])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)
	local last = wallet.last_daily_claim or 0

	if last > 0 and (now - last) < cooldown then
		return last + cooldown
	end

	wallet.balance = wallet.balance + amount
	wallet.last_daily_claim = now

	redis.call("SET", key, cjson.encode(wallet))
	return 0
`)

// ClaimDaily credits the daily bonus if the cooldown has passed. Returns 0
// on success, or the unix-millisecond timestamp at which the next claim
// becomes available.
func (s *RedisService) ClaimDaily(ctx context.Context, userID int64, amount float64, cooldown time.Duration) (int64, error) {
	if _, err := s.GetWallet(ctx, userID); err != nil {
		return 0, err
	}

	key := fmt.Sprintf(KeyWallet, userID)
	nextAvailable, err := claimDailyScript.Run(ctx, s.client, []string{key},
		amount, time.Now().UnixMilli(), cooldown.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLedgerFailure, err)
	}
	return nextAvailable, nil
}

// --- game sessions ---

func (s *RedisService) CreateSession(ctx context.Context, session *models.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal game session: %v", err)
	}

	sessionKey := fmt.Sprintf(KeyGameSession, session.ID)
	if err := s.client.Set(ctx, sessionKey, data, TTLGameSession).Err(); err != nil {
		return fmt.Errorf("failed to save game session: %v", err)
	}

	activeKey := fmt.Sprintf(KeyUserActiveGames, session.UserID)
	if err := s.client.ZAdd(ctx, activeKey, redis.Z{
		Score:  float64(session.CreatedAt.UnixNano()),
		Member: session.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to index active game: %v", err)
	}
	s.client.Expire(ctx, activeKey, TTLGameSession)

	return nil
}

func (s *RedisService) GetSession(ctx context.Context, gameID string) (*models.GameSession, error) {
	key := fmt.Sprintf(KeyGameSession, gameID)

	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game session: %v", err)
	}

	var session models.GameSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game session: %v", err)
	}

	return &session, nil
}

func (s *RedisService) UpdateSession(ctx context.Context, session *models.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal game session: %v", err)
	}

	key := fmt.Sprintf(KeyGameSession, session.ID)
	return s.client.Set(ctx, key, data, TTLGameSession).Err()
}

func (s *RedisService) CompleteSession(ctx context.Context, userID int64, gameID string) error {
	activeKey := fmt.Sprintf(KeyUserActiveGames, userID)
	if err := s.client.ZRem(ctx, activeKey, gameID).Err(); err != nil {
		return fmt.Errorf("failed to remove from active games: %v", err)
	}

	historyKey := fmt.Sprintf(KeyUserGameHistory, userID)
	if err := s.client.ZAdd(ctx, historyKey, redis.Z{
		Score:  float64(time.Now().Unix()),
		Member: gameID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add to game history: %v", err)
	}

	// Keep only the last 100 games per user.
	s.client.ZRemRangeByRank(ctx, historyKey, 0, -101)

	return nil
}

func (s *RedisService) ActiveSessionID(ctx context.Context, userID int64) (string, error) {
	key := fmt.Sprintf(KeyUserActiveGames, userID)

	ids, err := s.client.ZRevRange(ctx, key, 0, 0).Result()
	if err != nil {
		return "", fmt.Errorf("failed to get active games: %v", err)
	}
	if len(ids) == 0 {
		return "", nil
	}

	return ids[0], nil
}

func (s *RedisService) SessionHistory(ctx context.Context, userID int64, limit int64) ([]*models.GameSession, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	historyKey := fmt.Sprintf(KeyUserGameHistory, userID)

	gameIDs, err := s.client.ZRevRange(ctx, historyKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game history: %v", err)
	}

	var sessions []*models.GameSession
	for _, gameID := range gameIDs {
		session, err := s.GetSession(ctx, gameID)
		if err != nil {
			continue
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// --- transactions ---

func (s *RedisService) RecordTransaction(ctx context.Context, tx *models.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %v", err)
	}

	txKey := fmt.Sprintf(KeyTransaction, tx.ID)
	if err := s.client.Set(ctx, txKey, data, TTLTransaction).Err(); err != nil {
		return fmt.Errorf("failed to save transaction: %v", err)
	}

	userTxKey := fmt.Sprintf(KeyUserTransactions, tx.UserID)
	if err := s.client.ZAdd(ctx, userTxKey, redis.Z{
		Score:  float64(tx.CreatedAt.Unix()),
		Member: tx.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to index transaction: %v", err)
	}

	// Keep only the last 100 transactions per user.
	s.client.ZRemRangeByRank(ctx, userTxKey, 0, -101)

	return nil
}

func (s *RedisService) GetUserTransactions(ctx context.Context, userID int64, limit int64) ([]*models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	userTxKey := fmt.Sprintf(KeyUserTransactions, userID)

	txIDs, err := s.client.ZRevRange(ctx, userTxKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction ids: %v", err)
	}

	var transactions []*models.Transaction
	for _, txID := range txIDs {
		data, err := s.client.Get(ctx, fmt.Sprintf(KeyTransaction, txID)).Result()
		if err != nil {
			continue
		}

		var tx models.Transaction
		if err := json.Unmarshal([]byte(data), &tx); err != nil {
			continue
		}

		transactions = append(transactions, &tx)
	}

	return transactions, nil
}

// --- rate limiting ---

func (s *RedisService) CheckRateLimit(ctx context.Context, userID int64, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, userID, action)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %v", err)
	}

	if count == 1 {
		s.client.Expire(ctx, key, window)
	}

	return count <= int64(limit), nil
}

// --- test helpers ---

func (s *RedisService) DeleteWallet(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, fmt.Sprintf(KeyWallet, userID)).Err()
}

func (s *RedisService) DeleteGameSession(ctx context.Context, gameID string) error {
	return s.client.Del(ctx, fmt.Sprintf(KeyGameSession, gameID)).Err()
}

func (s *RedisService) ClearRateLimit(ctx context.Context, userID int64, action string) error {
	return s.client.Del(ctx, fmt.Sprintf(KeyRateLimit, userID, action)).Err()
}
