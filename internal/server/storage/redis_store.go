package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	gameKeyPrefix = "literature:game:"
	seatKeyPrefix = "literature:seat:"

	// 数据过期时间
	gameExpiration = 2 * time.Hour
	seatExpiration = 2 * time.Hour
)

// GameRecord 对局索引数据（用于 Redis 序列化）
type GameRecord struct {
	ID          string `json:"id"`
	State       int    `json:"state"`
	Seats       int    `json:"seats"`
	PlayerCount int    `json:"player_count"`
	Team1Sets   int    `json:"team1_sets"`
	Team2Sets   int    `json:"team2_sets"`
	CreatedAt   int64  `json:"created_at"`
}

// SeatRecord 座位会话数据（重连令牌的持久化副本）
type SeatRecord struct {
	GameID     string `json:"game_id"`
	Seat       int    `json:"seat"`
	PlayerName string `json:"player_name"`
	Token      string `json:"token"`
	Online     bool   `json:"is_online"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// --- 对局索引 ---

// SaveGame 保存对局索引
func (rs *RedisStore) SaveGame(ctx context.Context, rec *GameRecord) error {
	if rec == nil {
		return nil
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal game record: %w", err)
	}

	key := gameKeyPrefix + rec.ID
	return rs.client.Set(ctx, key, data, gameExpiration).Err()
}

// LoadGame 加载对局索引；不存在时返回 (nil, nil)
func (rs *RedisStore) LoadGame(ctx context.Context, id string) (*GameRecord, error) {
	key := gameKeyPrefix + id
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var rec GameRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game record: %w", err)
	}
	return &rec, nil
}

// DeleteGame 删除对局索引
func (rs *RedisStore) DeleteGame(ctx context.Context, id string) error {
	return rs.client.Del(ctx, gameKeyPrefix+id).Err()
}

// --- 座位会话 ---

func seatKey(gameID string, seat int) string {
	return fmt.Sprintf("%s%s:%d", seatKeyPrefix, gameID, seat)
}

// SaveSeat 保存座位会话
func (rs *RedisStore) SaveSeat(ctx context.Context, rec *SeatRecord) error {
	if rec == nil {
		return nil
	}

	data := map[string]any{
		"game_id":     rec.GameID,
		"seat":        rec.Seat,
		"player_name": rec.PlayerName,
		"token":       rec.Token,
		"is_online":   rec.Online,
	}

	key := seatKey(rec.GameID, rec.Seat)
	if err := rs.client.HSet(ctx, key, data).Err(); err != nil {
		return err
	}
	return rs.client.Expire(ctx, key, seatExpiration).Err()
}

// LoadSeat 加载座位会话；不存在时返回 (nil, nil)
func (rs *RedisStore) LoadSeat(ctx context.Context, gameID string, seat int) (*SeatRecord, error) {
	data, err := rs.client.HGetAll(ctx, seatKey(gameID, seat)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	rec := &SeatRecord{
		GameID:     data["game_id"],
		Seat:       seat,
		PlayerName: data["player_name"],
		Token:      data["token"],
		Online:     data["is_online"] == "1",
	}
	return rec, nil
}

// DeleteSeat 删除座位会话
func (rs *RedisStore) DeleteSeat(ctx context.Context, gameID string, seat int) error {
	return rs.client.Del(ctx, seatKey(gameID, seat)).Err()
}

// DeleteGameSeats 删除对局的全部座位会话
func (rs *RedisStore) DeleteGameSeats(ctx context.Context, gameID string, seats int) error {
	keys := make([]string, 0, seats)
	for i := 0; i < seats; i++ {
		keys = append(keys, seatKey(gameID, i))
	}
	return rs.client.Del(ctx, keys...).Err()
}
