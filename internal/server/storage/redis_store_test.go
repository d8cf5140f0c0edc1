package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_GameRoundTrip(t *testing.T) {
	t.Parallel()

	store, mr := newTestStore(t)
	ctx := context.Background()

	rec := &GameRecord{
		ID:          "123456",
		State:       1,
		Seats:       6,
		PlayerCount: 4,
		Team1Sets:   2,
		Team2Sets:   1,
		CreatedAt:   time.Now().Unix(),
	}
	require.NoError(t, store.SaveGame(ctx, rec))

	got, err := store.LoadGame(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// 对局索引带过期时间
	ttl := mr.TTL(gameKeyPrefix + "123456")
	assert.Equal(t, gameExpiration, ttl)

	require.NoError(t, store.DeleteGame(ctx, "123456"))
	got, err = store.LoadGame(ctx, "123456")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_LoadGame_Missing(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	got, err := store.LoadGame(context.Background(), "999999")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_SaveGame_NilRecord(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	assert.NoError(t, store.SaveGame(context.Background(), nil))
}

func TestRedisStore_SeatRoundTrip(t *testing.T) {
	t.Parallel()

	store, mr := newTestStore(t)
	ctx := context.Background()

	rec := &SeatRecord{
		GameID:     "123456",
		Seat:       3,
		PlayerName: "Asha",
		Token:      "tok-abc",
		Online:     true,
	}
	require.NoError(t, store.SaveSeat(ctx, rec))

	got, err := store.LoadSeat(ctx, "123456", 3)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	ttl := mr.TTL(seatKey("123456", 3))
	assert.Equal(t, seatExpiration, ttl)

	// 离线状态翻转后重新保存
	rec.Online = false
	require.NoError(t, store.SaveSeat(ctx, rec))
	got, err = store.LoadSeat(ctx, "123456", 3)
	require.NoError(t, err)
	assert.False(t, got.Online)
}

func TestRedisStore_LoadSeat_Missing(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	got, err := store.LoadSeat(context.Background(), "123456", 0)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_DeleteGameSeats(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	for seat := 0; seat < 6; seat++ {
		require.NoError(t, store.SaveSeat(ctx, &SeatRecord{
			GameID: "123456",
			Seat:   seat,
			Token:  "tok",
		}))
	}

	require.NoError(t, store.DeleteGameSeats(ctx, "123456", 6))

	for seat := 0; seat < 6; seat++ {
		got, err := store.LoadSeat(ctx, "123456", seat)
		require.NoError(t, err)
		assert.Nil(t, got, "座位 %d 应已删除", seat)
	}
}
