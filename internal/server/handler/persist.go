package handler

import (
	"context"
	"log"
	"time"

	"github.com/anisrini/literature/internal/game/session"
	"github.com/anisrini/literature/internal/server/storage"
)

const persistTimeout = 3 * time.Second

// persistGame 异步保存对局索引，失败只记日志
// Redis 只是观测性索引，对局真身在内存里，写失败不影响游戏
func (h *Handler) persistGame(gs *session.GameSession) {
	sets := gs.Score()
	rec := &storage.GameRecord{
		ID:          gs.ID,
		State:       int(gs.State()),
		Seats:       gs.Seats,
		PlayerCount: gs.PlayerCount(),
		Team1Sets:   sets[0],
		Team2Sets:   sets[1],
		CreatedAt:   gs.CreatedAt().Unix(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := h.store.SaveGame(ctx, rec); err != nil {
			log.Printf("保存对局索引失败: %v", err)
		}
	}()
}

// persistSeat 异步保存座位记录（重连令牌的持久化副本）
func (h *Handler) persistSeat(gameID string, seat int, name, token string, online bool) {
	rec := &storage.SeatRecord{
		GameID:     gameID,
		Seat:       seat,
		PlayerName: name,
		Token:      token,
		Online:     online,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := h.store.SaveSeat(ctx, rec); err != nil {
			log.Printf("保存座位记录失败: %v", err)
		}
	}()
}

// markSeatOnline 异步更新座位在线标记
func (h *Handler) markSeatOnline(gameID string, seat int, online bool) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		rec, err := h.store.LoadSeat(ctx, gameID, seat)
		if err != nil || rec == nil {
			return
		}
		rec.Online = online
		if err := h.store.SaveSeat(ctx, rec); err != nil {
			log.Printf("更新座位记录失败: %v", err)
		}
	}()
}
