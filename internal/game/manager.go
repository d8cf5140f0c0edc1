package game

import (
	"crypto/rand"
	"log"
	"math/big"
	mrand "math/rand/v2"
	"sync"
	"time"

	"github.com/anisrini/literature/internal/apperrors"
	"github.com/anisrini/literature/internal/config"
	"github.com/anisrini/literature/internal/game/session"
)

const (
	gameIDLength = 6            // 对局号长度
	gameIDChars  = "0123456789" // 对局号字符集
)

// Manager 对局管理器：跨对局完全独立，各自并行
type Manager struct {
	cfg          *config.GameConfig
	lobbyTimeout time.Duration
	games        map[string]*session.GameSession
	mu           sync.RWMutex
}

// NewManager 创建对局管理器
func NewManager(cfg *config.GameConfig) *Manager {
	m := &Manager{
		cfg:          cfg,
		lobbyTimeout: cfg.LobbyTimeoutDuration(),
		games:        make(map[string]*session.GameSession),
	}

	// 启动对局清理协程
	go m.cleanupLoop()

	return m
}

// CreateGame 创建新对局
func (m *Manager) CreateGame(seats int) *session.GameSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seats != 6 && seats != 8 {
		seats = m.cfg.DefaultPlayerCount
	}

	id := m.generateGameID()
	gs := session.NewGameSession(id, seats, m.cfg, mrand.Uint64())
	m.games[id] = gs

	log.Printf("🏠 对局 %s 已创建（%d 座）", id, seats)
	return gs
}

// GetGame 按对局号查找
func (m *Manager) GetGame(id string) (*session.GameSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	gs, ok := m.games[id]
	if !ok {
		return nil, apperrors.ErrGameNotFound
	}
	return gs, nil
}

// RemoveGame 移除并终止对局
func (m *Manager) RemoveGame(id string) {
	m.mu.Lock()
	gs, ok := m.games[id]
	if ok {
		delete(m.games, id)
	}
	m.mu.Unlock()

	if ok {
		gs.Terminate()
		log.Printf("🗑️  对局 %s 已移除", id)
	}
}

// GetActiveGamesCount 进行中的对局数量（优雅关闭排水用）
func (m *Manager) GetActiveGamesCount() int {
	m.mu.RLock()
	games := make([]*session.GameSession, 0, len(m.games))
	for _, gs := range m.games {
		games = append(games, gs)
	}
	m.mu.RUnlock()

	count := 0
	for _, gs := range games {
		if gs.IsActive() {
			count++
		}
	}
	return count
}

// Shutdown 终止全部对局
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, gs := range m.games {
		gs.Terminate()
		delete(m.games, id)
	}
}

// generateGameID 生成未占用的对局号；调用方需持有写锁
func (m *Manager) generateGameID() string {
	for {
		id := make([]byte, gameIDLength)
		for i := range id {
			n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(gameIDChars))))
			id[i] = gameIDChars[n.Int64()]
		}
		if _, exists := m.games[string(id)]; !exists {
			return string(id)
		}
	}
}

// cleanupLoop 定期回收超时未开局和已结束的对局
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.RLock()
		candidates := make(map[string]*session.GameSession, len(m.games))
		for id, gs := range m.games {
			candidates[id] = gs
		}
		m.mu.RUnlock()

		now := time.Now()
		for id, gs := range candidates {
			switch gs.State() {
			case session.StateLobby:
				if now.Sub(gs.CreatedAt()) > m.lobbyTimeout {
					log.Printf("⏰ 对局 %s 等待开局超时，回收", id)
					m.RemoveGame(id)
				}
			case session.StateOver:
				// 保留一个清理周期，给客户端拉取终局快照的窗口
				if now.Sub(gs.CreatedAt()) > m.lobbyTimeout {
					m.RemoveGame(id)
				}
			}
		}
	}
}
