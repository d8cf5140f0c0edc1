package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateGamePayload 创建对局请求
type CreateGamePayload struct {
	Name        string `json:"name"`         // 创建者昵称
	PlayerCount int    `json:"player_count"` // 座位数（6 或 8）
}

// JoinGamePayload 加入对局请求
type JoinGamePayload struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

// RejoinGamePayload 断线重连请求
type RejoinGamePayload struct {
	GameID   string `json:"game_id"`
	PlayerID int    `json:"player_id"` // 座位 ID
	Token    string `json:"token"`     // 重连令牌
}

// AddBotPayload 添加机器人请求
type AddBotPayload struct {
	GameID string `json:"game_id"`
}

// ForceStartGamePayload 强制开局请求
type ForceStartGamePayload struct {
	GameID string `json:"game_id"`
}

// RequestCardPayload 要牌请求
type RequestCardPayload struct {
	GameID   string `json:"game_id"`
	PlayerID int    `json:"player_id"`
	TargetID int    `json:"target_id"`
	CardRank string `json:"card_rank"`
	CardSuit string `json:"card_suit"`
}

// DeclareSetPayload 声明半套牌请求
// CardAssignments 的键为 "rank_suit"（如 "Jack_Hearts"），值为座位 ID
type DeclareSetPayload struct {
	GameID          string         `json:"game_id"`
	PlayerID        int            `json:"player_id"`
	SetName         string         `json:"set_name"`
	CardAssignments map[string]int `json:"card_assignments"`
}

// GetGameStatePayload 拉取快照请求
type GetGameStatePayload struct {
	GameID string `json:"game_id"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	ConnID string `json:"conn_id"` // 本次连接的 ID
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// GameCreatedPayload 对局创建成功响应
type GameCreatedPayload struct {
	GameID string     `json:"game_id"`
	Player PlayerInfo `json:"player"`
	Token  string     `json:"token"` // 重连令牌，客户端应持久化
}

// JoinSuccessPayload 加入对局成功响应
type JoinSuccessPayload struct {
	GameID  string       `json:"game_id"`
	Player  PlayerInfo   `json:"player"`
	Token   string       `json:"token"`
	Players []PlayerInfo `json:"players"` // 当前所有已入座玩家
}

// PlayerJoinedPayload 其他玩家加入通知
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// BotAddedPayload 机器人坐下通知
type BotAddedPayload struct {
	Player PlayerInfo `json:"player"`
}

// GameStartedPayload 对局开始通知
type GameStartedPayload struct {
	GameID      string       `json:"game_id"`
	Players     []PlayerInfo `json:"players"`      // 按座位顺序
	FirstPlayer int          `json:"first_player"` // 首个行动座位
}

// RejoinedPayload 重连成功响应，附带全量快照
type RejoinedPayload struct {
	GameID    string                  `json:"game_id"`
	PlayerID  int                     `json:"player_id"`
	GameState *GameStateUpdatePayload `json:"game_state,omitempty"`
}

// GameStateUpdatePayload 全量快照
// 对手手牌内容一律脱敏，只暴露 card_count
type GameStateUpdatePayload struct {
	MyID          int            `json:"my_id"`
	CurrentTurn   int            `json:"current_turn"`
	MyHand        []CardInfo     `json:"my_hand"`
	Opponents     []PlayerInfo   `json:"opponents"` // 除自己外的所有玩家（含队友）
	AvailableSets []string       `json:"available_sets"`
	Team1Sets     int            `json:"team1_sets"`
	Team2Sets     int            `json:"team2_sets"`
	GameLog       []GameLogEntry `json:"game_log"` // 截断后的日志尾部
	GameOver      bool           `json:"game_over"`
}

// TurnChangePayload 回合变更通知
type TurnChangePayload struct {
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// CardRequestResultPayload 要牌结果通知
type CardRequestResultPayload struct {
	RequestingPlayer int      `json:"requesting_player"`
	TargetPlayer     int      `json:"target_player"`
	Card             CardInfo `json:"card"`
	Success          bool     `json:"success"`
	NextTurn         int      `json:"next_turn"`
}

// SetDeclarationResultPayload 声明结果通知
type SetDeclarationResultPayload struct {
	DeclaringPlayer int    `json:"declaring_player"`
	SetName         string `json:"set_name"`
	Success         bool   `json:"success"`
	TeamThatWon     int    `json:"team_that_won"` // 1 或 2，与 game_over 的 winning_team 同一编号
	NextTurn        int    `json:"next_turn"`
}

// GameOverPayload 对局结束通知
// WinningTeam: 1 或 2，平局（4:4）为 0
type GameOverPayload struct {
	Team1Sets   int `json:"team1_sets"`
	Team2Sets   int `json:"team2_sets"`
	WinningTeam int `json:"winning_team"`
}

// PlayerOfflinePayload 玩家掉线通知
type PlayerOfflinePayload struct {
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
	Timeout    int    `json:"timeout"` // 多久后座位交给机器人（秒），0 表示不接管
}

// PlayerOnlinePayload 玩家上线通知
type PlayerOnlinePayload struct {
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- 通用数据结构 ---

// PlayerInfo 玩家信息（不含手牌内容）
type PlayerInfo struct {
	ID         int    `json:"id"`   // 座位 ID，入座后稳定不变
	Name       string `json:"name"`
	Team       int    `json:"team"` // 0 或 1
	IsBot      bool   `json:"is_bot"`
	CardsCount int    `json:"card_count"`
	Online     bool   `json:"online"`
}

// CardInfo 牌信息
type CardInfo struct {
	Rank string `json:"rank"` // "2"-"7", "9", "10", "Jack", "Queen", "King", "Ace"
	Suit string `json:"suit"` // "Hearts", "Diamonds", "Clubs", "Spades"
}

// 日志动作类型
const (
	LogGameStart      = "GAME_START"
	LogCardRequest    = "CARD_REQUEST"
	LogSetDeclaration = "SET_DECLARATION"
	LogGameOver       = "GAME_OVER"
)

// GameLogEntry 对局日志条目，追加后不再修改
type GameLogEntry struct {
	Action string `json:"action"`
	Turn   int    `json:"turn"` // 记录时的回合座位

	// GAME_START
	PlayerCount int `json:"player_count,omitempty"`
	FirstPlayer int `json:"first_player,omitempty"`

	// CARD_REQUEST
	Requester int       `json:"requester,omitempty"`
	Target    int       `json:"target,omitempty"`
	Card      *CardInfo `json:"card,omitempty"`

	// SET_DECLARATION
	Player  int    `json:"player,omitempty"`
	SetName string `json:"set,omitempty"`

	// CARD_REQUEST / SET_DECLARATION 共用
	Success bool `json:"success"`

	// GAME_OVER / SET_DECLARATION
	Team1Sets   int `json:"team1_sets,omitempty"`
	Team2Sets   int `json:"team2_sets,omitempty"`
	WinningTeam int `json:"winning_team,omitempty"`
}
