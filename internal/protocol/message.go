package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing       MessageType = "ping"        // 心跳 ping
	MsgRejoinGame MessageType = "rejoin_game" // 断线重连

	// 对局操作
	MsgCreateGame     MessageType = "create_game"      // 创建对局
	MsgJoinGame       MessageType = "join_game"        // 加入对局
	MsgLeaveGame      MessageType = "leave_game"       // 离开对局
	MsgAddBot         MessageType = "add_bot"          // 添加机器人
	MsgForceStartGame MessageType = "force_start_game" // 房主强制开局

	// 回合动作
	MsgRequestCard MessageType = "request_card" // 向对方队伍要牌
	MsgDeclareSet  MessageType = "declare_set"  // 声明半套牌

	// 信息查询
	MsgGetGameState MessageType = "get_game_state" // 拉取完整快照
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected     MessageType = "connected"      // 连接成功
	MsgPong          MessageType = "pong"           // 心跳 pong
	MsgRejoined      MessageType = "rejoined"       // 重连成功
	MsgPlayerOffline MessageType = "player_offline" // 玩家掉线通知
	MsgPlayerOnline  MessageType = "player_online"  // 玩家上线通知

	// 对局流程
	MsgGameCreated  MessageType = "game_created"  // 对局创建成功
	MsgJoinSuccess  MessageType = "join_success"  // 加入对局成功
	MsgPlayerJoined MessageType = "player_joined" // 其他玩家加入
	MsgBotAdded     MessageType = "bot_added"     // 机器人坐下
	MsgGameStarted  MessageType = "game_started"  // 对局开始

	// 对局状态
	MsgGameStateUpdate MessageType = "game_state_update" // 全量快照
	MsgTurnChange      MessageType = "turn_change"       // 回合变更

	// 动作结果
	MsgCardRequestResult    MessageType = "card_request_result"    // 要牌结果
	MsgSetDeclarationResult MessageType = "set_declaration_result" // 声明结果
	MsgGameOver             MessageType = "game_over"              // 对局结束

	// 错误
	MsgError MessageType = "error" // 错误消息
)
