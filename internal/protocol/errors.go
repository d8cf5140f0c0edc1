package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001
	ErrCodeRateLimit  = 1002 // 速率限制

	ErrCodeGameNotFound   = 2001
	ErrCodeGameFull       = 2002
	ErrCodeNotInGame      = 2003
	ErrCodeGameStarted    = 2004 // 对局已开始
	ErrCodePlayerNotFound = 2005
	ErrCodeNotEnough      = 2006 // 人数不足无法开局
	ErrCodeInvalidToken   = 2007 // 重连令牌无效

	ErrCodeGameNotStart          = 3001
	ErrCodeNotYourTurn           = 3002
	ErrCodeInvalidTarget         = 3003
	ErrCodeMustHoldRank          = 3004
	ErrCodeSetAlreadyClaimed     = 3005
	ErrCodeIncompleteAssignment  = 3006
	ErrCodeForeignPlayerAssigned = 3007
	ErrCodeActionInProgress      = 3008
	ErrCodeGameOver              = 3009

	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:    "unknown error",
	ErrCodeInvalidMsg: "invalid message format",
	ErrCodeRateLimit:  "too many requests",

	ErrCodeGameNotFound:   "game not found",
	ErrCodeGameFull:       "game is full",
	ErrCodeNotInGame:      "you are not in this game",
	ErrCodeGameStarted:    "game already started",
	ErrCodePlayerNotFound: "player not found",
	ErrCodeNotEnough:      "not enough players to start",
	ErrCodeInvalidToken:   "rejoin token invalid or expired",

	ErrCodeGameNotStart:          "game has not started",
	ErrCodeNotYourTurn:           "it's not your turn",
	ErrCodeInvalidTarget:         "you can only ask a connected player on the other team",
	ErrCodeMustHoldRank:          "you must hold another card of that rank, and not the card itself",
	ErrCodeSetAlreadyClaimed:     "that half-suit has already been claimed",
	ErrCodeIncompleteAssignment:  "declaration must assign all six cards of the set",
	ErrCodeForeignPlayerAssigned: "declaration may only assign cards to your own team",
	ErrCodeActionInProgress:      "another action is being resolved, try again",
	ErrCodeGameOver:              "game is over",

	ErrCodeServerMaintenance: "server under maintenance",
}
