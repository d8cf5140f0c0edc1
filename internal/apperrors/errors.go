package apperrors

import (
	"github.com/anisrini/literature/internal/protocol"
)

// GameError 游戏错误（对局与会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrGameNotFound   = &GameError{Code: protocol.ErrCodeGameNotFound, Message: protocol.ErrorMessages[protocol.ErrCodeGameNotFound]}
	ErrGameFull       = &GameError{Code: protocol.ErrCodeGameFull, Message: protocol.ErrorMessages[protocol.ErrCodeGameFull]}
	ErrNotInGame      = &GameError{Code: protocol.ErrCodeNotInGame, Message: protocol.ErrorMessages[protocol.ErrCodeNotInGame]}
	ErrGameStarted    = &GameError{Code: protocol.ErrCodeGameStarted, Message: protocol.ErrorMessages[protocol.ErrCodeGameStarted]}
	ErrGameNotStart   = &GameError{Code: protocol.ErrCodeGameNotStart, Message: protocol.ErrorMessages[protocol.ErrCodeGameNotStart]}
	ErrPlayerNotFound = &GameError{Code: protocol.ErrCodePlayerNotFound, Message: protocol.ErrorMessages[protocol.ErrCodePlayerNotFound]}
	ErrNotEnough      = &GameError{Code: protocol.ErrCodeNotEnough, Message: protocol.ErrorMessages[protocol.ErrCodeNotEnough]}
	ErrInvalidToken   = &GameError{Code: protocol.ErrCodeInvalidToken, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidToken]}
	ErrGameOver       = &GameError{Code: protocol.ErrCodeGameOver, Message: protocol.ErrorMessages[protocol.ErrCodeGameOver]}

	ErrNotYourTurn           = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: protocol.ErrorMessages[protocol.ErrCodeNotYourTurn]}
	ErrInvalidTarget         = &GameError{Code: protocol.ErrCodeInvalidTarget, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidTarget]}
	ErrMustHoldRank          = &GameError{Code: protocol.ErrCodeMustHoldRank, Message: protocol.ErrorMessages[protocol.ErrCodeMustHoldRank]}
	ErrSetAlreadyClaimed     = &GameError{Code: protocol.ErrCodeSetAlreadyClaimed, Message: protocol.ErrorMessages[protocol.ErrCodeSetAlreadyClaimed]}
	ErrIncompleteAssignment  = &GameError{Code: protocol.ErrCodeIncompleteAssignment, Message: protocol.ErrorMessages[protocol.ErrCodeIncompleteAssignment]}
	ErrForeignPlayerAssigned = &GameError{Code: protocol.ErrCodeForeignPlayerAssigned, Message: protocol.ErrorMessages[protocol.ErrCodeForeignPlayerAssigned]}
	ErrActionInProgress      = &GameError{Code: protocol.ErrCodeActionInProgress, Message: protocol.ErrorMessages[protocol.ErrCodeActionInProgress]}
)
