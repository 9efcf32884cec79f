// Package errors provides structured domain errors with localized messages.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Board errors
	CodeBoardInvalidFinalSquare Code = "BOARD_INVALID_FINAL_SQUARE"
	CodeBoardJumpOutOfRange     Code = "BOARD_JUMP_OUT_OF_RANGE"
	CodeBoardJumpOffBoard       Code = "BOARD_JUMP_OFF_BOARD"

	// Die errors
	CodeDieInvalidSides Code = "DIE_INVALID_SIDES"
	CodeDieUnknownKind  Code = "DIE_UNKNOWN_KIND"

	// Game errors
	CodeGameUnknownStrategy Code = "GAME_UNKNOWN_STRATEGY"
	CodeGameTurnLimit       Code = "GAME_TURN_LIMIT"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
)
