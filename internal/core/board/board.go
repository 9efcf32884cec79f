// Package board models a shoots-and-ladders board.
//
// A board has FinalSquare+1 squares indexed 0..FinalSquare. Each square holds
// a signed offset that is applied when a token lands on it: positive offsets
// are ladders, negative offsets are shoots, and zero means a plain square.
// Boards are immutable once built.
package board

import (
	"fmt"
	"sort"
	"strconv"

	apperrors "github.com/louisbranch/ladders/internal/platform/errors"
)

// ClassicFinalSquare is the last square of the tutorial board.
const ClassicFinalSquare = 25

// MaxFinalSquare bounds the size of a board.
const MaxFinalSquare = 10000

// ErrInvalidFinalSquare indicates a final square outside [1, MaxFinalSquare].
var ErrInvalidFinalSquare = apperrors.New(apperrors.CodeBoardInvalidFinalSquare, "final square out of range")

// ErrJumpOutOfRange indicates an offset was configured outside (0, FinalSquare).
var ErrJumpOutOfRange = apperrors.New(apperrors.CodeBoardJumpOutOfRange, "jump square out of range")

// ErrJumpOffBoard indicates an offset would move a token off the board.
var ErrJumpOffBoard = apperrors.New(apperrors.CodeBoardJumpOffBoard, "jump leaves the board")

// classicOffsets are the shoots and ladders of the tutorial board.
var classicOffsets = map[int]int{
	3:  +8,
	6:  +11,
	9:  +9,
	10: +2,
	14: -10,
	19: -11,
	22: -2,
	24: -8,
}

// Board is an immutable sequence of square offsets.
type Board struct {
	squares []int
}

// Jump describes one configured offset.
type Jump struct {
	Square int
	Offset int
}

// To returns the square a token ends on after taking the jump.
func (j Jump) To() int {
	return j.Square + j.Offset
}

// IsLadder reports whether the jump moves a token forward.
func (j Jump) IsLadder() bool {
	return j.Offset > 0
}

// New builds a board with finalSquare as its target.
//
// Offsets are keyed by square. Every key must lie strictly between 0 and
// finalSquare, and every destination must stay within [0, finalSquare].
// Zero offsets are ignored. The offsets map is not retained.
func New(finalSquare int, offsets map[int]int) (*Board, error) {
	if finalSquare < 1 || finalSquare > MaxFinalSquare {
		return nil, apperrors.WithMetadata(
			apperrors.CodeBoardInvalidFinalSquare,
			fmt.Sprintf("final square %d outside [1, %d]", finalSquare, MaxFinalSquare),
			map[string]string{
				"FinalSquare":    strconv.Itoa(finalSquare),
				"MaxFinalSquare": strconv.Itoa(MaxFinalSquare),
			},
		)
	}

	squares := make([]int, finalSquare+1)
	for square, offset := range offsets {
		if offset == 0 {
			continue
		}
		metadata := map[string]string{
			"Square":      strconv.Itoa(square),
			"Offset":      strconv.Itoa(offset),
			"FinalSquare": strconv.Itoa(finalSquare),
		}
		if square <= 0 || square >= finalSquare {
			return nil, apperrors.WithMetadata(
				apperrors.CodeBoardJumpOutOfRange,
				fmt.Sprintf("jump square %d outside (0, %d)", square, finalSquare),
				metadata,
			)
		}
		if to := square + offset; to < 0 || to > finalSquare {
			return nil, apperrors.WithMetadata(
				apperrors.CodeBoardJumpOffBoard,
				fmt.Sprintf("jump %d%+d lands on %d outside [0, %d]", square, offset, to, finalSquare),
				metadata,
			)
		}
		squares[square] = offset
	}
	return &Board{squares: squares}, nil
}

// Classic returns the 25-square tutorial board.
func Classic() *Board {
	b, err := New(ClassicFinalSquare, classicOffsets)
	if err != nil {
		// Unreachable: classicOffsets is fixed and valid.
		panic(err)
	}
	return b
}

// FinalSquare returns the target square N.
func (b *Board) FinalSquare() int {
	return len(b.squares) - 1
}

// Len returns the number of squares, N+1.
func (b *Board) Len() int {
	return len(b.squares)
}

// OffsetAt returns the offset configured on square index.
//
// Indexes outside [0, FinalSquare] return 0, so a token that has already
// passed the final square can be looked up without a separate bounds check.
func (b *Board) OffsetAt(index int) int {
	if index < 0 || index >= len(b.squares) {
		return 0
	}
	return b.squares[index]
}

// Jumps returns the configured offsets ordered by square.
func (b *Board) Jumps() []Jump {
	var jumps []Jump
	for square, offset := range b.squares {
		if offset != 0 {
			jumps = append(jumps, Jump{Square: square, Offset: offset})
		}
	}
	sort.Slice(jumps, func(i, j int) bool { return jumps[i].Square < jumps[j].Square })
	return jumps
}

// Offsets returns a copy of the configured offsets keyed by square.
func (b *Board) Offsets() map[int]int {
	out := make(map[int]int)
	for _, jump := range b.Jumps() {
		out[jump.Square] = jump.Offset
	}
	return out
}
