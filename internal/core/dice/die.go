// Package dice provides the dice that drive a board game.
//
// The default die is a Cycle: it walks its faces in order and wraps around,
// so a game driven by it is fully reproducible. A Seeded die draws faces from
// a seeded pseudo-random source instead; given the same seed it always
// produces the same sequence.
package dice

import (
	"fmt"
	"math/rand"
	"strings"

	apperrors "github.com/louisbranch/ladders/internal/platform/errors"
)

// StandardSides is the number of faces on the tutorial die.
const StandardSides = 6

// ErrInvalidSides indicates a die was configured with no faces.
var ErrInvalidSides = apperrors.New(apperrors.CodeDieInvalidSides, "die must have at least one side")

// ErrUnknownKind indicates a die kind name could not be parsed.
var ErrUnknownKind = apperrors.New(apperrors.CodeDieUnknownKind, "unknown die kind")

// Roller produces die faces, one per call.
type Roller interface {
	Roll() int
}

// Kind names a die implementation for configuration and persistence.
type Kind string

const (
	KindCycle  Kind = "cycle"
	KindSeeded Kind = "seeded"
)

// ParseKind parses a die kind name. Empty input selects KindCycle.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case "", KindCycle:
		return KindCycle, nil
	case KindSeeded:
		return KindSeeded, nil
	default:
		return "", apperrors.WithMetadata(
			apperrors.CodeDieUnknownKind,
			fmt.Sprintf("unknown die kind %q", value),
			map[string]string{"Kind": value},
		)
	}
}

// Cycle is a deterministic die that yields 1..Sides and then starts over.
// It is not safe for concurrent use.
type Cycle struct {
	sides int
	face  int
}

// NewCycle returns a cycling die with the given number of sides.
func NewCycle(sides int) (*Cycle, error) {
	if sides <= 0 {
		return nil, ErrInvalidSides
	}
	return &Cycle{sides: sides}, nil
}

// Standard returns a fresh six-sided cycling die.
func Standard() *Cycle {
	return &Cycle{sides: StandardSides}
}

// Roll advances the die and returns the new face.
func (c *Cycle) Roll() int {
	c.face++
	if c.face > c.sides {
		c.face = 1
	}
	return c.face
}

// Face returns the last rolled face, or 0 before the first roll.
func (c *Cycle) Face() int {
	return c.face
}

// Sides returns the number of faces on the die.
func (c *Cycle) Sides() int {
	return c.sides
}

// Seeded is a pseudo-random die. It is not safe for concurrent use.
type Seeded struct {
	rng   *rand.Rand
	sides int
	seed  int64
}

// NewSeeded returns a pseudo-random die seeded with seed.
func NewSeeded(sides int, seed int64) (*Seeded, error) {
	if sides <= 0 {
		return nil, ErrInvalidSides
	}
	return &Seeded{
		rng:   rand.New(rand.NewSource(seed)),
		sides: sides,
		seed:  seed,
	}, nil
}

// Roll returns a face in [1, Sides].
func (s *Seeded) Roll() int {
	return s.rng.Intn(s.sides) + 1
}

// Seed returns the seed the die was created with.
func (s *Seeded) Seed() int64 {
	return s.seed
}

// NewRoller builds a die from its configuration. The seed is ignored by
// KindCycle.
func NewRoller(kind Kind, sides int, seed int64) (Roller, error) {
	switch kind {
	case "", KindCycle:
		die, err := NewCycle(sides)
		if err != nil {
			return nil, err
		}
		return die, nil
	case KindSeeded:
		die, err := NewSeeded(sides, seed)
		if err != nil {
			return nil, err
		}
		return die, nil
	default:
		return nil, apperrors.WithMetadata(
			apperrors.CodeDieUnknownKind,
			fmt.Sprintf("unknown die kind %q", kind),
			map[string]string{"Kind": string(kind)},
		)
	}
}
