package game

import "fmt"

// Version of the game engine, reported by the console driver.
var Version = "v0.1.0"

const (
	// StartingBoardSize is the number of cards dealt at the start of a game,
	// and the size the board is topped up to after a SET is removed.
	StartingBoardSize = 12

	// DrawSize is the number of cards added by Board.AddThree.
	DrawSize = 3

	// MaxBoardSize bounds board growth. Any 21 cards contain a SET, so a
	// board never needs to grow past it.
	MaxBoardSize = 21
)

// GrowPolicy decides when Board.AddThree may add cards.
type GrowPolicy int

const (
	// GrowWhenNoSets allows adding cards only when the board has no SET.
	// This is the standard rule of the game.
	GrowWhenNoSets GrowPolicy = iota

	// GrowUpToStart allows adding cards while the board holds at most
	// StartingBoardSize cards, whether or not it has a SET, and beyond that
	// only when it has no SET.
	GrowUpToStart
)

func (p GrowPolicy) String() string {
	switch p {
	case GrowWhenNoSets:
		return "no-sets"
	case GrowUpToStart:
		return "up-to-start"
	default:
		return "unknown"
	}
}

// ParseGrowPolicy parses the names returned by GrowPolicy.String.
func ParseGrowPolicy(s string) (GrowPolicy, error) {
	switch s {
	case "no-sets", "":
		return GrowWhenNoSets, nil
	case "up-to-start":
		return GrowUpToStart, nil
	default:
		return 0, fmt.Errorf("unknown grow policy %q, want \"no-sets\" or \"up-to-start\"", s)
	}
}
