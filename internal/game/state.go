package game

import (
	"fmt"
	"strings"
)

// Snapshot is a read-only copy of a Board, as handed to presentation layers.
type Snapshot struct {
	ID            string `json:"id"`
	Cards         []Card `json:"cards"`
	Selected      []Card `json:"selected,omitempty"`
	AvailableSets []Set  `json:"available_sets"`
	Cursor        int    `json:"cursor"`         // Number of available SETs already revealed
	DeckRemaining int    `json:"deck_remaining"` // Cards left to deal
	Removed       []Set  `json:"removed,omitempty"`
	GameOver      bool   `json:"game_over"`
}

// Snapshot returns a copy of the current state of the board.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		ID:            b.id,
		Cards:         b.Cards(),
		Selected:      b.Selected(),
		AvailableSets: b.AvailableSets(),
		Cursor:        b.cursor,
		DeckRemaining: b.deck.Remaining(),
		Removed:       b.Removed(),
		GameOver:      b.gameOver,
	}
}

func (s Snapshot) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Board %s: deck=%d, sets=%d (shown %d), found=%d, gameOver=%t, cards: ",
		s.ID, s.DeckRemaining, len(s.AvailableSets), s.Cursor, len(s.Removed), s.GameOver)
	for i, c := range s.Cards {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
