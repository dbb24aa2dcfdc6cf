package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/janpfeifer/GoSet/internal/game"
	"k8s.io/klog/v2"
)

// render prints the replies of a command in the Text format.
func (s *Session) render(w io.Writer, msgs []game.Message) {
	for _, msg := range msgs {
		p, err := msg.Parse()
		if err != nil {
			klog.Errorf("render: failed to parse %q reply: %v", msg.Type, err)
			continue
		}
		switch payload := p.(type) {
		case *game.SnapshotMessage:
			fmt.Fprintf(w, "Game in %s mode, seed %d.\n", payload.Mode, payload.Seed)
			renderBoard(w, payload.Snapshot)
		case *game.SelectionMessage:
			verb := "Selected"
			if !payload.Selected {
				verb = "Deselected"
			}
			fmt.Fprintf(w, "%s %s (%d selected).\n", verb, payload.Card, payload.Count)
		case *game.OutcomeMessage:
			if payload.Valid {
				fmt.Fprintf(w, "SET! %s\n", joinCards(payload.Set))
			} else {
				fmt.Fprintf(w, "Not a SET: %s.\n", payload.Reason)
			}
		case *game.AddedMessage:
			if len(payload.Cards) == 0 {
				fmt.Fprintln(w, "The deck is empty.")
			} else {
				fmt.Fprintf(w, "Added %s\n", joinCards(payload.Cards))
			}
		case *game.SetMessage:
			fmt.Fprintf(w, "SET %d of %d: %s\n", payload.Index, payload.Total, joinCards(payload.Cards))
		case *game.GameOverMessage:
			fmt.Fprintf(w, "GAME OVER: %d SETs found. Type \"new\" to play again.\n", payload.SetsFound)
		case *game.ErrorMessage:
			fmt.Fprintf(w, "Error: %s.\n", payload.Message)
		}
	}
}

// renderBoard prints the cards in play with their positions, marking the
// selected ones with a "*".
func renderBoard(w io.Writer, snap game.Snapshot) {
	fmt.Fprintf(w, "Board: %d cards, %d in deck, %d SETs found.\n", len(snap.Cards), snap.DeckRemaining, len(snap.Removed))
	selected := make(map[game.Card]bool, len(snap.Selected))
	for _, c := range snap.Selected {
		selected[c] = true
	}
	for i, c := range snap.Cards {
		mark := " "
		if selected[c] {
			mark = "*"
		}
		fmt.Fprintf(w, "%3d%s %s\n", i+1, mark, c)
	}
	if snap.GameOver {
		fmt.Fprintln(w, "GAME OVER.")
	}
}

func joinCards(cards []game.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " | ")
}
