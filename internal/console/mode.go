package console

import "fmt"

// Mode of play of a Session.
type Mode int

const (
	// Solitaire lets the player select cards, check SETs and deal more cards.
	Solitaire Mode = iota

	// Tutorial only shows the SETs of a freshly dealt board, one at a time.
	Tutorial
)

func (m Mode) String() string {
	switch m {
	case Solitaire:
		return "solitaire"
	case Tutorial:
		return "tutorial"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the names returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "solitaire", "":
		return Solitaire, nil
	case "tutorial":
		return Tutorial, nil
	default:
		return 0, fmt.Errorf("unknown mode %q, want \"solitaire\" or \"tutorial\"", s)
	}
}

// Format of the lines read and written by Session.Run.
type Format int

const (
	// Text is a human friendly command language (see helpText).
	Text Format = iota

	// JSON reads and writes one game.Message per line.
	JSON
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses the names returned by Format.String.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return Text, nil
	case "json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("unknown format %q, want \"text\" or \"json\"", s)
	}
}
