package console

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/janpfeifer/GoSet/internal/game"
	"k8s.io/klog/v2"
)

// Run reads commands from in, one per line, and writes the replies to out,
// until in is exhausted, a quit command is read or ctx is canceled.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	// Releases the reader goroutine when Run returns early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	w := bufio.NewWriter(out)
	defer w.Flush()
	s.greet(w)
	if err := w.Flush(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			klog.Infof("Session: canceled")
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("reading commands: %w", err)
					}
				default:
				}
				return nil
			}
			quit := s.runLine(w, line)
			if err := w.Flush(); err != nil {
				return err
			}
			if quit {
				klog.Infof("Session: quit")
				return nil
			}
		}
	}
}

func (s *Session) greet(w io.Writer) {
	if s.opts.Format == JSON {
		writeJSON(w, s.snapshotReply())
		return
	}
	fmt.Fprintf(w, "GoSet %s, %s mode, seed %d. Type \"help\" for the list of commands.\n", game.Version, s.opts.Mode, s.seed)
	renderBoard(w, s.board.Snapshot())
}

// runLine executes one line of input and reports whether the session should end.
func (s *Session) runLine(w io.Writer, line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if s.opts.Format == JSON {
		return s.runJSONLine(w, line)
	}
	return s.runTextLine(w, line)
}

func (s *Session) runJSONLine(w io.Writer, line string) bool {
	var msg game.Message
	if err := json.Unmarshal([]byte(line), &msg); err != nil {
		writeJSON(w, s.errorReply(fmt.Errorf("malformed message: %w", err)))
		return false
	}
	writeJSON(w, s.Handle(msg))
	return msg.Type == game.MsgTypeQuit
}

func writeJSON(w io.Writer, msgs []game.Message) {
	enc := json.NewEncoder(w)
	for _, msg := range msgs {
		if err := enc.Encode(msg); err != nil {
			klog.Errorf("Session: failed to write %q message: %v", msg.Type, err)
		}
	}
}

const helpText = `Commands:
  s <n>...     select or deselect the cards at positions n (3 selected cards are checked)
  v            check the selected cards
  add          deal 3 more cards, when the board has no SET
  show         show a SET of the board
  next         show the next SET of the board, one at a time
  board        show the board
  new [seed]   deal a new game
  mode <m>     start a new game in mode solitaire or tutorial
  help         show this message
  quit         end the session
`

func (s *Session) runTextLine(w io.Writer, line string) bool {
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "q", "quit", "exit":
		return true

	case "h", "help", "?":
		fmt.Fprint(w, helpText)

	case "b", "board":
		s.render(w, s.Handle(game.Message{Type: game.MsgTypeState}))

	case "new", "deal":
		var newMsg game.NewGameMessage
		if len(args) > 0 {
			seed, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				fmt.Fprintf(w, "Invalid seed %q.\n", args[0])
				return false
			}
			newMsg.Seed = seed
		}
		s.command(w, game.MsgTypeNew, newMsg)

	case "mode":
		if len(args) != 1 {
			fmt.Fprintln(w, "Usage: mode solitaire|tutorial")
			return false
		}
		s.command(w, game.MsgTypeNew, game.NewGameMessage{Mode: args[0]})

	case "s", "select":
		s.selectPositions(w, args)

	case "v", "validate":
		s.validate(w)

	case "a", "add":
		replies := s.Handle(game.Message{Type: game.MsgTypeAddThree})
		s.render(w, replies)
		if len(replies) > 0 && replies[0].Type == game.MsgTypeAdded {
			renderBoard(w, s.board.Snapshot())
		}

	case "show":
		s.command(w, game.MsgTypeShowSet, nil)

	case "n", "next", "hint":
		s.command(w, game.MsgTypeHint, nil)

	default:
		fmt.Fprintf(w, "Unknown command %q, type \"help\" for the list of commands.\n", cmd)
	}
	return false
}

// command handles a message built from a text command and renders the replies.
func (s *Session) command(w io.Writer, msgType game.MessageType, payload any) {
	msg, err := game.NewMessage(msgType, payload)
	if err != nil {
		klog.Errorf("Session: failed to create %q message: %v", msgType, err)
		return
	}
	s.render(w, s.Handle(msg))
}

// selectPositions toggles the cards at the given 1-based board positions.
// Once 3 cards are selected they are checked right away, and the remaining
// positions are ignored.
func (s *Session) selectPositions(w io.Writer, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(w, "Usage: s <position>...")
		return
	}
	cards := s.board.Cards()
	for _, arg := range args {
		pos, err := strconv.Atoi(arg)
		if err != nil || pos < 1 || pos > len(cards) {
			fmt.Fprintf(w, "No card at position %q, positions go from 1 to %d.\n", arg, len(cards))
			return
		}
		s.command(w, game.MsgTypeSelect, game.SelectMessage{Card: cards[pos-1]})
		if s.opts.Mode != Solitaire {
			return
		}
		if len(s.board.Selected()) == 3 {
			s.validate(w)
			return
		}
	}
}

func (s *Session) validate(w io.Writer) {
	replies := s.Handle(game.Message{Type: game.MsgTypeValidate})
	s.render(w, replies)
	if len(replies) > 0 && replies[0].Type == game.MsgTypeOutcome {
		renderBoard(w, s.board.Snapshot())
	}
}
