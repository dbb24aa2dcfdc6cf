// Package console drives a game of SET from line-oriented input, for terminals
// and scripts. All game rules live in the game package: a Session only
// translates commands into game.Board operations and reports the results.
package console

import (
	"errors"
	"fmt"

	"github.com/janpfeifer/GoSet/internal/config"
	"github.com/janpfeifer/GoSet/internal/game"
	"k8s.io/klog/v2"
)

// Options configures a Session.
type Options struct {
	Seed       uint64 // Seed of the first game; 0 picks a random one
	Mode       Mode
	Format     Format
	GrowPolicy game.GrowPolicy
}

// Session is one player's sequence of games. It owns its game.Board, and
// like the board it must be used from a single goroutine.
type Session struct {
	opts  Options
	seed  uint64 // Seed of the current game
	board *game.Board
}

var errTutorial = errors.New("not available in tutorial mode, use \"hint\" to see the SETs or start a new game")

// NewSession creates a Session and deals its first game.
func NewSession(opts Options) (*Session, error) {
	s := &Session{opts: opts}
	if err := s.newGame(opts.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Board returns the board of the current game.
func (s *Session) Board() *game.Board { return s.board }

// Mode returns the current mode of play.
func (s *Session) Mode() Mode { return s.opts.Mode }

// Seed returns the seed of the current game.
func (s *Session) Seed() uint64 { return s.seed }

func (s *Session) newGame(seed uint64) error {
	if seed == 0 {
		var err error
		seed, err = config.NewSeed()
		if err != nil {
			return err
		}
	}
	s.seed = seed
	s.board = game.NewBoard(game.NewShuffledDeck(seed), game.WithGrowPolicy(s.opts.GrowPolicy))
	klog.Infof("Session: new %s game %s (seed=%d, grow=%s)", s.opts.Mode, s.board.ID(), seed, s.opts.GrowPolicy)
	return nil
}

// Handle executes one command and returns the replies to send back.
// Rejected commands are answered with a MsgTypeError reply; Handle itself
// never fails.
func (s *Session) Handle(msg game.Message) []game.Message {
	p, err := msg.Parse()
	if err != nil {
		return s.errorReply(fmt.Errorf("invalid %q message: %w", msg.Type, err))
	}

	switch msg.Type {
	case game.MsgTypeNew:
		newMsg := p.(*game.NewGameMessage)
		if newMsg.Mode != "" {
			mode, err := ParseMode(newMsg.Mode)
			if err != nil {
				return s.errorReply(err)
			}
			s.opts.Mode = mode
		}
		if err := s.newGame(newMsg.Seed); err != nil {
			return s.errorReply(err)
		}
		return s.snapshotReply()

	case game.MsgTypeState:
		return s.snapshotReply()

	case game.MsgTypeSelect:
		if s.opts.Mode == Tutorial {
			return s.errorReply(errTutorial)
		}
		card := p.(*game.SelectMessage).Card
		selected, err := s.board.ToggleSelect(card)
		if err != nil {
			return s.errorReply(err)
		}
		return s.replies(game.MsgTypeSelection, game.SelectionMessage{
			Card:     card,
			Selected: selected,
			Count:    len(s.board.Selected()),
		})

	case game.MsgTypeValidate:
		if s.opts.Mode == Tutorial {
			return s.errorReply(errTutorial)
		}
		outcome, err := s.board.ValidateSelection()
		if err != nil {
			return s.errorReply(err)
		}
		return append(s.replies(game.MsgTypeOutcome, game.NewOutcomeMessage(outcome)), s.gameOverReply()...)

	case game.MsgTypeAddThree:
		if s.opts.Mode == Tutorial {
			return s.errorReply(errTutorial)
		}
		added, err := s.board.AddThree()
		if err != nil {
			return s.errorReply(err)
		}
		return append(s.replies(game.MsgTypeAdded, game.AddedMessage{Cards: added}), s.gameOverReply()...)

	case game.MsgTypeHint:
		set, err := s.board.NextAvailableSet()
		if err != nil {
			return s.errorReply(err)
		}
		return s.replies(game.MsgTypeSet, game.SetMessage{
			Cards: set.Cards(),
			Index: s.board.Cursor(),
			Total: len(s.board.AvailableSets()),
		})

	case game.MsgTypeShowSet:
		if s.opts.Mode == Tutorial {
			return s.errorReply(errTutorial)
		}
		set, ok := s.board.FirstAvailableSet()
		if !ok {
			return s.errorReply(errors.New("no SET on the board"))
		}
		return s.replies(game.MsgTypeSet, game.SetMessage{
			Cards: set.Cards(),
			Index: 1,
			Total: len(s.board.AvailableSets()),
		})

	case game.MsgTypeQuit:
		return nil

	default:
		return s.errorReply(fmt.Errorf("unexpected message type %q", msg.Type))
	}
}

func (s *Session) snapshotReply() []game.Message {
	return s.replies(game.MsgTypeSnapshot, game.SnapshotMessage{
		Mode:     s.opts.Mode.String(),
		Seed:     s.seed,
		Snapshot: s.board.Snapshot(),
	})
}

func (s *Session) gameOverReply() []game.Message {
	if !s.board.IsGameOver() {
		return nil
	}
	return s.replies(game.MsgTypeGameOver, game.GameOverMessage{SetsFound: len(s.board.Removed())})
}

func (s *Session) errorReply(err error) []game.Message {
	klog.V(1).Infof("Session: command rejected: %v", err)
	return s.replies(game.MsgTypeError, game.ErrorMessage{Message: err.Error()})
}

func (s *Session) replies(msgType game.MessageType, payload any) []game.Message {
	msg, err := game.NewMessage(msgType, payload)
	if err != nil {
		klog.Errorf("Session: failed to create %q reply: %v", msgType, err)
		msg = game.Message{Type: game.MsgTypeError}
	}
	return []game.Message{msg}
}
