package game

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// Board is the state of one game of SET: the cards in play, the player's
// current selection, and the SETs available on the table.
//
// The deck, the board and the removed SETs always partition the full
// universe of NumCards cards.
//
// A Board is not safe for concurrent use; callers must serialize access.
type Board struct {
	id       string
	deck     *Deck
	policy   GrowPolicy
	cards    []Card
	selected []Card
	removed  []Set

	// Derived from cards and deck, recomputed after every change of the board.
	sets     []Set
	cursor   int
	gameOver bool
}

// Option configures a Board created with NewBoard.
type Option func(*Board)

// WithGrowPolicy sets when AddThree may add cards. The default is GrowWhenNoSets.
func WithGrowPolicy(p GrowPolicy) Option {
	return func(b *Board) { b.policy = p }
}

// Outcome is the result of ValidateSelection.
type Outcome struct {
	// Valid is true if the selected cards formed a SET.
	Valid bool

	// Set holds the cards removed from the board, if Valid.
	Set Set

	// Reason explains why the selection was not a SET, if not Valid.
	Reason Reason

	// Drawn are the cards dealt to replenish the board after a SET was removed.
	Drawn []Card
}

// NewBoard starts a game dealing StartingBoardSize cards from deck (or as many
// as it holds). The Board takes ownership of deck.
func NewBoard(deck *Deck, opts ...Option) *Board {
	b := &Board{
		id:   uuid.NewString(),
		deck: deck,
	}
	for _, opt := range opts {
		opt(b)
	}
	for range StartingBoardSize {
		if _, ok := b.draw(); !ok {
			break
		}
	}
	b.recompute()
	klog.V(1).Infof("Board %s: dealt %d cards, %d SETs available, %d cards left in deck",
		b.id, len(b.cards), len(b.sets), b.deck.Remaining())
	return b
}

// draw moves one card from the deck to the board, without recomputing the
// available SETs.
func (b *Board) draw() (Card, bool) {
	card, err := b.deck.Deal()
	if err != nil {
		return Card{}, false
	}
	b.cards = append(b.cards, card)
	return card, true
}

// recompute refreshes the available SETs and the game over flag, and resets
// the hint cursor.
func (b *Board) recompute() {
	b.sets = FindAllSets(b.cards)
	b.cursor = 0
	b.gameOver = b.deck.IsEmpty() && len(b.sets) == 0
	klog.V(2).Infof("Board %s: %d cards, %d SETs, gameOver=%t", b.id, len(b.cards), len(b.sets), b.gameOver)
}

// AddOneFromDeck deals one card onto the board. It returns false, and does
// nothing, if the deck is empty. The selection is not changed.
func (b *Board) AddOneFromDeck() (Card, bool) {
	card, ok := b.draw()
	if !ok {
		return Card{}, false
	}
	b.recompute()
	return card, true
}

// AddThree deals up to DrawSize more cards onto the board and returns the
// cards actually dealt, fewer if the deck runs out.
//
// With GrowWhenNoSets it fails with ErrSetsAvailable if the board holds a SET;
// with GrowUpToStart it fails with ErrBoardFull if the board holds a SET and
// more than StartingBoardSize cards. The board never grows past MaxBoardSize,
// which no SET-free board reaches.
func (b *Board) AddThree() ([]Card, error) {
	switch b.policy {
	case GrowUpToStart:
		if len(b.cards) > StartingBoardSize && len(b.sets) > 0 {
			return nil, fmt.Errorf("%w: %d cards in play", ErrBoardFull, len(b.cards))
		}
	default:
		if len(b.sets) > 0 {
			return nil, fmt.Errorf("%w: %d SETs on the board", ErrSetsAvailable, len(b.sets))
		}
	}
	if len(b.cards)+DrawSize > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d cards in play", ErrBoardFull, len(b.cards))
	}

	added := make([]Card, 0, DrawSize)
	for range DrawSize {
		card, ok := b.draw()
		if !ok {
			break
		}
		added = append(added, card)
	}
	b.recompute()
	klog.V(1).Infof("Board %s: added %d cards, %d SETs available", b.id, len(added), len(b.sets))
	return added, nil
}

// ToggleSelect selects card if it is not selected, or deselects it otherwise.
// It returns whether the card is selected after the call, or ErrUnknownCard if
// card is not on the board.
//
// Any number of cards may be selected; ValidateSelection requires exactly 3.
func (b *Board) ToggleSelect(card Card) (bool, error) {
	if !slices.Contains(b.cards, card) {
		return false, fmt.Errorf("%w: %s", ErrUnknownCard, card)
	}
	if i := slices.Index(b.selected, card); i >= 0 {
		b.selected = slices.Delete(b.selected, i, i+1)
		return false, nil
	}
	b.selected = append(b.selected, card)
	return true, nil
}

// ClearSelection deselects all cards.
func (b *Board) ClearSelection() {
	b.selected = nil
}

// ValidateSelection checks whether the 3 selected cards form a SET and always
// clears the selection.
//
// If they do, they are removed from the board and the board is topped up to
// StartingBoardSize from the deck, one card at a time. If they don't, the
// board is left untouched and Outcome.Reason tells why. A wrong guess is not
// an error: the error is only set (ErrInvalidSelectionSize) when the number of
// selected cards is not 3, in which case nothing changes.
func (b *Board) ValidateSelection() (Outcome, error) {
	if len(b.selected) != 3 {
		return Outcome{}, fmt.Errorf("%w: %d selected", ErrInvalidSelectionSize, len(b.selected))
	}
	x, y, z := b.selected[0], b.selected[1], b.selected[2]
	b.selected = nil

	ok, reason := IsSet(x, y, z)
	if !ok {
		klog.V(1).Infof("Board %s: not a SET (%s): %s, %s, %s", b.id, reason, x, y, z)
		return Outcome{Reason: reason}, nil
	}

	set := NewSet(x, y, z)
	b.cards = slices.DeleteFunc(b.cards, set.Contains)
	b.removed = append(b.removed, set)

	var drawn []Card
	for len(b.cards) < StartingBoardSize {
		card, ok := b.draw()
		if !ok {
			break
		}
		drawn = append(drawn, card)
	}
	b.recompute()
	klog.V(1).Infof("Board %s: SET %s removed, drew %d cards, %d SETs available, %d left in deck",
		b.id, set, len(drawn), len(b.sets), b.deck.Remaining())
	if b.gameOver {
		klog.Infof("Board %s: game over, %d SETs found", b.id, len(b.removed))
	}
	return Outcome{Valid: true, Set: set, Drawn: drawn}, nil
}

// NextAvailableSet reveals the next available SET, advancing the hint cursor.
// It returns ErrCursorExhausted once all SETs of the current board were shown.
// The cursor starts over whenever the board changes.
func (b *Board) NextAvailableSet() (Set, error) {
	if b.cursor >= len(b.sets) {
		return Set{}, fmt.Errorf("%w: %d of %d shown", ErrCursorExhausted, b.cursor, len(b.sets))
	}
	set := b.sets[b.cursor]
	b.cursor++
	return set, nil
}

// FirstAvailableSet returns the first available SET, if any, without moving
// the hint cursor.
func (b *Board) FirstAvailableSet() (Set, bool) {
	if len(b.sets) == 0 {
		return Set{}, false
	}
	return b.sets[0], true
}

// IsGameOver returns true when the deck is empty and the board has no SET.
func (b *Board) IsGameOver() bool { return b.gameOver }

// ID identifies this game in logs.
func (b *Board) ID() string { return b.id }

// Policy returns the GrowPolicy used by AddThree.
func (b *Board) Policy() GrowPolicy { return b.policy }

// Cards returns a copy of the cards in play, in the order they were dealt.
func (b *Board) Cards() []Card { return slices.Clone(b.cards) }

// Selected returns a copy of the selected cards, in selection order.
func (b *Board) Selected() []Card { return slices.Clone(b.selected) }

// IsSelected reports whether card is currently selected.
func (b *Board) IsSelected(card Card) bool { return slices.Contains(b.selected, card) }

// AvailableSets returns a copy of the SETs on the board.
func (b *Board) AvailableSets() []Set { return slices.Clone(b.sets) }

// Cursor returns how many available SETs have been revealed by NextAvailableSet.
func (b *Board) Cursor() int { return b.cursor }

// DeckRemaining returns the number of cards left in the deck.
func (b *Board) DeckRemaining() int { return b.deck.Remaining() }

// Removed returns a copy of the SETs found so far, in the order they were found.
func (b *Board) Removed() []Set { return slices.Clone(b.removed) }
