package game

import (
	"errors"
	"slices"
	"testing"
)

// checkPartition verifies that deck, board and removed SETs hold each of the
// NumCards cards exactly once.
func checkPartition(t *testing.T, b *Board) {
	t.Helper()
	seen := make(map[Card]string)
	add := func(where string, cards ...Card) {
		for _, c := range cards {
			if prev, dup := seen[c]; dup {
				t.Fatalf("Card %s is both in %s and %s", c, prev, where)
			}
			seen[c] = where
		}
	}
	add("deck", b.deck.Cards()...)
	add("board", b.Cards()...)
	for _, s := range b.Removed() {
		add("removed", s.Cards()...)
	}
	if len(seen) != NumCards {
		t.Fatalf("Expected %d cards across deck, board and removed SETs, got %d", NumCards, len(seen))
	}
}

// fillerCards returns the 9 red squiggly cards, none of them in planeCards or capCards.
func fillerCards() []Card {
	var cards []Card
	for shading := range Shading(numValues) {
		for _, count := range Counts {
			cards = append(cards, Card{Color: Red, Shape: Squiggly, Shading: shading, Count: count})
		}
	}
	return cards
}

func selectAll(t *testing.T, b *Board, cards ...Card) {
	t.Helper()
	for _, c := range cards {
		selected, err := b.ToggleSelect(c)
		if err != nil {
			t.Fatalf("ToggleSelect(%s) failed: %v", c, err)
		}
		if !selected {
			t.Fatalf("ToggleSelect(%s) deselected the card", c)
		}
	}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard(NewShuffledDeck(1))
	if len(b.Cards()) != StartingBoardSize {
		t.Errorf("Expected %d cards on a new board, got %d", StartingBoardSize, len(b.Cards()))
	}
	if b.DeckRemaining() != NumCards-StartingBoardSize {
		t.Errorf("Expected %d cards left in deck, got %d", NumCards-StartingBoardSize, b.DeckRemaining())
	}
	if !slices.Equal(b.AvailableSets(), FindAllSets(b.Cards())) {
		t.Errorf("Expected available SETs to match the board")
	}
	if b.IsGameOver() {
		t.Errorf("New game should not be over")
	}
	if b.ID() == "" {
		t.Errorf("Expected board to have an ID")
	}
	checkPartition(t, b)

	same := NewBoard(NewShuffledDeck(1))
	if !slices.Equal(b.Cards(), same.Cards()) {
		t.Errorf("Expected boards dealt from the same seed to be equal")
	}

	small := NewBoard(NewDeckFrom(planeCards()[:5]))
	if len(small.Cards()) != 5 || small.DeckRemaining() != 0 {
		t.Errorf("Expected all 5 cards dealt, got %d on board and %d in deck", len(small.Cards()), small.DeckRemaining())
	}
}

func TestToggleSelect(t *testing.T) {
	b := NewBoard(NewShuffledDeck(2))
	cards := b.Cards()

	selected, err := b.ToggleSelect(cards[0])
	if err != nil || !selected {
		t.Fatalf("ToggleSelect(%s) = (%t, %v), want (true, nil)", cards[0], selected, err)
	}
	selectAll(t, b, cards[1], cards[2], cards[3])
	if got := b.Selected(); !slices.Equal(got, cards[:4]) {
		t.Errorf("Expected selection %v, got %v", cards[:4], got)
	}

	selected, err = b.ToggleSelect(cards[1])
	if err != nil || selected {
		t.Fatalf("ToggleSelect(%s) = (%t, %v), want (false, nil)", cards[1], selected, err)
	}
	if b.IsSelected(cards[1]) {
		t.Errorf("Expected %s to be deselected", cards[1])
	}
	if want := []Card{cards[0], cards[2], cards[3]}; !slices.Equal(b.Selected(), want) {
		t.Errorf("Expected selection %v, got %v", want, b.Selected())
	}

	notOnBoard := b.deck.Cards()[0]
	if _, err := b.ToggleSelect(notOnBoard); !errors.Is(err, ErrUnknownCard) {
		t.Errorf("Expected ErrUnknownCard selecting a card in the deck, got %v", err)
	}
	if len(b.Selected()) != 3 {
		t.Errorf("Failed selection should not change the selection")
	}

	b.ClearSelection()
	if len(b.Selected()) != 0 {
		t.Errorf("Expected empty selection after ClearSelection, got %v", b.Selected())
	}
}

func TestValidateSelection(t *testing.T) {
	t.Run("wrong size", func(t *testing.T) {
		b := NewBoard(NewShuffledDeck(3))
		cards := b.Cards()
		for _, n := range []int{0, 2, 4} {
			b.ClearSelection()
			selectAll(t, b, cards[:n]...)
			before := b.Snapshot()
			if _, err := b.ValidateSelection(); !errors.Is(err, ErrInvalidSelectionSize) {
				t.Errorf("Expected ErrInvalidSelectionSize with %d selected, got %v", n, err)
			}
			after := b.Snapshot()
			if !slices.Equal(before.Cards, after.Cards) || !slices.Equal(before.Selected, after.Selected) {
				t.Errorf("Failed validation with %d selected changed the board", n)
			}
		}
	})

	t.Run("valid", func(t *testing.T) {
		var (
			b   *Board
			set Set
			ok  bool
		)
		for seed := uint64(4); !ok; seed++ {
			b = NewBoard(NewShuffledDeck(seed))
			set, ok = b.FirstAvailableSet()
		}
		before := b.Cards()
		selectAll(t, b, set[2], set[0], set[1])

		outcome, err := b.ValidateSelection()
		if err != nil {
			t.Fatalf("ValidateSelection failed: %v", err)
		}
		if !outcome.Valid || outcome.Set != set || outcome.Reason != ReasonNone {
			t.Fatalf("Expected valid outcome for %s, got %+v", set, outcome)
		}
		if len(b.Selected()) != 0 {
			t.Errorf("Expected selection to be cleared, got %v", b.Selected())
		}

		after := b.Cards()
		if len(after) != StartingBoardSize || len(outcome.Drawn) != 3 {
			t.Errorf("Expected board topped up to %d cards with 3 drawn, got %d cards and %d drawn",
				StartingBoardSize, len(after), len(outcome.Drawn))
		}
		for _, c := range set {
			if slices.Contains(after, c) {
				t.Errorf("Card %s of the SET is still on the board", c)
			}
		}
		for _, c := range before {
			if !set.Contains(c) && !slices.Contains(after, c) {
				t.Errorf("Card %s not in the SET was removed from the board", c)
			}
		}
		for _, s := range b.AvailableSets() {
			if s == set {
				t.Errorf("Removed SET %s is still available", set)
			}
		}
		if !slices.Equal(b.Removed(), []Set{set}) {
			t.Errorf("Expected removed SETs [%s], got %v", set, b.Removed())
		}
		checkPartition(t, b)
	})

	t.Run("rejected", func(t *testing.T) {
		cards := MustParseCards("red diamond empty 1", "red oval empty 2", "red diamond filled 3")
		deck := NewDeckFrom(append(slices.Clone(cards), capCards()...))
		b := NewBoard(deck)
		before := b.Snapshot()
		selectAll(t, b, cards...)

		outcome, err := b.ValidateSelection()
		if err != nil {
			t.Fatalf("ValidateSelection failed: %v", err)
		}
		if outcome.Valid || outcome.Reason != ReasonShading {
			t.Errorf("Expected rejection with reason %q, got %+v", ReasonShading, outcome)
		}
		if len(b.Selected()) != 0 {
			t.Errorf("Expected selection to be cleared, got %v", b.Selected())
		}
		if !slices.Equal(before.Cards, b.Cards()) || before.DeckRemaining != b.DeckRemaining() {
			t.Errorf("Rejected selection changed the board")
		}
		if len(b.Removed()) != 0 {
			t.Errorf("Rejected selection recorded a removed SET")
		}
	})

	t.Run("board above starting size", func(t *testing.T) {
		// 12 cards without SET, then 3 more forming one.
		cards := append(capCards()[:12], MustParseCards("green diamond empty 3", "purple oval filled 3", "red squiggly lined 3")...)
		cards = append(cards, capCards()[12:]...)
		b := NewBoard(NewDeckFrom(cards))
		if _, err := b.AddThree(); err != nil {
			t.Fatalf("AddThree failed: %v", err)
		}
		set, ok := b.FirstAvailableSet()
		if !ok {
			t.Fatalf("Expected a SET after adding 3 cards")
		}
		selectAll(t, b, set[:]...)
		outcome, err := b.ValidateSelection()
		if err != nil || !outcome.Valid {
			t.Fatalf("ValidateSelection = (%+v, %v), want valid", outcome, err)
		}
		if len(outcome.Drawn) != 0 || len(b.Cards()) != StartingBoardSize {
			t.Errorf("Expected no replenishment from 15 to 12 cards, drew %d and have %d", len(outcome.Drawn), len(b.Cards()))
		}
	})
}

func TestAddThree(t *testing.T) {
	noSetBoard := func(extra ...Card) *Board {
		return NewBoard(NewDeckFrom(append(capCards()[:12], extra...)))
	}

	t.Run("no sets", func(t *testing.T) {
		extra := MustParseCards("red squiggly lined 3", "red squiggly lined 2", "red squiggly lined 1", "red oval lined 1")
		b := noSetBoard(extra...)
		if len(b.AvailableSets()) != 0 {
			t.Fatalf("Expected no SETs on the board, got %v", b.AvailableSets())
		}
		added, err := b.AddThree()
		if err != nil {
			t.Fatalf("AddThree failed: %v", err)
		}
		if !slices.Equal(added, extra[:3]) {
			t.Errorf("Expected added cards %v, got %v", extra[:3], added)
		}
		if len(b.Cards()) != StartingBoardSize+3 || b.DeckRemaining() != 1 {
			t.Errorf("Expected 15 cards on board and 1 in deck, got %d and %d", len(b.Cards()), b.DeckRemaining())
		}
		if !slices.Equal(b.AvailableSets(), FindAllSets(b.Cards())) {
			t.Errorf("Expected available SETs to be recomputed")
		}
	})

	t.Run("sets available", func(t *testing.T) {
		b := NewBoard(NewDeckFrom(append(planeCards(), fillerCards()...)))
		if _, err := b.AddThree(); !errors.Is(err, ErrSetsAvailable) {
			t.Errorf("Expected ErrSetsAvailable, got %v", err)
		}
		if len(b.Cards()) != StartingBoardSize {
			t.Errorf("Refused AddThree changed the board")
		}
	})

	t.Run("deck runs out", func(t *testing.T) {
		b := noSetBoard(capCards()[12:13]...)
		added, err := b.AddThree()
		if err != nil {
			t.Fatalf("AddThree failed: %v", err)
		}
		if len(added) != 1 {
			t.Errorf("Expected 1 card added from a deck of 1, got %v", added)
		}
		if len(b.AvailableSets()) != 0 || b.DeckRemaining() != 0 {
			t.Fatalf("Expected no SETs and an empty deck, got %v and %d cards", b.AvailableSets(), b.DeckRemaining())
		}
		if !b.IsGameOver() {
			t.Errorf("Expected game over with no SETs and an empty deck")
		}
		added, err = b.AddThree()
		if err != nil || len(added) != 0 {
			t.Errorf("AddThree on empty deck = (%v, %v), want no cards and no error", added, err)
		}
	})

	t.Run("up to start policy", func(t *testing.T) {
		b := NewBoard(NewDeckFrom(append(planeCards(), fillerCards()...)), WithGrowPolicy(GrowUpToStart))
		if b.Policy() != GrowUpToStart {
			t.Fatalf("Expected policy %s, got %s", GrowUpToStart, b.Policy())
		}
		if len(b.AvailableSets()) == 0 {
			t.Fatalf("Expected SETs on the board")
		}
		if _, err := b.AddThree(); err != nil {
			t.Fatalf("AddThree with SETs on %d cards failed: %v", StartingBoardSize, err)
		}
		if len(b.Cards()) != 15 {
			t.Errorf("Expected 15 cards, got %d", len(b.Cards()))
		}
		if _, err := b.AddThree(); !errors.Is(err, ErrBoardFull) {
			t.Errorf("Expected ErrBoardFull above %d cards, got %v", StartingBoardSize, err)
		}
	})

	t.Run("up to start policy without sets", func(t *testing.T) {
		b := NewBoard(NewDeckFrom(append(capCards()[:15], fillerCards()...)), WithGrowPolicy(GrowUpToStart))
		if _, err := b.AddThree(); err != nil {
			t.Fatalf("AddThree failed: %v", err)
		}
		if len(b.Cards()) != 15 || len(b.AvailableSets()) != 0 || b.IsGameOver() {
			t.Fatalf("Expected 15 cards without SETs and the game going on, got %d cards, %d SETs, game over %t",
				len(b.Cards()), len(b.AvailableSets()), b.IsGameOver())
		}
		added, err := b.AddThree()
		if err != nil {
			t.Fatalf("AddThree on %d cards without SETs failed: %v", len(b.Cards()), err)
		}
		if !slices.Equal(added, fillerCards()[:3]) {
			t.Errorf("Expected added cards %v, got %v", fillerCards()[:3], added)
		}
		if len(b.Cards()) != 18 || b.DeckRemaining() != 6 {
			t.Errorf("Expected 18 cards on board and 6 in deck, got %d and %d", len(b.Cards()), b.DeckRemaining())
		}
	})
}

func TestAddOneFromDeck(t *testing.T) {
	b := NewBoard(NewDeckFrom(append(capCards()[:12], MustParseCards("red squiggly lined 3")...)))
	selectAll(t, b, b.Cards()[0])

	card, ok := b.AddOneFromDeck()
	if !ok || card != MustParseCards("red squiggly lined 3")[0] {
		t.Fatalf("AddOneFromDeck = (%s, %t), want the last card of the deck", card, ok)
	}
	if len(b.Cards()) != 13 || len(b.Selected()) != 1 {
		t.Errorf("Expected 13 cards and the selection untouched, got %d cards and %v selected", len(b.Cards()), b.Selected())
	}
	if _, ok := b.AddOneFromDeck(); ok {
		t.Errorf("Expected AddOneFromDeck to do nothing on an empty deck")
	}
	if len(b.Cards()) != 13 {
		t.Errorf("AddOneFromDeck on an empty deck changed the board")
	}
}

func TestNextAvailableSet(t *testing.T) {
	b := NewBoard(NewDeckFrom(append(planeCards(), fillerCards()...)))
	want := b.AvailableSets()
	for i, s := range want {
		got, err := b.NextAvailableSet()
		if err != nil {
			t.Fatalf("NextAvailableSet #%d failed: %v", i, err)
		}
		if got != s {
			t.Errorf("NextAvailableSet #%d: expected %s, got %s", i, s, got)
		}
		if b.Cursor() != i+1 {
			t.Errorf("Expected cursor %d, got %d", i+1, b.Cursor())
		}
	}
	if _, err := b.NextAvailableSet(); !errors.Is(err, ErrCursorExhausted) {
		t.Errorf("Expected ErrCursorExhausted after %d hints, got %v", len(want), err)
	}

	// Any change of the board resets the cursor.
	b.AddOneFromDeck()
	if b.Cursor() != 0 {
		t.Errorf("Expected cursor reset to 0 after the board changed, got %d", b.Cursor())
	}
	first, _ := b.FirstAvailableSet()
	if got, err := b.NextAvailableSet(); err != nil || got != first {
		t.Errorf("NextAvailableSet after reset = (%s, %v), want %s", got, err, first)
	}
}

func TestGameOver(t *testing.T) {
	// Four cards without SET plus the card completing one with the first two.
	noSet := capCards()[:4]
	completing := Complete(noSet[0], noSet[1])

	b := NewBoard(NewDeckFrom(append(slices.Clone(noSet), completing)))
	if b.IsGameOver() {
		t.Fatalf("Game should not be over while a SET is on the board")
	}
	selectAll(t, b, noSet[0], noSet[1], completing)
	outcome, err := b.ValidateSelection()
	if err != nil || !outcome.Valid {
		t.Fatalf("ValidateSelection = (%+v, %v), want valid", outcome, err)
	}
	if !b.IsGameOver() {
		t.Errorf("Expected game over with empty deck and %d cards without SET", len(b.Cards()))
	}
	if !b.Snapshot().GameOver {
		t.Errorf("Expected snapshot to report game over")
	}

	notOver := NewBoard(NewDeckFrom(append(capCards()[:12], completing)))
	if notOver.IsGameOver() {
		t.Errorf("Game should not be over while the deck has cards")
	}
	notOver.AddThree()
	if notOver.DeckRemaining() != 0 || len(notOver.AvailableSets()) == 0 || notOver.IsGameOver() {
		t.Errorf("Expected a SET and no game over after drawing the last card: %s", notOver.Snapshot())
	}
}

// TestFullGame plays seeded games to the end, always taking the first
// available SET, and checks the invariants after every move.
func TestFullGame(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 42, 1234} {
		b := NewBoard(NewShuffledDeck(seed))
		for moves := 0; !b.IsGameOver(); moves++ {
			if moves > NumCards {
				t.Fatalf("Seed %d: game did not end after %d moves", seed, moves)
			}
			if set, ok := b.FirstAvailableSet(); ok {
				selectAll(t, b, set[:]...)
				if outcome, err := b.ValidateSelection(); err != nil || !outcome.Valid {
					t.Fatalf("Seed %d: ValidateSelection = (%+v, %v), want valid", seed, outcome, err)
				}
			} else if _, err := b.AddThree(); err != nil {
				t.Fatalf("Seed %d: AddThree failed: %v", seed, err)
			}
			checkPartition(t, b)
			if len(b.Cards()) > MaxBoardSize {
				t.Fatalf("Seed %d: board grew to %d cards", seed, len(b.Cards()))
			}
			if !slices.Equal(b.AvailableSets(), FindAllSets(b.Cards())) {
				t.Fatalf("Seed %d: available SETs out of date", seed)
			}
		}
		if b.DeckRemaining() != 0 || len(b.AvailableSets()) != 0 {
			t.Errorf("Seed %d: game over with %d cards in deck and %d SETs", seed, b.DeckRemaining(), len(b.AvailableSets()))
		}
		if len(b.Removed())*3+len(b.Cards()) != NumCards {
			t.Errorf("Seed %d: expected removed and board to hold all cards", seed)
		}
	}
}
