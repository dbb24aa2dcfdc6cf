package game

import (
	"math/rand/v2"
	"slices"
)

// Shuffler is the random source used to permute a Deck.
// Both *math/rand.Rand and *math/rand/v2.Rand implement it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Deck is the ordered pool of cards not yet dealt. Deal takes from the front.
type Deck struct {
	cards []Card
}

// NewDeck creates the full, unshuffled deck of NumCards cards: one per
// combination of color, shape, shading and count.
func NewDeck() *Deck {
	cards := make([]Card, 0, NumCards)
	for color := range Color(numValues) {
		for shape := range Shape(numValues) {
			for shading := range Shading(numValues) {
				for _, count := range Counts {
					cards = append(cards, Card{Color: color, Shape: shape, Shading: shading, Count: count})
				}
			}
		}
	}
	return &Deck{cards: cards}
}

// NewShuffledDeck creates a full deck shuffled by a PCG generator seeded with seed.
// The same seed always yields the same order.
func NewShuffledDeck(seed uint64) *Deck {
	d := NewDeck()
	d.Shuffle(rand.New(rand.NewPCG(seed, seed^0x5e7)))
	return d
}

// NewDeckFrom creates a deck that deals the given cards in order.
// The slice is copied.
func NewDeckFrom(cards []Card) *Deck {
	return &Deck{cards: slices.Clone(cards)}
}

// Shuffle permutes the remaining cards uniformly at random using rng.
func (d *Deck) Shuffle(rng Shuffler) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the first card of the deck.
// It returns ErrEmptyDeck if no cards remain.
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Remaining returns the number of cards left to deal.
func (d *Deck) Remaining() int { return len(d.cards) }

// IsEmpty reports whether all cards have been dealt.
func (d *Deck) IsEmpty() bool { return len(d.cards) == 0 }

// Cards returns a copy of the remaining cards, in dealing order.
func (d *Deck) Cards() []Card { return slices.Clone(d.cards) }
