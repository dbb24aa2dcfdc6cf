package game

import (
	"fmt"
	"sort"
)

// Set is a group of three cards, kept in canonical order (ascending Card.Index)
// so that two Sets holding the same cards compare equal with ==.
type Set [3]Card

// NewSet returns the canonical Set holding a, b and c, in any order.
func NewSet(a, b, c Card) Set {
	s := Set{a, b, c}
	sort.Slice(s[:], func(i, j int) bool { return s[i].Index() < s[j].Index() })
	return s
}

// Contains reports whether card is one of the three cards of s.
func (s Set) Contains(card Card) bool {
	return s[0] == card || s[1] == card || s[2] == card
}

// Cards returns the three cards as a slice.
func (s Set) Cards() []Card { return []Card{s[0], s[1], s[2]} }

func (s Set) String() string {
	return fmt.Sprintf("[%s | %s | %s]", s[0], s[1], s[2])
}

// FindAllSets returns every SET that can be formed from cards, each exactly once.
//
// Triples are scanned by position i < j < k, and the result is in the order
// SETs are first found, so the same input always yields the same output.
// Positions holding equal cards never form a SET.
func FindAllSets(cards []Card) []Set {
	var sets []Set
	seen := make(map[Set]struct{})
	n := len(cards)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				a, b, c := cards[i], cards[j], cards[k]
				if a == b || b == c || a == c {
					continue
				}
				if ok, _ := IsSet(a, b, c); !ok {
					continue
				}
				key := NewSet(a, b, c)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				sets = append(sets, key)
			}
		}
	}
	return sets
}

// CountSets returns len(FindAllSets(cards)).
func CountSets(cards []Card) int {
	return len(FindAllSets(cards))
}
