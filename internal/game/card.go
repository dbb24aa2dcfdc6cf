package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Color of the symbols printed on a card.
type Color uint8

const (
	Green Color = iota
	Purple
	Red
)

// Shape of the symbols printed on a card.
type Shape uint8

const (
	Diamond Shape = iota
	Oval
	Squiggly
)

// Shading (fill) of the symbols printed on a card.
type Shading uint8

const (
	Empty Shading = iota
	Filled
	Lined
)

// Count is the number of symbols printed on a card: 1, 2 or 3.
type Count uint8

// Number of values each attribute can take.
const numValues = 3

var (
	colorNames   = [numValues]string{"green", "purple", "red"}
	shapeNames   = [numValues]string{"diamond", "oval", "squiggly"}
	shadingNames = [numValues]string{"empty", "filled", "lined"}

	// Counts lists the valid symbol counts.
	Counts = [numValues]Count{1, 2, 3}
)

func (c Color) String() string   { return attrName(colorNames, uint8(c)) }
func (s Shape) String() string   { return attrName(shapeNames, uint8(s)) }
func (s Shading) String() string { return attrName(shadingNames, uint8(s)) }
func (n Count) String() string   { return strconv.Itoa(int(n)) }

func attrName(names [numValues]string, v uint8) string {
	if int(v) >= len(names) {
		return fmt.Sprintf("invalid(%d)", v)
	}
	return names[v]
}

func attrValue(names [numValues]string, kind, s string) (uint8, error) {
	for i, name := range names {
		if strings.EqualFold(name, s) {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrInvalidCard, kind, s)
}

// MarshalText implements encoding.TextMarshaler, so colors are serialized by name.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := attrValue(colorNames, "color", string(b))
	*c = Color(v)
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(b []byte) error {
	v, err := attrValue(shapeNames, "shape", string(b))
	*s = Shape(v)
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (s Shading) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shading) UnmarshalText(b []byte) error {
	v, err := attrValue(shadingNames, "shading", string(b))
	*s = Shading(v)
	return err
}

// Card is an immutable SET card. Two cards with the same attributes are the same card.
type Card struct {
	Color   Color   `json:"color"`
	Shape   Shape   `json:"shape"`
	Shading Shading `json:"shading"`
	Count   Count   `json:"count"`
}

// NumCards is the size of the full SET universe: 3^4 attribute combinations.
const NumCards = numValues * numValues * numValues * numValues

// Valid reports whether every attribute holds one of its three values.
func (c Card) Valid() bool {
	return c.Color < numValues && c.Shape < numValues && c.Shading < numValues &&
		c.Count >= 1 && c.Count <= numValues
}

// Index returns the canonical position of the card in [0, NumCards).
// It is the inverse of CardFromIndex.
func (c Card) Index() int {
	return ((int(c.Color)*numValues+int(c.Shape))*numValues+int(c.Shading))*numValues + int(c.Count-1)
}

// CardFromIndex returns the card with the given canonical index.
func CardFromIndex(i int) (Card, error) {
	if i < 0 || i >= NumCards {
		return Card{}, fmt.Errorf("%w: index %d out of range", ErrInvalidCard, i)
	}
	return Card{
		Count:   Count(i%numValues + 1),
		Shading: Shading(i / numValues % numValues),
		Shape:   Shape(i / (numValues * numValues) % numValues),
		Color:   Color(i / (numValues * numValues * numValues)),
	}, nil
}

// String returns the card as "<color> <shape> <shading> <count>", e.g. "red oval filled 2".
func (c Card) String() string {
	return fmt.Sprintf("%s %s %s %d", c.Color, c.Shape, c.Shading, c.Count)
}

// ParseCard parses the format produced by Card.String.
func ParseCard(s string) (Card, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return Card{}, fmt.Errorf("%w: %q: expected \"<color> <shape> <shading> <count>\"", ErrInvalidCard, s)
	}
	var card Card
	if err := card.Color.UnmarshalText([]byte(fields[0])); err != nil {
		return Card{}, err
	}
	if err := card.Shape.UnmarshalText([]byte(fields[1])); err != nil {
		return Card{}, err
	}
	if err := card.Shading.UnmarshalText([]byte(fields[2])); err != nil {
		return Card{}, err
	}
	n, err := strconv.Atoi(fields[3])
	if err != nil || n < 1 || n > numValues {
		return Card{}, fmt.Errorf("%w: unknown count %q", ErrInvalidCard, fields[3])
	}
	card.Count = Count(n)
	return card, nil
}

// MustParseCards parses each string with ParseCard and panics on error.
// Meant for tests and fixed fixtures.
func MustParseCards(specs ...string) []Card {
	cards := make([]Card, 0, len(specs))
	for _, s := range specs {
		c, err := ParseCard(s)
		if err != nil {
			panic(err)
		}
		cards = append(cards, c)
	}
	return cards
}
