package game

// Reason explains why three cards are not a SET. ReasonNone means they are.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonDuplicateCard Reason = "duplicate card"
	ReasonCount         Reason = "not the same count"
	ReasonColor         Reason = "not the same color"
	ReasonShading       Reason = "not the same shading"
	ReasonShape         Reason = "not the same shape"
)

// IsSet reports whether a, b and c form a SET: for each attribute the three
// values must be either all equal or all different.
//
// Attributes are checked in the order count, color, shading, shape, and the
// returned Reason names the first one that fails. Equal cards are never a SET.
// The result does not depend on the order of the arguments.
func IsSet(a, b, c Card) (bool, Reason) {
	if a == b || b == c || a == c {
		return false, ReasonDuplicateCard
	}
	switch {
	case !sameOrDistinct(a.Count, b.Count, c.Count):
		return false, ReasonCount
	case !sameOrDistinct(a.Color, b.Color, c.Color):
		return false, ReasonColor
	case !sameOrDistinct(a.Shading, b.Shading, c.Shading):
		return false, ReasonShading
	case !sameOrDistinct(a.Shape, b.Shape, c.Shape):
		return false, ReasonShape
	}
	return true, ReasonNone
}

func sameOrDistinct[T comparable](a, b, c T) bool {
	allSame := a == b && b == c
	allDifferent := a != b && b != c && a != c
	return allSame || allDifferent
}

// Complete returns the only card that forms a SET with a and b.
// a and b must be different cards; for equal cards the result is a itself.
func Complete(a, b Card) Card {
	return Card{
		Color:   Color(third(uint8(a.Color), uint8(b.Color))),
		Shape:   Shape(third(uint8(a.Shape), uint8(b.Shape))),
		Shading: Shading(third(uint8(a.Shading), uint8(b.Shading))),
		Count:   Count(third(uint8(a.Count-1), uint8(b.Count-1)) + 1),
	}
}

// third returns the value in {0,1,2} that makes x, y and the result all equal
// or all different: values summing to 0 mod 3.
func third(x, y uint8) uint8 {
	return (2*numValues - x - y) % numValues
}
