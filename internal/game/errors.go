package game

import "errors"

var (
	ErrEmptyDeck            = errors.New("deck is empty")
	ErrInvalidSelectionSize = errors.New("exactly 3 cards must be selected")
	ErrUnknownCard          = errors.New("card is not on the board")
	ErrCursorExhausted      = errors.New("no more SETs to show on this board")
	ErrSetsAvailable        = errors.New("board still has a SET, no more cards can be added")
	ErrBoardFull            = errors.New("board is full")
	ErrInvalidCard          = errors.New("invalid card")
)
