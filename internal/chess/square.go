package chess

import (
	"fmt"

	"github.com/lgbarn/fen-extract-go/internal/errors"
)

// Square indexes the 64 cells row-major from a8 (0) to h1 (63).
type Square int8

// NoSquare marks an absent square, e.g. no en passant target.
const NoSquare Square = -1

// Named squares.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

// Constants for board dimensions and coordinates.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	FirstFile = 'a'
	LastFile  = FirstFile + BoardSize - 1
	FirstRank = '1'
	LastRank  = FirstRank + BoardSize - 1
)

// SquareAt returns the square for a file letter 'a'-'h' and rank digit '1'-'8'.
func SquareAt(file, rank byte) (Square, bool) {
	if file < FirstFile || file > LastFile || rank < FirstRank || rank > LastRank {
		return NoSquare, false
	}
	return Square(int(LastRank-rank)*BoardSize + int(file-FirstFile)), true
}

// ParseSquare converts algebraic text such as "e4" to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) == 2 {
		if sq, ok := SquareAt(s[0], s[1]); ok {
			return sq, nil
		}
	}
	return NoSquare, fmt.Errorf("%q: %w", s, errors.ErrInvalidSquare)
}

// IsValid reports whether sq is on the board.
func (sq Square) IsValid() bool {
	return sq >= 0 && sq < NumSquares
}

// File returns the file letter 'a'-'h'.
func (sq Square) File() byte {
	return FirstFile + byte(sq%BoardSize)
}

// Rank returns the rank digit '1'-'8'.
func (sq Square) Rank() byte {
	return LastRank - byte(sq/BoardSize)
}

// String returns algebraic notation, or "-" for an off-board square.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{sq.File(), sq.Rank()})
}
