package chess

import (
	"fmt"

	"github.com/lgbarn/fen-extract-go/internal/errors"
)

// Position is the complete static state of a chess position.
// It is an immutable value: build one with StartingPosition or NewPosition
// and copy it freely. Two positions are equal when == holds.
type Position struct {
	// The 64 cells indexed by Square, a8 first and h1 last.
	cells [NumSquares]Piece

	// Who has the next move.
	toMove Colour

	castling CastlingRights

	// NoSquare when no en passant capture is possible.
	enPassant Square

	// The half-move clock since the last pawn move or capture.
	halfMoveClock uint

	// The current move number, starting at 1.
	fullMoveNumber uint
}

// Setup is the editable field bundle used to construct a Position.
type Setup struct {
	Cells          [NumSquares]Piece
	ToMove         Colour
	Castling       CastlingRights
	EnPassant      Square // NoSquare for none
	HalfMoveClock  uint
	FullMoveNumber uint
}

// backRank is the piece order on ranks 1 and 8 in the initial position.
var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StartingPosition returns the standard chess starting position.
func StartingPosition() Position {
	p := Position{
		toMove:         White,
		castling:       AllCastling,
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}
	for file := 0; file < BoardSize; file++ {
		p.cells[int(A8)+file] = B(backRank[file])
		p.cells[int(A7)+file] = B(Pawn)
		p.cells[int(A2)+file] = W(Pawn)
		p.cells[int(A1)+file] = W(backRank[file])
	}
	return p
}

// NewPosition builds a Position from s after checking its structural
// invariants.
func NewPosition(s Setup) (Position, error) {
	for sq, piece := range s.Cells {
		if piece != NoPiece && !piece.IsValid() {
			return Position{}, fmt.Errorf("unknown piece code %d on %s: %w",
				piece, Square(sq), errors.ErrInvalidPosition)
		}
	}
	if s.ToMove != White && s.ToMove != Black {
		return Position{}, fmt.Errorf("side to move %d: %w", s.ToMove, errors.ErrInvalidPosition)
	}
	if s.Castling&^AllCastling != 0 {
		return Position{}, fmt.Errorf("castling flags %#x: %w", uint8(s.Castling), errors.ErrInvalidPosition)
	}
	if s.EnPassant != NoSquare && !s.EnPassant.IsValid() {
		return Position{}, fmt.Errorf("en passant square %d: %w", s.EnPassant, errors.ErrInvalidPosition)
	}
	if s.FullMoveNumber < 1 {
		return Position{}, fmt.Errorf("full-move number must be at least 1: %w", errors.ErrInvalidPosition)
	}

	return Position{
		cells:          s.Cells,
		toMove:         s.ToMove,
		castling:       s.Castling,
		enPassant:      s.EnPassant,
		halfMoveClock:  s.HalfMoveClock,
		fullMoveNumber: s.FullMoveNumber,
	}, nil
}

// Setup returns a copy of the position's fields for editing.
func (p Position) Setup() Setup {
	return Setup{
		Cells:          p.cells,
		ToMove:         p.toMove,
		Castling:       p.castling,
		EnPassant:      p.enPassant,
		HalfMoveClock:  p.halfMoveClock,
		FullMoveNumber: p.fullMoveNumber,
	}
}

// PieceAt returns the piece on sq, or NoPiece if it is empty or off the board.
func (p Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.cells[sq]
}

// Cells returns a copy of all 64 cells.
func (p Position) Cells() [NumSquares]Piece {
	return p.cells
}

// SideToMove returns who has the next move.
func (p Position) SideToMove() Colour {
	return p.toMove
}

// Castling returns the castling rights.
func (p Position) Castling() CastlingRights {
	return p.castling
}

// EnPassant returns the en passant target square and whether there is one.
func (p Position) EnPassant() (Square, bool) {
	return p.enPassant, p.enPassant != NoSquare
}

// HalfMoveClock returns the number of half-moves since the last pawn move or capture.
func (p Position) HalfMoveClock() uint {
	return p.halfMoveClock
}

// FullMoveNumber returns the current move number.
func (p Position) FullMoveNumber() uint {
	return p.fullMoveNumber
}

// Equal reports whether two positions are identical. go-cmp uses it.
func (p Position) Equal(o Position) bool {
	return p == o
}

// PieceCount returns how many pieces of the given colour stand on the board.
func (p Position) PieceCount(colour Colour) int {
	n := 0
	for _, piece := range p.cells {
		if piece != NoPiece && piece.Colour() == colour {
			n++
		}
	}
	return n
}
