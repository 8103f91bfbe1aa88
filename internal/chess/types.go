// Package chess provides the static chess position model.
package chess

import "strings"

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// PieceType is a piece without colour.
type PieceType int

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece type.
func (pt PieceType) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if pt >= 0 && int(pt) < len(names) {
		return names[pt]
	}
	return "Unknown"
}

// Letter returns the single uppercase letter of a piece type.
func (pt PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if pt >= 0 && int(pt) < len(letters) {
		return letters[pt]
	}
	return '?'
}

// Piece is a coloured piece. The zero value NoPiece marks an empty square.
type Piece uint8

// NoPiece is the content of an empty square.
const NoPiece Piece = 0

// pieceShift is used for encoding coloured pieces.
const pieceShift = 1

// MakePiece creates a coloured piece value.
func MakePiece(colour Colour, pt PieceType) Piece {
	return Piece(int(pt)<<pieceShift | int(colour))
}

// W creates a white piece.
func W(pt PieceType) Piece {
	return MakePiece(White, pt)
}

// B creates a black piece.
func B(pt PieceType) Piece {
	return MakePiece(Black, pt)
}

// Colour extracts the colour of a piece.
func (p Piece) Colour() Colour {
	return Colour(p & 0x01)
}

// Type extracts the piece type.
func (p Piece) Type() PieceType {
	return PieceType(p >> pieceShift)
}

// IsValid reports whether p is one of the twelve real pieces.
func (p Piece) IsValid() bool {
	t := p.Type()
	return t >= Pawn && t <= King
}

// Letter returns the FEN letter: uppercase for White, lowercase for Black.
// Empty squares give a space.
func (p Piece) Letter() byte {
	if !p.IsValid() {
		return ' '
	}
	l := p.Type().Letter()
	if p.Colour() == Black {
		l += 'a' - 'A'
	}
	return l
}

// String returns e.g. "White Knight", or "Empty" for NoPiece.
func (p Piece) String() string {
	if p == NoPiece {
		return "Empty"
	}
	if !p.IsValid() {
		return "Unknown"
	}
	return p.Colour().String() + " " + p.Type().String()
}

// PieceFromLetter decodes a FEN piece letter.
func PieceFromLetter(c byte) (Piece, bool) {
	colour := White
	if c >= 'a' && c <= 'z' {
		colour = Black
		c -= 'a' - 'A'
	}
	switch c {
	case 'P':
		return MakePiece(colour, Pawn), true
	case 'N':
		return MakePiece(colour, Knight), true
	case 'B':
		return MakePiece(colour, Bishop), true
	case 'R':
		return MakePiece(colour, Rook), true
	case 'Q':
		return MakePiece(colour, Queen), true
	case 'K':
		return MakePiece(colour, King), true
	}
	return NoPiece, false
}

// CastlingRights holds the four independent castling flags.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// castlingLetters lists the flags in canonical FEN order.
var castlingLetters = []struct {
	right  CastlingRights
	letter byte
}{
	{WhiteKingside, 'K'},
	{WhiteQueenside, 'Q'},
	{BlackKingside, 'k'},
	{BlackQueenside, 'q'},
}

// Has reports whether every flag in r is set.
func (c CastlingRights) Has(r CastlingRights) bool {
	return c&r == r
}

// String returns the canonical KQkq form, or "-" when no right is held.
func (c CastlingRights) String() string {
	var sb strings.Builder
	for _, cl := range castlingLetters {
		if c.Has(cl.right) {
			sb.WriteByte(cl.letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// CastlingFromLetter maps one of K, Q, k, q to its flag.
func CastlingFromLetter(c byte) (CastlingRights, bool) {
	for _, cl := range castlingLetters {
		if cl.letter == c {
			return cl.right, true
		}
	}
	return NoCastling, false
}
