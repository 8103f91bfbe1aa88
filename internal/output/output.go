// Package output renders processed positions as text, JSON or diagrams.
package output

import (
	"strings"

	"github.com/lgbarn/fen-extract-go/internal/chess"
)

// Record is one processed input line.
type Record struct {
	Source    string         // Input name, "-" for stdin
	Line      int            // 1-based line number
	Input     string         // Text as read
	Position  chess.Position // Valid only when Err is nil
	FEN       string         // Canonical FEN when Err is nil
	Zobrist   uint64
	Duplicate bool
	Match     string // Label of the filter pattern that selected the position
	Err       error
}

// Diagram draws the board with rank 8 at the top, followed by the
// remaining state on one line. Empty squares are dots.
func Diagram(p chess.Position) string {
	var sb strings.Builder
	for row := 0; row < chess.BoardSize; row++ {
		sb.WriteByte(byte('8' - row))
		sb.WriteString("  ")
		for col := 0; col < chess.BoardSize; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			piece := p.PieceAt(chess.Square(row*chess.BoardSize + col))
			if piece == chess.NoPiece {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(piece.Letter())
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")

	ep := "-"
	if sq, ok := p.EnPassant(); ok {
		ep = sq.String()
	}
	sb.WriteString(p.SideToMove().String())
	sb.WriteString(" to move, castling ")
	sb.WriteString(p.Castling().String())
	sb.WriteString(", en passant ")
	sb.WriteString(ep)
	sb.WriteByte('\n')
	return sb.String()
}
