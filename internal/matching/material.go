// Package matching selects positions by placement pattern, exact FEN or
// material balance.
package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/fen-extract-go/internal/chess"
	"github.com/lgbarn/fen-extract-go/internal/errors"
)

// materialCounts holds piece counts indexed by PieceType.
type materialCounts [chess.King + 1]int

// MaterialMatcher matches positions by material balance.
type MaterialMatcher struct {
	// Pattern like "QR:qrr" means white has Q+R, black has Q+2R
	pattern     string
	exactMatch  bool
	whitePieces materialCounts
	blackPieces materialCounts
}

// NewMaterialMatcher creates a new material matcher.
// Pattern format: "QRN:qrn" (white pieces : black pieces)
// Use uppercase for white, lowercase for black
// K=King, Q=Queen, R=Rook, B=Bishop, N=Knight, P=Pawn
//
// With exact set, the position must hold exactly the listed pieces;
// otherwise at least them.
func NewMaterialMatcher(pattern string, exact bool) (*MaterialMatcher, error) {
	mm := &MaterialMatcher{
		pattern:    pattern,
		exactMatch: exact,
	}
	if err := mm.parsePattern(pattern); err != nil {
		return nil, err
	}
	return mm, nil
}

// parsePattern parses a material pattern like "QR:qrr"
func (mm *MaterialMatcher) parsePattern(pattern string) error {
	parts := strings.Split(pattern, ":")
	if len(parts) > 2 {
		return fmt.Errorf("material %q: more than one ':': %w", pattern, errors.ErrInvalidConfig)
	}
	if err := parseSide(parts[0], chess.White, &mm.whitePieces); err != nil {
		return fmt.Errorf("material %q: %w", pattern, err)
	}
	if len(parts) == 2 {
		if err := parseSide(parts[1], chess.Black, &mm.blackPieces); err != nil {
			return fmt.Errorf("material %q: %w", pattern, err)
		}
	}
	return nil
}

// parseSide counts the piece letters of one side.
func parseSide(s string, colour chess.Colour, counts *materialCounts) error {
	for i := 0; i < len(s); i++ {
		piece, ok := chess.PieceFromLetter(s[i])
		if !ok || piece.Colour() != colour {
			return fmt.Errorf("unexpected %q for %v: %w", s[i], colour, errors.ErrInvalidConfig)
		}
		counts[piece.Type()]++
	}
	return nil
}

// Match checks if a position matches the material pattern.
func (mm *MaterialMatcher) Match(p chess.Position) bool {
	var whiteCounts, blackCounts materialCounts
	for _, piece := range p.Cells() {
		if !piece.IsValid() {
			continue
		}
		if piece.Colour() == chess.White {
			whiteCounts[piece.Type()]++
		} else {
			blackCounts[piece.Type()]++
		}
	}

	if mm.exactMatch {
		return whiteCounts == mm.whitePieces && blackCounts == mm.blackPieces
	}
	return atLeast(whiteCounts, mm.whitePieces) && atLeast(blackCounts, mm.blackPieces)
}

// atLeast reports whether have holds every piece in want.
func atLeast(have, want materialCounts) bool {
	for pt := chess.Pawn; pt <= chess.King; pt++ {
		if have[pt] < want[pt] {
			return false
		}
	}
	return true
}

// Pattern returns the material pattern as given.
func (mm *MaterialMatcher) Pattern() string {
	return mm.pattern
}
