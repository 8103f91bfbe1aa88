package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/fen-extract-go/internal/chess"
	"github.com/lgbarn/fen-extract-go/internal/errors"
	"github.com/lgbarn/fen-extract-go/internal/fen"
	"github.com/lgbarn/fen-extract-go/internal/hashing"
)

// FENPattern represents a piece placement pattern to match.
// Supports wildcards:
//   - ? matches any square (empty or occupied)
//   - ! matches any non-empty square
//   - * matches zero or more of anything
//   - A matches any white piece
//   - a matches any black piece
//   - _ matches empty square
type FENPattern struct {
	Pattern string
	Label   string // optional label for matched position
	Hash    uint64 // position hash for exact FEN matches
	IsExact bool   // true if this is a complete FEN (no wildcards)
	ranks   []string
}

// PositionMatcher selects positions by exact FEN or placement pattern.
type PositionMatcher struct {
	patterns    []*FENPattern
	exactHashes map[uint64]*FENPattern
}

// NewPositionMatcher creates a new position matcher.
func NewPositionMatcher() *PositionMatcher {
	return &PositionMatcher{
		exactHashes: make(map[uint64]*FENPattern),
	}
}

// AddFEN adds an exact position to match. Move counters are ignored.
func (pm *PositionMatcher) AddFEN(text string, label string) error {
	p, err := fen.Parse(text)
	if err != nil {
		return err
	}

	hash := hashing.GenerateZobristHash(p)
	pattern := &FENPattern{
		Pattern: text,
		Label:   label,
		Hash:    hash,
		IsExact: true,
	}

	pm.patterns = append(pm.patterns, pattern)
	pm.exactHashes[hash] = pattern
	return nil
}

// AddPattern adds a placement pattern with wildcards. The pattern must
// have eight '/'-separated ranks. With includeInvert the colour-flipped
// pattern is added too.
func (pm *PositionMatcher) AddPattern(pattern string, label string, includeInvert bool) error {
	ranks := strings.Split(pattern, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("pattern %q has %d ranks, want %d: %w",
			pattern, len(ranks), chess.BoardSize, errors.ErrInvalidConfig)
	}
	pm.patterns = append(pm.patterns, &FENPattern{Pattern: pattern, Label: label, ranks: ranks})

	if includeInvert {
		inverted := invertPattern(pattern)
		pm.patterns = append(pm.patterns, &FENPattern{
			Pattern: inverted,
			Label:   label,
			ranks:   strings.Split(inverted, "/"),
		})
	}
	return nil
}

// Match returns the first pattern p matches, or nil.
func (pm *PositionMatcher) Match(p chess.Position) *FENPattern {
	if len(pm.patterns) == 0 {
		return nil
	}

	// Exact hashes first
	if pattern, ok := pm.exactHashes[hashing.GenerateZobristHash(p)]; ok {
		return pattern
	}

	var boardRanks [chess.BoardSize]string
	converted := false
	for _, pattern := range pm.patterns {
		if pattern.IsExact {
			continue
		}
		if !converted {
			boardRanks = positionToRanks(p)
			converted = true
		}
		if matchRanks(boardRanks, pattern.ranks) {
			return pattern
		}
	}
	return nil
}

// matchRanks checks every rank of the board against the pattern.
func matchRanks(boardRanks [chess.BoardSize]string, patternRanks []string) bool {
	for i, patternRank := range patternRanks {
		if !matchRank(boardRanks[i], patternRank) {
			return false
		}
	}
	return true
}

// positionToRanks converts a position to rank strings (rank 8 first),
// one byte per square with '_' for empty.
func positionToRanks(p chess.Position) [chess.BoardSize]string {
	var ranks [chess.BoardSize]string
	cells := p.Cells()

	for row := 0; row < chess.BoardSize; row++ {
		var sb strings.Builder
		for _, piece := range cells[row*chess.BoardSize : (row+1)*chess.BoardSize] {
			sb.WriteByte(pieceToChar(piece))
		}
		ranks[row] = sb.String()
	}
	return ranks
}

// pieceToChar converts a piece to its FEN letter, '_' for empty.
func pieceToChar(piece chess.Piece) byte {
	if !piece.IsValid() {
		return '_'
	}
	return piece.Letter()
}

// matchRank matches a board rank string against a pattern rank.
func matchRank(boardRank, patternRank string) bool {
	bi := 0 // board index
	pi := 0 // pattern index

	for pi < len(patternRank) {
		if bi >= len(boardRank) && patternRank[pi] != '*' {
			return false
		}

		c := patternRank[pi]

		switch c {
		case '*':
			pi++
			if pi >= len(patternRank) {
				return true // * at end matches rest
			}
			for bi <= len(boardRank) {
				if matchRank(boardRank[bi:], patternRank[pi:]) {
					return true
				}
				bi++
			}
			return false

		case '?':
			bi++
			pi++

		case '!':
			if boardRank[bi] == '_' {
				return false
			}
			bi++
			pi++

		case 'A':
			if boardRank[bi] < 'A' || boardRank[bi] > 'Z' {
				return false
			}
			bi++
			pi++

		case 'a':
			if boardRank[bi] < 'a' || boardRank[bi] > 'z' {
				return false
			}
			bi++
			pi++

		case '1', '2', '3', '4', '5', '6', '7', '8':
			// N empty squares
			count := int(c - '0')
			for i := 0; i < count; i++ {
				if bi >= len(boardRank) || boardRank[bi] != '_' {
					return false
				}
				bi++
			}
			pi++

		default:
			// Exact piece or '_'
			if boardRank[bi] != c {
				return false
			}
			bi++
			pi++
		}
	}

	return bi == len(boardRank)
}

// invertPattern swaps colours and mirrors the rank order.
func invertPattern(pattern string) string {
	var result strings.Builder

	for _, c := range pattern {
		switch {
		case c >= 'A' && c <= 'Z':
			result.WriteRune(c + 32)
		case c >= 'a' && c <= 'z':
			result.WriteRune(c - 32)
		default:
			result.WriteRune(c)
		}
	}

	ranks := strings.Split(result.String(), "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	return strings.Join(ranks, "/")
}

// PatternCount returns the number of patterns.
func (pm *PositionMatcher) PatternCount() int {
	return len(pm.patterns)
}
