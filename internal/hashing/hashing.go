// Package hashing provides Zobrist keys and duplicate detection for chess positions.
package hashing

import (
	"math/rand"

	"github.com/lgbarn/fen-extract-go/internal/chess"
)

// Zobrist tables, filled from a fixed seed so keys are stable across runs.
var (
	zobristPieces     [16][chess.NumSquares]uint64 // indexed by chess.Piece
	zobristCastling   [16]uint64                   // indexed by chess.CastlingRights
	zobristEnPassant  [chess.BoardSize]uint64      // indexed by file
	zobristSideToMove uint64                       // XOR when black is to move
)

func init() {
	rng := rand.New(rand.NewSource(0x1234567890ABCDEF))

	for piece := range zobristPieces {
		for sq := range zobristPieces[piece] {
			zobristPieces[piece][sq] = rng.Uint64()
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.Uint64()
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.Uint64()
	}
	zobristSideToMove = rng.Uint64()
}

// GenerateZobristHash returns the Zobrist key of a position. Move counters
// are not part of the key.
func GenerateZobristHash(p chess.Position) uint64 {
	var hash uint64
	cells := p.Cells()
	for sq, piece := range cells {
		if piece != chess.NoPiece {
			hash ^= zobristPieces[piece][sq]
		}
	}

	hash ^= zobristCastling[p.Castling()&chess.AllCastling]

	if ep, ok := p.EnPassant(); ok {
		hash ^= zobristEnPassant[ep.File()-chess.FirstFile]
	}
	if p.SideToMove() == chess.Black {
		hash ^= zobristSideToMove
	}
	return hash
}

// HashCode is a cheap secondary hash used to confirm Zobrist matches.
type HashCode uint32

// WeakHash sums piece codes weighted by square.
func WeakHash(p chess.Position) HashCode {
	var h HashCode
	cells := p.Cells()
	for sq, piece := range cells {
		if piece != chess.NoPiece {
			h += HashCode(piece) * HashCode(sq+1)
		}
	}
	return h
}

// PositionSignature stores identifying information about a position.
type PositionSignature struct {
	// Hash is the Zobrist key of the position
	Hash uint64
	// WeakHash is a fast hash for quick comparison
	WeakHash HashCode
	// Position is kept for exact comparison
	Position chess.Position
}

// DuplicateDetector tracks seen positions.
type DuplicateDetector struct {
	// hashTable stores seen signatures by Zobrist key
	hashTable map[uint64][]PositionSignature
	// useExactMatch also requires equal move counters
	useExactMatch bool
	// maxCapacity bounds the number of stored signatures (0 = unlimited)
	maxCapacity int
	// entries is the number of stored signatures
	entries int
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	if maxCapacity < 0 {
		maxCapacity = 0
	}
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]PositionSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// CheckAndAdd checks if a position was seen before and records it.
// Returns true if the position is a duplicate. Once the detector is full,
// new positions are still checked but no longer recorded.
func (d *DuplicateDetector) CheckAndAdd(p chess.Position) bool {
	sig := PositionSignature{
		Hash:     GenerateZobristHash(p),
		WeakHash: WeakHash(p),
		Position: p,
	}

	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}

	if d.IsFull() {
		return false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.entries++
	return false
}

// signaturesMatch checks if two position signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b PositionSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.useExactMatch {
		return a.Position == b.Position
	}
	return sameIgnoringCounters(a.Position, b.Position)
}

// sameIgnoringCounters compares everything except the two move counters.
func sameIgnoringCounters(a, b chess.Position) bool {
	sa, sb := a.Setup(), b.Setup()
	sa.HalfMoveClock, sa.FullMoveNumber = 0, 0
	sb.HalfMoveClock, sb.FullMoveNumber = 0, 0
	return sa == sb
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of recorded unique positions.
func (d *DuplicateDetector) UniqueCount() int {
	return d.entries
}

// IsFull returns true if the detector has reached its capacity limit.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.entries >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]PositionSignature)
	d.entries = 0
	d.duplicateCount = 0
}
