package output

import (
	"fmt"

	"github.com/lgbarn/fen-extract-go/internal/chess"
	"github.com/lgbarn/fen-extract-go/internal/errors"
)

// JSONPosition represents a processed line in JSON format.
type JSONPosition struct {
	Source         string `json:"source,omitempty"`
	Line           int    `json:"line,omitempty"`
	Input          string `json:"input"`
	FEN            string `json:"fen,omitempty"`
	SideToMove     string `json:"sideToMove,omitempty"` // "white" or "black"
	Castling       string `json:"castling,omitempty"`
	EnPassant      string `json:"enPassant,omitempty"`
	HalfMoveClock  *uint  `json:"halfMoveClock,omitempty"`
	FullMoveNumber uint   `json:"fullMoveNumber,omitempty"`
	Zobrist        string `json:"zobrist,omitempty"`
	Duplicate      bool   `json:"duplicate,omitempty"`
	Match          string `json:"match,omitempty"`
	Error          string `json:"error,omitempty"`
	ErrorKind      string `json:"errorKind,omitempty"`
}

// JSONOutput holds all records plus totals.
type JSONOutput struct {
	Positions  []*JSONPosition `json:"positions"`
	Total      int             `json:"total"`
	Valid      int             `json:"valid"`
	Invalid    int             `json:"invalid"`
	Duplicates int             `json:"duplicates"`
}

// RecordToJSON converts a record to its JSON form.
func RecordToJSON(r Record) *JSONPosition {
	jp := &JSONPosition{
		Source: r.Source,
		Line:   r.Line,
		Input:  r.Input,
	}

	if r.Err != nil {
		jp.Error = r.Err.Error()
		if kind, ok := errors.KindOf(r.Err); ok {
			jp.ErrorKind = kind.String()
		}
		return jp
	}

	p := r.Position
	half := p.HalfMoveClock()
	jp.FEN = r.FEN
	jp.SideToMove = "white"
	if p.SideToMove() == chess.Black {
		jp.SideToMove = "black"
	}
	jp.Castling = p.Castling().String()
	jp.EnPassant = "-"
	if sq, ok := p.EnPassant(); ok {
		jp.EnPassant = sq.String()
	}
	jp.HalfMoveClock = &half
	jp.FullMoveNumber = p.FullMoveNumber()
	jp.Zobrist = fmt.Sprintf("%016x", r.Zobrist)
	jp.Duplicate = r.Duplicate
	jp.Match = r.Match
	return jp
}
