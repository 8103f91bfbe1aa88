// Package fen converts chess positions to and from Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/fen-extract-go/internal/chess"
	"github.com/lgbarn/fen-extract-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// numFields is the number of space-separated FEN fields.
const numFields = 6

// Encode converts a position to its canonical FEN string.
func Encode(p chess.Position) string {
	var sb strings.Builder
	sb.Grow(len(InitialFEN) + 8)

	writePiecePlacement(&sb, p)
	sb.WriteByte(' ')
	writeSideToMove(&sb, p)
	sb.WriteByte(' ')
	sb.WriteString(p.Castling().String())
	sb.WriteByte(' ')
	writeEnPassant(&sb, p)
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(p.HalfMoveClock()), 10))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(p.FullMoveNumber()), 10))

	return sb.String()
}

// writePiecePlacement writes the eight rank fields, rank 8 first.
func writePiecePlacement(sb *strings.Builder, p chess.Position) {
	cells := p.Cells()
	for row := 0; row < chess.BoardSize; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		emptyCount := 0
		for _, piece := range cells[row*chess.BoardSize : (row+1)*chess.BoardSize] {
			if piece == chess.NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, p chess.Position) {
	if p.SideToMove() == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, p chess.Position) {
	if sq, ok := p.EnPassant(); ok {
		sb.WriteString(sq.String())
	} else {
		sb.WriteByte('-')
	}
}

// Parse decodes a FEN string. It either returns the complete position or a
// *errors.FENError naming the first offending field; there is no partial result.
func Parse(text string) (chess.Position, error) {
	fields := strings.Split(text, " ")
	if len(fields) != numFields {
		return chess.Position{}, &errors.FENError{
			Kind:   errors.StructuralMismatch,
			Token:  text,
			Detail: fmt.Sprintf("%d space-separated fields, want %d", len(fields), numFields),
		}
	}
	for i, f := range fields {
		if f == "" {
			return chess.Position{}, &errors.FENError{
				Kind:   errors.StructuralMismatch,
				Token:  text,
				Detail: fmt.Sprintf("field %d is empty", i+1),
			}
		}
	}

	var s chess.Setup
	var err error

	if s.Cells, err = parsePiecePlacement(fields[0]); err != nil {
		return chess.Position{}, err
	}
	if s.ToMove, err = parseSideToMove(fields[1]); err != nil {
		return chess.Position{}, err
	}
	if s.Castling, err = parseCastlingRights(fields[2]); err != nil {
		return chess.Position{}, err
	}
	if s.EnPassant, err = parseEnPassant(fields[3], s.ToMove); err != nil {
		return chess.Position{}, err
	}
	if s.HalfMoveClock, err = parseCounter(fields[4], "half-move clock", 0); err != nil {
		return chess.Position{}, err
	}
	if s.FullMoveNumber, err = parseCounter(fields[5], "full-move number", 1); err != nil {
		return chess.Position{}, err
	}

	// Every field has been validated above, so this cannot fail.
	return chess.NewPosition(s)
}

// MustParse is like Parse but panics on error. It is meant for constants and tests.
func MustParse(text string) chess.Position {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// Normalize parses text and re-encodes it in canonical form.
func Normalize(text string) (string, error) {
	p, err := Parse(text)
	if err != nil {
		return "", err
	}
	return Encode(p), nil
}

// parsePiecePlacement decodes the eight '/'-separated rank fields.
func parsePiecePlacement(placement string) ([chess.NumSquares]chess.Piece, error) {
	var cells [chess.NumSquares]chess.Piece

	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return cells, &errors.FENError{
			Kind:   errors.StructuralMismatch,
			Field:  "piece placement",
			Token:  placement,
			Detail: fmt.Sprintf("%d ranks, want %d", len(ranks), chess.BoardSize),
		}
	}

	for row, rank := range ranks {
		if err := parseRank(rank, cells[row*chess.BoardSize:(row+1)*chess.BoardSize]); err != nil {
			err.Field = fmt.Sprintf("rank %d", chess.BoardSize-row)
			return cells, err
		}
	}
	return cells, nil
}

// parseRank fills one row of eight cells from a rank field.
func parseRank(rank string, row []chess.Piece) *errors.FENError {
	col := 0
	for i := 0; i < len(rank); i++ {
		c := rank[i]
		if c >= '1' && c <= '8' {
			col += int(c - '0')
			if col > chess.BoardSize {
				break
			}
			continue
		}

		piece, ok := chess.PieceFromLetter(c)
		if !ok {
			return &errors.FENError{
				Kind:   errors.MalformedRank,
				Token:  rank,
				Detail: fmt.Sprintf("unexpected character %q", c),
			}
		}
		if col >= chess.BoardSize {
			col++
			break
		}
		row[col] = piece
		col++
	}

	if col != chess.BoardSize {
		return &errors.FENError{
			Kind:   errors.MalformedRank,
			Token:  rank,
			Detail: fmt.Sprintf("describes %s squares, want %d", describeCount(col), chess.BoardSize),
		}
	}
	return nil
}

// describeCount keeps the message honest when scanning stopped early.
func describeCount(n int) string {
	if n > chess.BoardSize {
		return "more than 8"
	}
	return strconv.Itoa(n)
}

// parseSideToMove parses the side to move field.
func parseSideToMove(field string) (chess.Colour, error) {
	switch field {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	}
	return chess.White, &errors.FENError{
		Kind:   errors.InvalidTurnToken,
		Field:  "side to move",
		Token:  field,
		Detail: "want w or b",
	}
}

// parseCastlingRights accepts "-" or any ordering of a subset of KQkq.
func parseCastlingRights(field string) (chess.CastlingRights, error) {
	if field == "-" {
		return chess.NoCastling, nil
	}

	rights := chess.NoCastling
	for i := 0; i < len(field); i++ {
		r, ok := chess.CastlingFromLetter(field[i])
		if !ok {
			return chess.NoCastling, &errors.FENError{
				Kind:   errors.InvalidCastlingToken,
				Field:  "castling",
				Token:  field,
				Detail: fmt.Sprintf("unexpected character %q", field[i]),
			}
		}
		if rights.Has(r) {
			return chess.NoCastling, &errors.FENError{
				Kind:   errors.InvalidCastlingToken,
				Field:  "castling",
				Token:  field,
				Detail: fmt.Sprintf("duplicate %q", field[i]),
			}
		}
		rights |= r
	}
	return rights, nil
}

// parseEnPassant parses the en passant target square field. The target
// must sit on rank 6 with White to move and on rank 3 with Black to move.
func parseEnPassant(field string, toMove chess.Colour) (chess.Square, error) {
	if field == "-" {
		return chess.NoSquare, nil
	}

	sq, err := chess.ParseSquare(field)
	if err != nil {
		return chess.NoSquare, &errors.FENError{
			Kind:   errors.InvalidEnPassantToken,
			Field:  "en passant",
			Token:  field,
			Detail: "want - or a square such as e3",
		}
	}

	wantRank := byte('6')
	if toMove == chess.Black {
		wantRank = '3'
	}
	if sq.Rank() != wantRank {
		return chess.NoSquare, &errors.FENError{
			Kind:   errors.InvalidEnPassantToken,
			Field:  "en passant",
			Token:  field,
			Detail: fmt.Sprintf("target must be on rank %c when %v is to move", wantRank, toMove),
		}
	}
	return sq, nil
}

// parseCounter parses a decimal counter without sign or leading zeros.
func parseCounter(field, name string, min uint64) (uint, error) {
	invalid := func(detail string) error {
		return &errors.FENError{
			Kind:   errors.InvalidNumber,
			Field:  name,
			Token:  field,
			Detail: detail,
		}
	}

	for i := 0; i < len(field); i++ {
		if field[i] < '0' || field[i] > '9' {
			return 0, invalid("not a decimal number")
		}
	}
	if len(field) > 1 && field[0] == '0' {
		return 0, invalid("leading zero")
	}

	n, err := strconv.ParseUint(field, 10, 32)
	if err != nil {
		return 0, invalid("out of range")
	}
	if n < min {
		return 0, invalid(fmt.Sprintf("must be at least %d", min))
	}
	return uint(n), nil
}
