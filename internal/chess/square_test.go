package chess

import (
	stderrors "errors"
	"testing"

	"github.com/lgbarn/fen-extract-go/internal/errors"
)

func TestSquareMapping(t *testing.T) {
	tests := []struct {
		text string
		sq   Square
	}{
		{"a8", 0},
		{"h8", 7},
		{"a1", 56},
		{"h1", 63},
		{"e4", 36},
		{"e3", 44},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseSquare(tt.text)
			if err != nil {
				t.Fatalf("ParseSquare(%q) error = %v", tt.text, err)
			}
			if got != tt.sq {
				t.Errorf("ParseSquare(%q) = %d; want %d", tt.text, got, tt.sq)
			}
			if s := tt.sq.String(); s != tt.text {
				t.Errorf("Square(%d).String() = %q; want %q", tt.sq, s, tt.text)
			}
		})
	}
}

func TestSquareRoundTripAll(t *testing.T) {
	for i := 0; i < NumSquares; i++ {
		sq := Square(i)
		back, err := ParseSquare(sq.String())
		if err != nil {
			t.Fatalf("ParseSquare(%q) error = %v", sq.String(), err)
		}
		if back != sq {
			t.Errorf("ParseSquare(%q) = %d; want %d", sq.String(), back, sq)
		}
		// index = (8 - rank) * 8 + (file - 'a')
		want := int('8'-sq.Rank())*8 + int(sq.File()-'a')
		if want != i {
			t.Errorf("square %d has file %c rank %c", i, sq.File(), sq.Rank())
		}
	}
}

func TestParseSquareInvalid(t *testing.T) {
	for _, s := range []string{"", "e", "e44", "i1", "a0", "a9", "z9", "E4", "4e"} {
		t.Run(s, func(t *testing.T) {
			sq, err := ParseSquare(s)
			if !stderrors.Is(err, errors.ErrInvalidSquare) {
				t.Errorf("ParseSquare(%q) error = %v; want ErrInvalidSquare", s, err)
			}
			if sq != NoSquare {
				t.Errorf("ParseSquare(%q) = %d; want NoSquare", s, sq)
			}
		})
	}
}

func TestNoSquareString(t *testing.T) {
	if NoSquare.String() != "-" {
		t.Errorf("NoSquare.String() = %q", NoSquare.String())
	}
	if NoSquare.IsValid() {
		t.Error("NoSquare.IsValid() = true")
	}
}
