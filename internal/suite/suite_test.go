package suite

import (
	"bytes"
	"testing"

	"github.com/lgbarn/fen-extract-go/internal/errors"
	"github.com/lgbarn/fen-extract-go/internal/testutil"
)

const regressionYAML = `
name: regression
positions:
  - name: start
    fen: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
  - name: after e4
    fen: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
  - name: castling out of order
    fen: "r3k2r/8/8/8/8/8/8/R3K2R w qkQK - 0 1"
    want: "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
  - name: bad turn
    fen: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"
    error: invalid-turn
  - name: rank overflow
    fen: "pppppppp1/8/8/8/8/8/8/8 w - - 0 1"
    error: malformed-rank
  - fen: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0"
    error: invalid-number
`

func TestParseAndRun(t *testing.T) {
	s, err := Parse([]byte(regressionYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	testutil.AssertEqual(t, s.Name, "regression")
	testutil.AssertEqual(t, len(s.Positions), 6)
	testutil.AssertEqual(t, s.Positions[5].Name, "position 6", "default name")
	testutil.AssertEqual(t, *s.Positions[3].Error, errors.InvalidTurnToken)

	r := Run(s)
	for _, res := range r.Results {
		if !res.Passed {
			t.Errorf("%s failed: %s", res.Case.Name, res.Message)
		}
	}
	testutil.AssertEqual(t, r.Passed, 6)
	testutil.AssertEqual(t, r.Failed, 0)
	testutil.AssertNoError(t, r.Err())
}

func TestRunReportsFailures(t *testing.T) {
	wrongKind := errors.InvalidCastlingToken
	expectErr := errors.MalformedRank
	s := &Suite{
		Name: "failing",
		Positions: []*Case{
			{Name: "not canonical", FEN: "44/8/8/8/8/8/8/4K3 w - - 0 1"},
			{Name: "wrong kind", FEN: "8/8/8/8/8/8/8/8 x - - 0 1", Error: &wrongKind},
			{Name: "unexpected success", FEN: "8/8/8/8/8/8/8/8 w - - 0 1", Error: &expectErr},
			{Name: "unexpected failure", FEN: "8/8/8/8/8/8/8/8 w - - 0 0"},
			{Name: "fine", FEN: "8/8/8/8/8/8/8/8 w - - 0 1"},
		},
	}

	r := Run(s)
	testutil.AssertEqual(t, r.Passed, 1)
	testutil.AssertEqual(t, r.Failed, 4)
	testutil.AssertErrorIs(t, r.Err(), errors.ErrSuiteFailure)

	testutil.AssertContains(t, r.Results[0].Message, `want "44/8/8/8/8/8/8/4K3 w - - 0 1"`)
	testutil.AssertContains(t, r.Results[1].Message, "want invalid-castling")
	testutil.AssertContains(t, r.Results[2].Message, "want malformed-rank error")
	testutil.AssertErrorKind(t, r.Results[3].Err, errors.InvalidNumber)

	var buf bytes.Buffer
	r.Write(&buf, false)
	out := buf.String()
	testutil.AssertContains(t, out, "FAIL wrong kind")
	testutil.AssertContains(t, out, "failing: 1 passed, 4 failed\n")

	buf.Reset()
	r.Write(&buf, true)
	testutil.AssertContains(t, buf.String(), "ok   fine\n")
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "positions: [unclosed"},
		{"no positions", "name: empty\n"},
		{"unknown kind", "positions:\n  - fen: x\n    error: exploded\n"},
		{"want and error", "positions:\n  - fen: x\n    want: y\n    error: invalid-turn\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	path := testutil.WriteTempFile(t, "suite.yaml", "positions:\n  - fen: \"8/8/8/8/8/8/8/8 w - - 0 1\"\n")
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	testutil.AssertEqual(t, s.Name, path, "name defaults to file name")
	testutil.AssertNoError(t, Run(s).Err())

	if _, err := Load(path + ".missing"); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	kind := errors.InvalidEnPassantToken
	s := &Suite{Name: "out", Positions: []*Case{
		{Name: "ep", FEN: "8/8/8/8/8/8/8/8 w - e3 0 1", Error: &kind},
	}}
	data, err := s.Marshal()
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, string(data), "error: invalid-en-passant")

	back, err := Parse(data)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, back, s)
}
