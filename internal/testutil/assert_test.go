package testutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/lgbarn/fen-extract-go/internal/errors"
)

// Only success paths are exercised here: a failing assertion would fail
// this test too, since *testing.T cannot be mocked.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, 42, 42, "value should be %d", 42)
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, nil, nil)
}

func TestAssertErrorHelpers_Success(t *testing.T) {
	AssertNoError(t, nil)
	AssertNoError(t, nil, "operation should succeed")

	wrapped := fmt.Errorf("line 3: %w", &errors.FENError{Kind: errors.InvalidNumber})
	AssertErrorIs(t, wrapped, errors.ErrInvalidFEN)
	AssertErrorIs(t, wrapped, errors.ErrInvalidNumber, "kind sentinel")
	AssertErrorKind(t, wrapped, errors.InvalidNumber)
}

func TestAssertContains_Success(t *testing.T) {
	AssertContains(t, "hello world", "world")
	AssertContains(t, "test", "")
}

func TestWriteTempFile(t *testing.T) {
	path := WriteTempFile(t, "input.fen", "8/8/8/8/8/8/8/8 w - - 0 1\n")
	data, err := os.ReadFile(path)
	AssertNoError(t, err)
	AssertEqual(t, string(data), "8/8/8/8/8/8/8/8 w - - 0 1\n")
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"format string", []interface{}{"value: %d", 42}, "value: 42"},
		{"non-string", []interface{}{123}, "123"},
		{"non-string with extra args", []interface{}{123, "x"}, "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
