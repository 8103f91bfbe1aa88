package matching

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lgbarn/fen-extract-go/internal/chess"
	"github.com/lgbarn/fen-extract-go/internal/errors"
)

// PositionFilter combines placement and material matching.
type PositionFilter struct {
	PositionMatcher *PositionMatcher
	Material        *MaterialMatcher
}

// NewPositionFilter creates a filter with no criteria; it accepts everything.
func NewPositionFilter() *PositionFilter {
	return &PositionFilter{
		PositionMatcher: NewPositionMatcher(),
	}
}

// AddFENFilter adds a full FEN as an exact match, or a bare placement
// field as a wildcard pattern.
func (pf *PositionFilter) AddFENFilter(text, label string) error {
	if strings.Contains(text, " ") {
		return pf.PositionMatcher.AddFEN(text, label)
	}
	return pf.PositionMatcher.AddPattern(text, label, false)
}

// SetMaterial sets the material balance criterion.
func (pf *PositionFilter) SetMaterial(pattern string, exact bool) error {
	mm, err := NewMaterialMatcher(pattern, exact)
	if err != nil {
		return err
	}
	pf.Material = mm
	return nil
}

// LoadPatternFile loads position criteria from a file.
// File format: one criterion per line
// FEN "full fen"
// FENPattern "placement pattern"
// FENPatternI "placement pattern"   (also matches the colour-inverted position)
// Blank lines and lines starting with # are skipped.
func (pf *PositionFilter) LoadPatternFile(filename string) error {
	file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := pf.addCriterion(line); err != nil {
			return &errors.LineError{Err: err, File: filename, Line: lineNum}
		}
	}
	return scanner.Err()
}

// addCriterion parses one pattern file line.
func (pf *PositionFilter) addCriterion(line string) error {
	keyword, rest, _ := strings.Cut(line, " ")
	rest = strings.Trim(strings.TrimSpace(rest), "\"")
	label := fmt.Sprintf("%s %s", keyword, rest)

	switch keyword {
	case "FEN":
		return pf.PositionMatcher.AddFEN(rest, label)
	case "FENPattern":
		return pf.PositionMatcher.AddPattern(rest, label, false)
	case "FENPatternI":
		return pf.PositionMatcher.AddPattern(rest, label, true)
	}
	return fmt.Errorf("unknown criterion %q: %w", keyword, errors.ErrInvalidConfig)
}

// HasCriteria returns true if any criterion is set.
func (pf *PositionFilter) HasCriteria() bool {
	return pf.PositionMatcher.PatternCount() > 0 || pf.Material != nil
}

// Match reports whether p passes every criterion. label names the
// placement pattern that matched, if any.
func (pf *PositionFilter) Match(p chess.Position) (label string, ok bool) {
	if pf.Material != nil && !pf.Material.Match(p) {
		return "", false
	}
	if pf.PositionMatcher.PatternCount() == 0 {
		return "", true
	}
	if pattern := pf.PositionMatcher.Match(p); pattern != nil {
		if pattern.Label != "" {
			return pattern.Label, true
		}
		return pattern.Pattern, true
	}
	return "", false
}
