// Package suite loads and runs YAML position suites: lists of FEN strings
// with the canonical form or the error kind each one must produce.
package suite

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lgbarn/fen-extract-go/internal/errors"
	"github.com/lgbarn/fen-extract-go/internal/fen"
)

// Suite is a named list of cases.
type Suite struct {
	Name      string  `yaml:"name"`
	Positions []*Case `yaml:"positions"`
}

// Case is one FEN string and its expected outcome. With neither Want nor
// Error set, the FEN must parse and re-encode to itself.
type Case struct {
	Name  string            `yaml:"name"`
	FEN   string            `yaml:"fen"`
	Want  string            `yaml:"want,omitempty"`
	Error *errors.ErrorKind `yaml:"error,omitempty"`
}

// CaseResult is the outcome of running one case.
type CaseResult struct {
	Case    *Case
	Passed  bool
	Got     string // Encoded FEN, empty on parse failure
	Err     error  // Parse error, if any
	Message string // Why the case failed
}

// Report collects the results of a run.
type Report struct {
	Suite   string
	Results []CaseResult
	Passed  int
	Failed  int
}

// Load reads a suite from a YAML file.
func Load(filename string) (*Suite, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", filename, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", filename, err)
	}
	if s.Name == "" {
		s.Name = filename
	}
	return s, nil
}

// Parse decodes and checks a suite document.
func Parse(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, err.Error())
	}
	if len(s.Positions) == 0 {
		return nil, fmt.Errorf("suite has no positions: %w", errors.ErrInvalidConfig)
	}
	for i, c := range s.Positions {
		if c == nil {
			return nil, fmt.Errorf("position %d is empty: %w", i+1, errors.ErrInvalidConfig)
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("position %d", i+1)
		}
		if c.Want != "" && c.Error != nil {
			return nil, fmt.Errorf("%s: want and error are exclusive: %w", c.Name, errors.ErrInvalidConfig)
		}
	}
	return &s, nil
}

// Marshal encodes a suite back to YAML.
func (s *Suite) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Run checks every case. Cases are independent; one failure does not stop the run.
func Run(s *Suite) *Report {
	r := &Report{Suite: s.Name, Results: make([]CaseResult, 0, len(s.Positions))}
	for _, c := range s.Positions {
		res := runCase(c)
		if res.Passed {
			r.Passed++
		} else {
			r.Failed++
		}
		r.Results = append(r.Results, res)
	}
	return r
}

func runCase(c *Case) CaseResult {
	res := CaseResult{Case: c}
	p, err := fen.Parse(c.FEN)
	if err == nil {
		res.Got = fen.Encode(p)
	}
	res.Err = err

	if c.Error != nil {
		kind, ok := errors.KindOf(err)
		switch {
		case err == nil:
			res.Message = fmt.Sprintf("parsed as %q, want %s error", res.Got, c.Error)
		case !ok || kind != *c.Error:
			res.Message = fmt.Sprintf("got error %v, want %s", err, c.Error)
		default:
			res.Passed = true
		}
		return res
	}

	want := c.Want
	if want == "" {
		want = c.FEN
	}
	switch {
	case err != nil:
		res.Message = err.Error()
	case res.Got != want:
		res.Message = fmt.Sprintf("encoded as %q, want %q", res.Got, want)
	default:
		res.Passed = true
	}
	return res
}

// Err returns nil when every case passed.
func (r *Report) Err() error {
	if r.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%s: %d of %d cases failed: %w", r.Suite, r.Failed, r.Failed+r.Passed, errors.ErrSuiteFailure)
}

// Write prints one line per failed case (every case when verbose) and a summary.
func (r *Report) Write(w io.Writer, verbose bool) {
	for _, res := range r.Results {
		switch {
		case !res.Passed:
			fmt.Fprintf(w, "FAIL %s: %s\n", res.Case.Name, res.Message)
		case verbose:
			fmt.Fprintf(w, "ok   %s\n", res.Case.Name)
		}
	}
	fmt.Fprintf(w, "%s: %d passed, %d failed\n", r.Suite, r.Passed, r.Failed)
}
