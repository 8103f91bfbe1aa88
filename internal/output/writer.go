package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/fen-extract-go/internal/config"
)

// PositionWriter is the interface for writing processed records.
type PositionWriter interface {
	// WriteRecord writes a single record to the output.
	WriteRecord(r Record) error

	// Close writes any pending output.
	Close() error
}

// NewPositionWriter returns the writer selected by cfg.Format.
func NewPositionWriter(w io.Writer, cfg *config.Config) PositionWriter {
	if cfg.Format == config.JSONFormat {
		return NewJSONWriter(w)
	}
	return NewTextWriter(w, cfg.ShowBoard)
}

// TextWriter writes one canonical FEN per valid, non-duplicate record.
// Failed records are left to the caller's log.
type TextWriter struct {
	w         io.Writer
	showBoard bool
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, showBoard bool) *TextWriter {
	return &TextWriter{w: w, showBoard: showBoard}
}

// WriteRecord writes the record's FEN and, if enabled, its diagram.
func (tw *TextWriter) WriteRecord(r Record) error {
	if r.Err != nil || r.Duplicate {
		return nil
	}
	if _, err := io.WriteString(tw.w, r.FEN+"\n"); err != nil {
		return err
	}
	if tw.showBoard {
		if _, err := io.WriteString(tw.w, Diagram(r.Position)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the text writer (no-op, it writes immediately).
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter buffers every record and writes a single document on Close.
type JSONWriter struct {
	w   io.Writer
	out JSONOutput
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:   w,
		out: JSONOutput{Positions: make([]*JSONPosition, 0)},
	}
}

// WriteRecord adds a record to the pending document.
func (jw *JSONWriter) WriteRecord(r Record) error {
	jw.out.Positions = append(jw.out.Positions, RecordToJSON(r))
	jw.out.Total++
	switch {
	case r.Err != nil:
		jw.out.Invalid++
	case r.Duplicate:
		jw.out.Valid++
		jw.out.Duplicates++
	default:
		jw.out.Valid++
	}
	return nil
}

// Close writes the document.
func (jw *JSONWriter) Close() error {
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(&jw.out)
}
