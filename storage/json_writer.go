package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"jobspy-client/models"
)

// JSONWriter encodes job results as a two-space indented JSON array.
type JSONWriter struct {
	w io.Writer
}

// NewJSONWriter returns a JSONWriter writing to w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// Write encodes jobs; a nil or empty slice is written as [].
func (j *JSONWriter) Write(jobs []models.JobResult) error {
	if jobs == nil {
		jobs = []models.JobResult{}
	}
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(jobs); err != nil {
		return fmt.Errorf("json: encode: %w", err)
	}
	return nil
}

// Close is a no-op; the caller owns the underlying writer.
func (j *JSONWriter) Close() error {
	return nil
}
