package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"jobspy-client/models"
)

// CSVWriter encodes job results as comma-separated text.
//
// The header is the JobResult field order. A nil field is an empty cell; a value
// containing a double quote, a comma or a newline is quoted with inner quotes
// doubled; anything else is written as is. Rows are joined by "\n" with no
// trailing newline.
type CSVWriter struct {
	w io.Writer
}

// NewCSVWriter returns a CSVWriter writing to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// Write encodes jobs. An empty slice writes nothing.
func (c *CSVWriter) Write(jobs []models.JobResult) error {
	if len(jobs) == 0 {
		return nil
	}

	cols := Columns()
	var buf bytes.Buffer
	buf.WriteString(strings.Join(cols, ","))

	for i := range jobs {
		buf.WriteByte('\n')
		v := reflect.ValueOf(jobs[i])
		for f := range cols {
			if f > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(escapeCSV(cellValue(v.Field(f))))
		}
	}

	if _, err := c.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("csv: write: %w", err)
	}
	return nil
}

// Close is a no-op; the caller owns the underlying writer.
func (c *CSVWriter) Close() error {
	return nil
}

var (
	columnsOnce sync.Once
	columns     []string
)

// Columns returns the JSON names of the JobResult fields in declaration order.
func Columns() []string {
	columnsOnce.Do(func() {
		t := reflect.TypeOf(models.JobResult{})
		columns = make([]string, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
			columns[i] = name
		}
	})
	return append([]string(nil), columns...)
}

func cellValue(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	default:
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return fmt.Sprint(v.Interface()), true
		}
		return string(b), true
	}
}

func escapeCSV(s string, ok bool) string {
	if !ok {
		return ""
	}
	if !strings.ContainsAny(s, "\",\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
