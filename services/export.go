package services

import (
	"bytes"
	"context"
	"errors"
	"io"

	"jobspy-client/models"
	"jobspy-client/storage"
	"jobspy-client/utils"
)

// File names of the exported artifacts.
const (
	JSONFileName = "jobs.json"
	CSVFileName  = "jobs.csv"
)

var errNoRemote = errors.New("no search service configured")

// Export modes, as accepted by the CLI.
const (
	ModeJSON      = "json"
	ModeCSV       = "csv"
	ModeServerCSV = "server-csv"
	ModePostgres  = "postgres"
)

// CSVExporter regenerates a CSV file for a query on the service side.
type CSVExporter interface {
	ExportCSV(ctx context.Context, q models.SearchQuery) (io.ReadCloser, error)
}

// Exporter turns a result subset into transportable artifacts.
type Exporter struct {
	saver  storage.FileSaver
	remote CSVExporter
	sink   storage.JobWriter
	logger *utils.Logger
}

// NewExporter creates an Exporter saving artifacts through saver. remote may be
// nil, in which case the server-side export always fails.
func NewExporter(saver storage.FileSaver, remote CSVExporter, logger *utils.Logger) *Exporter {
	return &Exporter{saver: saver, remote: remote, logger: logger}
}

// WithSink attaches a database sink used by ExportPostgres.
func (e *Exporter) WithSink(sink storage.JobWriter) *Exporter {
	e.sink = sink
	return e
}

// ExportJSON saves jobs as an indented JSON array and returns the file location.
func (e *Exporter) ExportJSON(jobs []models.JobResult) (string, error) {
	var buf bytes.Buffer
	if err := storage.NewJSONWriter(&buf).Write(jobs); err != nil {
		return "", &ExportError{Mode: ModeJSON, Err: err}
	}
	path, err := e.saver.Save(JSONFileName, &buf)
	if err != nil {
		return "", &ExportError{Mode: ModeJSON, Err: err}
	}
	e.logger.Info("[export] Wrote %d listings to %s", len(jobs), path)
	return path, nil
}

// ExportCSV saves jobs as CSV. With no jobs nothing is saved and the returned
// location is empty.
func (e *Exporter) ExportCSV(jobs []models.JobResult) (string, error) {
	if len(jobs) == 0 {
		e.logger.Debug("[export] Nothing to export, skipping %s", CSVFileName)
		return "", nil
	}

	var buf bytes.Buffer
	if err := storage.NewCSVWriter(&buf).Write(jobs); err != nil {
		return "", &ExportError{Mode: ModeCSV, Err: err}
	}
	path, err := e.saver.Save(CSVFileName, &buf)
	if err != nil {
		return "", &ExportError{Mode: ModeCSV, Err: err}
	}
	e.logger.Info("[export] Wrote %d listings to %s", len(jobs), path)
	return path, nil
}

// ExportServerCSV re-submits q to the service, which scrapes again and returns
// its own CSV. Local filters are not applied: the file reflects a fresh, full
// result set for q, not the current view. The body is streamed to the saver,
// which publishes the file only once it is complete.
func (e *Exporter) ExportServerCSV(ctx context.Context, q *models.SearchQuery) (string, error) {
	if q == nil {
		return "", ErrNoQuery
	}
	if e.remote == nil {
		return "", &ExportError{Mode: ModeServerCSV, Err: errNoRemote}
	}

	e.logger.Info("[export] Requesting server-side CSV for %q (fresh search, local filters ignored)", q.SearchTerm)
	body, err := e.remote.ExportCSV(ctx, *q)
	if err != nil {
		return "", &ExportError{Mode: ModeServerCSV, Err: err}
	}
	defer body.Close()

	path, err := e.saver.Save(CSVFileName, body)
	if err != nil {
		return "", &ExportError{Mode: ModeServerCSV, Err: err}
	}
	e.logger.Info("[export] Server CSV saved to %s", path)
	return path, nil
}

// ExportPostgres replaces the database snapshot with jobs and returns how many
// rows were written.
func (e *Exporter) ExportPostgres(jobs []models.JobResult) (int, error) {
	if e.sink == nil {
		return 0, ErrSinkUnavailable
	}
	if err := e.sink.Write(jobs); err != nil {
		return 0, &ExportError{Mode: ModePostgres, Err: err}
	}
	e.logger.Info("[export] Stored %d listings in table exported_jobs", len(jobs))
	return len(jobs), nil
}
