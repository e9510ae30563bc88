package storage

import (
	"io"

	"jobspy-client/models"
)

// FileSaver publishes a named artifact, the CLI counterpart of a browser download.
// It returns the final location of the artifact.
type FileSaver interface {
	Save(name string, r io.Reader) (string, error)
}

// JobWriter is the interface any tabular export sink must satisfy.
type JobWriter interface {
	Write(jobs []models.JobResult) error
	Close() error
}
