package exporters

import "fmt"

const (
	FileText      = "text"
	FileJSON      = "json"
	FileDirectory = "directory"
)

// IoError reports which of the export files could not be written.
type IoError struct {
	File string // FileText, FileJSON or FileDirectory
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("failed to write %s file %s: %v", e.File, e.Path, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}
