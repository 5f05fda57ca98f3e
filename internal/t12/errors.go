package t12

import (
	"errors"
	"fmt"
)

// ErrUnsupportedReportKind is returned before any document is touched when the
// requested report kind is not one of the known kinds.
var ErrUnsupportedReportKind = errors.New("unsupported report kind")

// ContainerError reports a failure to load, stage, style or save the workbook.
type ContainerError struct {
	Op   string // "stage", "load", "style", "save"
	Path string
	Err  error
}

func (e *ContainerError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("workbook %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("workbook %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *ContainerError) Unwrap() error {
	return e.Err
}

func containerError(op, path string, err error) *ContainerError {
	return &ContainerError{Op: op, Path: path, Err: err}
}
