package export

import "errors"

// SerializationError reports that a report could not be encoded to JSON.
// Fatal to the current export attempt only.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string { return "serialize report: " + e.Err.Error() }
func (e *SerializationError) Unwrap() error { return e.Err }

// IOError reports a failure while creating, writing, or committing the
// report file. Temp-file cleanup has already happened by the time the
// caller sees one; the destination path was never touched.
type IOError struct {
	Stage string // "create", "write", "sync", "chmod", "close", "rename", "choose"
	Err   error
}

func (e *IOError) Error() string { return e.Stage + " report file: " + e.Err.Error() }
func (e *IOError) Unwrap() error { return e.Err }

// ClipboardError reports that the platform clipboard rejected the report.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string { return "clipboard: " + e.Err.Error() }
func (e *ClipboardError) Unwrap() error { return e.Err }

// ErrDialogCancelled marks a user-cancelled save dialog. It is a distinct
// outcome, not a failure: no file was meant to be written.
var ErrDialogCancelled = errors.New("save location selection cancelled")
