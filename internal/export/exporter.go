// Package export serializes diagnostic reports and writes them to disk or
// the clipboard. File writes are atomic: the destination path holds either
// its previous content or the complete new report, never a partial write.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/baikal/appdiag/internal/model"
)

// Product is the filename prefix for exported reports.
const Product = "baikal"

const fileMode = 0o600

// State tracks a single export attempt. Committed and Failed are the only
// terminal states.
type State int

const (
	StateIdle State = iota
	StateBuildingReport
	StateSerializing
	StateWritingTemp
	StateCommitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuildingReport:
		return "building_report"
	case StateSerializing:
		return "serializing"
	case StateWritingTemp:
		return "writing_temp"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// GenerateFilename formats the report filename for the given moment:
// baikal_diagnostics_YYYYMMDD_HHMMSS.json, zero-padded. The local clock is
// used consistently (never UTC) so exports sort next to the user's other
// documents.
func GenerateFilename(t time.Time) string {
	return fmt.Sprintf("%s_diagnostics_%04d%02d%02d_%02d%02d%02d.json",
		Product, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// DefaultExportDir is where reports land when the user makes no explicit
// choice: a product subdirectory of the per-user cache directory, falling
// back to the working directory when the platform reports none.
func DefaultExportDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, Product)
}

// ReportSource produces the report for one export attempt.
type ReportSource interface {
	Build(ctx context.Context) (*model.DiagnosticReport, error)
}

// LocationChooser selects a destination path, typically through a native
// save dialog. ok=false reports user cancellation, which is distinct from
// an error.
type LocationChooser interface {
	Choose(suggested string) (path string, ok bool, err error)
}

// Exporter writes reports to files or the clipboard and records the state
// of its most recent attempt.
type Exporter struct {
	mu   sync.Mutex
	last State
}

// New returns an idle Exporter.
func New() *Exporter {
	return &Exporter{last: StateIdle}
}

// LastState returns the state the most recent export attempt reached.
func (e *Exporter) LastState() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

func (e *Exporter) setState(s State) {
	e.mu.Lock()
	e.last = s
	e.mu.Unlock()
}

// Export runs a full attempt: build the report from src, serialize it, and
// write it atomically to path (empty path selects the default directory and
// a generated filename). The attempt walks BuildingReport, Serializing and
// WritingTemp, terminating in Committed or Failed. Returns the final path.
func (e *Exporter) Export(ctx context.Context, src ReportSource, path string) (string, error) {
	e.setState(StateBuildingReport)
	rep, err := src.Build(ctx)
	if err != nil {
		e.setState(StateFailed)
		return "", fmt.Errorf("build report: %w", err)
	}
	return e.ExportToFile(rep, path)
}

// ExportToFile serializes report and writes it atomically to path. An
// empty path selects DefaultExportDir plus a generated filename. On any
// failure before the final rename the temporary file is removed and the
// destination is left untouched. Returns the path written.
func (e *Exporter) ExportToFile(report *model.DiagnosticReport, path string) (string, error) {
	if path == "" {
		path = filepath.Join(DefaultExportDir(), GenerateFilename(time.Now()))
	}

	e.setState(StateSerializing)
	data, err := Marshal(report)
	if err != nil {
		e.setState(StateFailed)
		return "", &SerializationError{Err: err}
	}

	e.setState(StateWritingTemp)
	if err := writeFileAtomic(path, data, fileMode); err != nil {
		e.setState(StateFailed)
		return "", err
	}

	e.setState(StateCommitted)
	return path, nil
}

// ExportViaChooser asks chooser for a destination and writes the report
// there. Returns ErrDialogCancelled when the user aborts the dialog; the
// attempt then never left Idle.
func (e *Exporter) ExportViaChooser(report *model.DiagnosticReport, chooser LocationChooser) (string, error) {
	suggested := filepath.Join(DefaultExportDir(), GenerateFilename(time.Now()))
	path, ok, err := chooser.Choose(suggested)
	if err != nil {
		e.setState(StateFailed)
		return "", &IOError{Stage: "choose", Err: err}
	}
	if !ok {
		e.setState(StateIdle)
		return "", ErrDialogCancelled
	}
	return e.ExportToFile(report, path)
}

// ExportToClipboard serializes report compactly and hands it to sink.
func (e *Exporter) ExportToClipboard(report *model.DiagnosticReport, sink ClipboardSink) error {
	e.setState(StateSerializing)
	data, err := json.Marshal(report)
	if err != nil {
		e.setState(StateFailed)
		return &SerializationError{Err: err}
	}
	if err := sink.Write(string(data)); err != nil {
		e.setState(StateFailed)
		return &ClipboardError{Err: err}
	}
	e.setState(StateCommitted)
	return nil
}

// Marshal encodes a report as indented UTF-8 JSON without HTML escaping.
func Marshal(report *model.DiagnosticReport) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes content to a temporary file inside the target
// directory, fsyncs it, then renames it over path. A crash or failure
// mid-write cannot corrupt a previously valid report file.
func writeFileAtomic(path string, content []byte, mode os.FileMode) error {
	parent := filepath.Dir(path)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return &IOError{Stage: "create", Err: err}
	}

	tmp, err := os.CreateTemp(parent, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &IOError{Stage: "create", Err: err}
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return &IOError{Stage: "write", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &IOError{Stage: "sync", Err: err}
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return &IOError{Stage: "chmod", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Stage: "close", Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		if runtime.GOOS != "windows" {
			return &IOError{Stage: "rename", Err: err}
		}
		// Windows cannot rename over an existing file.
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			return &IOError{Stage: "rename", Err: rmErr}
		}
		if err := os.Rename(tmpPath, path); err != nil {
			return &IOError{Stage: "rename", Err: err}
		}
	}
	cleanup = false

	if dir, err := os.Open(parent); err == nil {
		_ = dir.Sync()
		_ = dir.Close()
	}
	return nil
}
