package finlit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyLedger is returned when an analysis needs transactions and the
// ledger has none.
var ErrEmptyLedger = errors.New("ledger has no transactions")

// LoadError locates a problem in a ledger file.
type LoadError struct {
	Path string
	Line int // 0 when the problem is not tied to a line
	Err  error
}

func (e *LoadError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadLedger opens and decodes a ledger file.
//
// The returned error, if any, is a *LoadError. Validation problems do not fail
// the load; they are returned by Ledger.Errors with the path filled in.
func LoadLedger(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	for _, w := range ledger.warnings {
		var le *LoadError
		if errors.As(w, &le) {
			le.Path = path
		}
	}
	ledger.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ledger, nil
}

// SaveLedger writes the ledger in canonical form to path, replacing it.
func SaveLedger(path string, ledger *Ledger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", path, err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", tmp, err)
	}
	if err := EncodeLedger(f, ledger); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing ledger file %q: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}

// AppendEntries appends entries to the end of a ledger file without
// rewriting it.
func AppendEntries(path string, entries ...Entry) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()
	for _, e := range entries {
		if err := EncodeEntry(f, e); err != nil {
			return err
		}
	}
	return nil
}
