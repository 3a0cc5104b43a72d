package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// PersistError is returned when matches could not be written to disk.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("writing %s failed", e.Path)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Cause returns the underlying filesystem error.
func (e *PersistError) Cause() error { return e.Err }

// MarshalIndent encodes v with two-space indentation and without HTML
// escaping or a trailing newline.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteJSON writes indented JSON to w followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	output, err := MarshalIndent(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// SaveJSON writes v as indented JSON to path, replacing any existing file.
func SaveJSON(path string, v any) error {
	output, err := MarshalIndent(v)
	if err != nil {
		return &PersistError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, output, 0644); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	return nil
}
