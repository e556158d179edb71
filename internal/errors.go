package internal

import "fmt"

// StoreError represents errors accessing a store container
type StoreError struct {
	Path string
	Op   string // "open", "query", "read"
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// DecodeError represents a JSON decode failure at some nesting layer
type DecodeError struct {
	Container string
	Key       string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error [%s] %s: %v", e.Container, e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RecordError represents a single malformed conversation or turn record
type RecordError struct {
	Container string
	RecordID  string
	Err       error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record error [%s] %s: %v", e.Container, e.RecordID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
