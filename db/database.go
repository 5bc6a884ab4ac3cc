package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"attorney_directory_go/models"

	"github.com/rs/zerolog/log"
)

// ErrObjectNotFound is returned by a Blob when the key does not exist
var ErrObjectNotFound = errors.New("object not found")

// Blob is the byte-level medium the attorney document is kept in
type Blob interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Exists(ctx context.Context, key string) (bool, error)
}

// StorageError reports a failed read or write of the attorney document
type StorageError struct {
	Op  string // "read" or "write"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s attorney document %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// AttorneyFile is the flat-file database: one JSON array holding every
// record. Each call reads or rewrites the whole document and there is no
// locking, so concurrent read-modify-write cycles can lose updates.
type AttorneyFile struct {
	blob Blob
	key  string
}

// Attorneys is the document used by the HTTP handlers
var Attorneys *AttorneyFile

// NewAttorneyFile binds the document at key inside blob
func NewAttorneyFile(blob Blob, key string) *AttorneyFile {
	return &AttorneyFile{blob: blob, key: key}
}

// Initialize sets the global attorney document
func Initialize(blob Blob, key string) error {
	if blob == nil {
		return fmt.Errorf("storage not initialized")
	}
	if key == "" {
		return fmt.Errorf("attorney document key is empty")
	}

	Attorneys = NewAttorneyFile(blob, key)
	log.Info().Str("key", key).Msg("Attorney document bound")
	return nil
}

// Key returns the document key
func (f *AttorneyFile) Key() string {
	return f.key
}

// Exists reports whether the document has been created
func (f *AttorneyFile) Exists(ctx context.Context) (bool, error) {
	ok, err := f.blob.Exists(ctx, f.key)
	if err != nil {
		return false, &StorageError{Op: "read", Key: f.key, Err: err}
	}
	return ok, nil
}

// ReadAll parses the whole document. A missing or unparsable document is a
// read failure.
func (f *AttorneyFile) ReadAll(ctx context.Context) ([]models.Attorney, error) {
	data, err := f.blob.Read(ctx, f.key)
	if err != nil {
		return nil, &StorageError{Op: "read", Key: f.key, Err: err}
	}

	var attorneys []models.Attorney
	if err := json.Unmarshal(data, &attorneys); err != nil {
		return nil, &StorageError{Op: "read", Key: f.key, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if attorneys == nil {
		// "null" is treated as an empty collection
		attorneys = []models.Attorney{}
	}
	return attorneys, nil
}

// WriteAll replaces the whole document with attorneys, pretty-printed with
// a two-space indent.
func (f *AttorneyFile) WriteAll(ctx context.Context, attorneys []models.Attorney) error {
	if attorneys == nil {
		attorneys = []models.Attorney{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(attorneys); err != nil {
		return &StorageError{Op: "write", Key: f.key, Err: err}
	}

	// Encode adds a trailing newline; the document is a bare array
	data := bytes.TrimRight(buf.Bytes(), "\n")
	if err := f.blob.Write(ctx, f.key, data); err != nil {
		return &StorageError{Op: "write", Key: f.key, Err: err}
	}
	return nil
}
