package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileBackend persists the collection as a single JSON document on disk, the
// same layout the API's data file has always used: a top-level object mapping
// patient id to the six stored attributes.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend reading and writing the document at path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Load reads the whole document. A missing file is an empty collection so a
// fresh deployment works before the first write; unreadable content is an I/O
// error and undecodable content a FormatError.
func (f *FileBackend) Load() (Collection, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Collection{}, nil
		}
		return nil, err
	}

	var data Collection
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &FormatError{Err: err}
	}
	return data, nil
}

// Save rewrites the whole document. Last save wins; there is no partial-write
// protection beyond the Store mutex upstream.
func (f *FileBackend) Save(data Collection) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, raw, 0o644)
}
