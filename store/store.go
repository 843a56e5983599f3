package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ariebrainware/patient-data-api/model"
)

// Collection is the whole patient document: id mapped to the stored attributes.
type Collection = map[string]model.PatientAttributes

// Backend loads and saves the entire collection. There is no partial write;
// every mutation rewrites the whole document.
type Backend interface {
	Load() (Collection, error)
	Save(Collection) error
}

// Sentinel errors for collection membership, mapped to 404/409-class responses
// by the endpoint layer.
var (
	ErrNotFound    = errors.New("patient not found")
	ErrDuplicateID = errors.New("patient with this ID already exists")
)

// FormatError signals that loaded content is not a well-formed patient mapping.
// Unlike plain I/O errors it is deterministic and never retried.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed patient data: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

const retryBackoff = 100 * time.Millisecond

// Store serializes access to a Backend. Every Update runs the full
// load-modify-save sequence under one mutex, which is the critical section the
// load/save contract requires of its callers. Backend I/O failures are retried
// a bounded number of times before surfacing.
type Store struct {
	mu      sync.Mutex
	backend Backend
	retries int
}

// New wraps backend with a mutex-guarded store. retries is the number of extra
// attempts after a failed backend call; format errors are never retried.
func New(backend Backend, retries int) *Store {
	if retries < 0 {
		retries = 0
	}
	return &Store{backend: backend, retries: retries}
}

// Load returns the current collection.
func (s *Store) Load() (Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update runs fn on the loaded collection and saves the result when fn
// succeeds. fn may mutate the map in place; any error from fn aborts the save
// and is returned unchanged.
func (s *Store) Update(fn func(Collection) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	return s.save(data)
}

func (s *Store) load() (Collection, error) {
	var data Collection
	err := s.withRetry(func() error {
		var loadErr error
		data, loadErr = s.backend.Load()
		return loadErr
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = Collection{}
	}
	return data, nil
}

func (s *Store) save(data Collection) error {
	return s.withRetry(func() error {
		return s.backend.Save(data)
	})
}

func (s *Store) withRetry(op func() error) error {
	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryBackoff)
		}
		err = op()
		if err == nil {
			return nil
		}
		var formatErr *FormatError
		if errors.As(err, &formatErr) {
			return err
		}
	}
	return err
}
