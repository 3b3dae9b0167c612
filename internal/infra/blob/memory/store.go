// Package memory provides an in-process blob store for tests.
package memory

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	blobcore "rostercore/internal/blob/core"
)

var _ blobcore.Store = (*Store)(nil)

type object struct {
	data        []byte
	contentType string
	updatedAt   time.Time
}

// Store keeps blobs in a map guarded by a mutex.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
}

// NewStore constructs an empty in-memory blob store.
func NewStore() *Store {
	return &Store{objects: make(map[string]object)}
}

// Put stores the object under key, replacing any previous content.
func (s *Store) Put(_ context.Context, key string, r io.Reader, opts blobcore.PutOptions) (blobcore.Info, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return blobcore.Info{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	obj := object{data: data, contentType: opts.ContentType, updatedAt: time.Now().UTC()}
	s.objects[key] = obj
	return infoFor(key, obj), nil
}

// Get returns the object content and metadata.
func (s *Store) Get(_ context.Context, key string) (io.ReadCloser, blobcore.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, blobcore.Info{}, blobcore.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), infoFor(key, obj), nil
}

// Head returns object metadata without content.
func (s *Store) Head(_ context.Context, key string) (blobcore.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return blobcore.Info{}, blobcore.ErrNotFound
	}
	return infoFor(key, obj), nil
}

// Delete removes the object. Deleting a missing key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// List returns metadata for all objects under prefix, sorted by key.
func (s *Store) List(_ context.Context, prefix string) ([]blobcore.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []blobcore.Info
	for key, obj := range s.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, infoFor(key, obj))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// PresignURL is not supported by the in-memory driver.
func (s *Store) PresignURL(context.Context, string, blobcore.SignedURLOptions) (string, error) {
	return "", blobcore.ErrUnsupported
}

// Driver identifies this implementation.
func (s *Store) Driver() string { return "memory" }

func infoFor(key string, obj object) blobcore.Info {
	return blobcore.Info{
		Key:         key,
		Size:        int64(len(obj.data)),
		ContentType: obj.contentType,
		UpdatedAt:   obj.updatedAt,
	}
}
