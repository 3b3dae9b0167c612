// Package fs stores blobs as files under a root directory. Content type
// metadata lives in a sidecar file next to each object.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	blobcore "rostercore/internal/blob/core"
)

var _ blobcore.Store = (*Store)(nil)

const metaSuffix = ".ctype"

// Store writes blobs beneath root, one file per key.
type Store struct {
	root string
}

// NewStore creates the root directory if needed and returns a store over it.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("fs blob store requires a root directory")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) pathFor(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.root, cleaned), nil
}

// Put writes the object to disk, replacing any previous content.
func (s *Store) Put(_ context.Context, key string, r io.Reader, opts blobcore.PutOptions) (blobcore.Info, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return blobcore.Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return blobcore.Info{}, fmt.Errorf("create blob directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return blobcore.Info{}, fmt.Errorf("create blob file: %w", err)
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return blobcore.Info{}, fmt.Errorf("write blob file: %w", err)
	}
	if opts.ContentType != "" {
		if err := os.WriteFile(path+metaSuffix, []byte(opts.ContentType), 0o644); err != nil {
			return blobcore.Info{}, fmt.Errorf("write blob metadata: %w", err)
		}
	}
	info, err := s.Head(context.Background(), key)
	if err != nil {
		return blobcore.Info{Key: key, Size: size, ContentType: opts.ContentType}, nil
	}
	return info, nil
}

// Get opens the object for reading.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, blobcore.Info, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, blobcore.Info{}, err
	}
	info, err := s.Head(ctx, key)
	if err != nil {
		return nil, blobcore.Info{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, blobcore.Info{}, fmt.Errorf("open blob file: %w", err)
	}
	return f, info, nil
}

// Head stats the object.
func (s *Store) Head(_ context.Context, key string) (blobcore.Info, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return blobcore.Info{}, err
	}
	stat, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return blobcore.Info{}, blobcore.ErrNotFound
	}
	if err != nil {
		return blobcore.Info{}, fmt.Errorf("stat blob file: %w", err)
	}
	info := blobcore.Info{
		Key:       key,
		Size:      stat.Size(),
		UpdatedAt: stat.ModTime().UTC(),
	}
	if meta, err := os.ReadFile(path + metaSuffix); err == nil {
		info.ContentType = string(meta)
	}
	return info, nil
}

// Delete removes the object and its metadata sidecar. Missing keys are not
// an error.
func (s *Store) Delete(_ context.Context, key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove blob file: %w", err)
	}
	if err := os.Remove(path + metaSuffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove blob metadata: %w", err)
	}
	return nil
}

// List walks the tree under prefix and returns object metadata sorted by key.
func (s *Store) List(ctx context.Context, prefix string) ([]blobcore.Info, error) {
	var out []blobcore.Info
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, metaSuffix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := s.Head(ctx, key)
		if err != nil {
			return err
		}
		out = append(out, info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk blob root: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// PresignURL is not supported by the filesystem driver.
func (s *Store) PresignURL(context.Context, string, blobcore.SignedURLOptions) (string, error) {
	return "", blobcore.ErrUnsupported
}

// Driver identifies this implementation.
func (s *Store) Driver() string { return "fs" }

// Root returns the directory blobs are stored under.
func (s *Store) Root() string { return s.root }
