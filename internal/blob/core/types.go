// Package core defines the blob storage contract used for exported report
// artifacts.
package core

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("blob: object not found")

// ErrUnsupported is returned by drivers that do not implement an optional
// capability such as presigned URLs.
var ErrUnsupported = errors.New("blob: operation not supported by driver")

// Info describes a stored object.
type Info struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
}

// PutOptions carries metadata for object writes.
type PutOptions struct {
	ContentType string
}

// SignedURLOptions controls presigned URL generation.
type SignedURLOptions struct {
	Expiry time.Duration
}

// Store is the blob driver contract. Keys are slash-separated paths such as
// "reports/<groupID>/<start>_<end>.csv".
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (io.ReadCloser, Info, error)
	Head(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Info, error)
	PresignURL(ctx context.Context, key string, opts SignedURLOptions) (string, error)
	Driver() string
}
