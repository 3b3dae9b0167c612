// Package s3 stores blobs in an S3-compatible bucket (AWS S3 or MinIO).
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	blobcore "rostercore/internal/blob/core"
)

var _ blobcore.Store = (*Store)(nil)

// Config carries bucket coordinates. Endpoint and path-style addressing are
// needed for MinIO; leave them empty for AWS.
type Config struct {
	Bucket       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// Store implements the blob contract against one bucket.
type Store struct {
	client *s3.Client
	bucket string
}

// NewStore resolves AWS configuration and returns a store bound to
// cfg.Bucket.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 blob store requires a bucket")
	}
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// Put uploads the object, replacing any previous content under key.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, opts blobcore.PutOptions) (blobcore.Info, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return blobcore.Info{}, fmt.Errorf("put object %q: %w", key, err)
	}
	return s.Head(ctx, key)
}

// Get downloads the object.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, blobcore.Info, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, blobcore.Info{}, blobcore.ErrNotFound
		}
		return nil, blobcore.Info{}, fmt.Errorf("get object %q: %w", key, err)
	}
	info := blobcore.Info{Key: key, Size: aws.ToInt64(out.ContentLength), ContentType: aws.ToString(out.ContentType)}
	if out.LastModified != nil {
		info.UpdatedAt = out.LastModified.UTC()
	}
	return out.Body, info, nil
}

// Head fetches object metadata.
func (s *Store) Head(ctx context.Context, key string) (blobcore.Info, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return blobcore.Info{}, blobcore.ErrNotFound
		}
		return blobcore.Info{}, fmt.Errorf("head object %q: %w", key, err)
	}
	info := blobcore.Info{Key: key, Size: aws.ToInt64(out.ContentLength), ContentType: aws.ToString(out.ContentType)}
	if out.LastModified != nil {
		info.UpdatedAt = out.LastModified.UTC()
	}
	return info, nil
}

// Delete removes the object. S3 treats deleting a missing key as success.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

// List pages through the bucket under prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]blobcore.Info, error) {
	var out []blobcore.Info
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects under %q: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			info := blobcore.Info{Key: aws.ToString(obj.Key), Size: aws.ToInt64(obj.Size)}
			if obj.LastModified != nil {
				info.UpdatedAt = obj.LastModified.UTC()
			}
			out = append(out, info)
		}
	}
	return out, nil
}

// PresignURL issues a time-limited GET URL for the object.
func (s *Store) PresignURL(ctx context.Context, key string, opts blobcore.SignedURLOptions) (string, error) {
	expiry := opts.Expiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	presigner := s3.NewPresignClient(s.client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presign object %q: %w", key, err)
	}
	return req.URL, nil
}

// Driver identifies this implementation.
func (s *Store) Driver() string { return "s3" }
