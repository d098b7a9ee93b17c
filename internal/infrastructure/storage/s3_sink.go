// Package storage provides DocumentSink backends beyond the local file system.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/salesreport/backend/internal/infrastructure/config"
	"github.com/salesreport/backend/internal/infrastructure/printing"
)

// defaultKeyPrefix roots every report object key
const defaultKeyPrefix = "reports"

// s3API is the part of the S3 client the sink uses
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3DocumentSink stores generated reports in an S3-compatible bucket
// (AWS S3, MinIO, RustFS).
type S3DocumentSink struct {
	client    s3API
	bucket    string
	keyPrefix string
	baseURL   string
	logger    *zap.Logger
	now       func() time.Time
}

// S3DocumentSinkOption configures S3DocumentSink
type S3DocumentSinkOption func(*S3DocumentSink)

// WithLogger sets the sink logger
func WithLogger(logger *zap.Logger) S3DocumentSinkOption {
	return func(s *S3DocumentSink) {
		s.logger = logger
	}
}

// WithKeyPrefix overrides the "reports" key prefix
func WithKeyPrefix(prefix string) S3DocumentSinkOption {
	return func(s *S3DocumentSink) {
		s.keyPrefix = strings.Trim(prefix, "/")
	}
}

// NewS3DocumentSink builds a client with static credentials from cfg.
func NewS3DocumentSink(cfg *config.StorageConfig, opts ...S3DocumentSinkOption) (*S3DocumentSink, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newS3DocumentSink(client, cfg.Bucket, cfg.BaseURL, opts...), nil
}

func newS3DocumentSink(client s3API, bucket, baseURL string, opts ...S3DocumentSinkOption) *S3DocumentSink {
	s := &S3DocumentSink{
		client:    client,
		bucket:    bucket,
		keyPrefix: defaultKeyPrefix,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *S3DocumentSink) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating report bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Store uploads the document as {prefix}/{year}/{month}/{name}. A single
// PutObject either lands the whole object or nothing.
func (s *S3DocumentSink) Store(ctx context.Context, req *printing.StoreRequest) (*printing.StoreResult, error) {
	if req == nil {
		return nil, printing.NewRenderError(printing.ErrCodeStorageFailed, "store request is nil", nil)
	}
	if req.Name == "" || strings.ContainsAny(req.Name, "/\\") || strings.Contains(req.Name, "..") {
		return nil, printing.NewRenderError(printing.ErrCodeStorageFailed, "invalid document name", nil)
	}
	if len(req.Data) == 0 {
		return nil, printing.NewRenderError(printing.ErrCodeStorageFailed, "document data is empty", nil)
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}

	now := s.now()
	key := path.Join(s.keyPrefix, fmt.Sprintf("%d", now.Year()), fmt.Sprintf("%02d", now.Month()), req.Name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(req.Data),
		ContentLength: aws.Int64(int64(len(req.Data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, printing.NewRenderError(printing.ErrCodeStorageFailed, "failed to upload document", err)
	}

	s.logger.Info("report stored",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("size", len(req.Data)))

	return &printing.StoreResult{
		Path: key,
		URL:  s.url(key),
		Size: int64(len(req.Data)),
	}, nil
}

// Open streams a stored object. The caller closes the reader.
func (s *S3DocumentSink) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := s.checkKey(key); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, printing.NewRenderError(printing.ErrCodeNotFound, "document not found", err)
		}
		return nil, printing.NewRenderError(printing.ErrCodeStorageFailed, "failed to open document", err)
	}
	return out.Body, nil
}

// Delete removes an object; a missing object is not an error.
func (s *S3DocumentSink) Delete(ctx context.Context, key string) error {
	if err := s.checkKey(key); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isNotFound(err) {
		return printing.NewRenderError(printing.ErrCodeStorageFailed, "failed to delete document", err)
	}
	return nil
}

// Bucket returns the bucket name
func (s *S3DocumentSink) Bucket() string {
	return s.bucket
}

// checkKey keeps callers inside the report prefix.
func (s *S3DocumentSink) checkKey(key string) error {
	if !strings.HasPrefix(key, s.keyPrefix+"/") || strings.Contains(key, "..") {
		return printing.NewRenderError(printing.ErrCodeNotFound, "document not found", nil)
	}
	return nil
}

func (s *S3DocumentSink) url(key string) string {
	if s.baseURL == "" {
		return "s3://" + s.bucket + "/" + key
	}
	return s.baseURL + "/" + key
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}
	// some S3-compatible services only surface the code in the message
	return strings.Contains(err.Error(), "NoSuchKey") || strings.Contains(err.Error(), "NotFound")
}

var _ printing.DocumentSink = (*S3DocumentSink)(nil)
