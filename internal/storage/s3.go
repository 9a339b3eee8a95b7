package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
)

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Store writes uploads to an S3 bucket or an S3-compatible endpoint.
type S3Store struct {
	bucket   string
	prefix   string
	uploader uploader
	logger   *zap.Logger
}

// NewS3Store builds an S3 client from cfg. Static credentials are used when both keys
// are set, otherwise the default AWS credential chain applies. A custom endpoint
// switches to path-style addressing.
func NewS3Store(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 storage: bucket is empty")
	}

	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return newS3Store(cfg.Bucket, cfg.Prefix, manager.NewUploader(client), logger), nil
}

func newS3Store(bucket, prefix string, up uploader, logger *zap.Logger) *S3Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3Store{bucket: bucket, prefix: prefix, uploader: up, logger: logger}
}

// Save implements Store.
func (s *S3Store) Save(ctx context.Context, upload Upload) (*Object, error) {
	key := objectKey(s.prefix, upload.Filename)

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(upload.Data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, &Error{Backend: "s3", Key: key, Cause: err}
	}

	s.logger.Debug("stored upload",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(upload.Data)))

	return &Object{Key: key, Location: result.Location, Size: int64(len(upload.Data))}, nil
}
