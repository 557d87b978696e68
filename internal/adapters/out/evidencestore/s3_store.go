// Package evidencestore provides the S3-compatible object storage adapter for
// completion evidence photos. Works against AWS S3 as well as MinIO and other
// S3-compatible backends via a custom endpoint.
package evidencestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"
	"jewelflow/internal/core/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var _ ports.EvidenceStorage = (*S3EvidenceStore)(nil)

// Config holds the object storage connection settings.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// S3EvidenceStore stores evidence payloads as S3 objects. Object keys are
// derived from the (order, stage) pair, so a re-upload after a failed
// completion overwrites the previous object.
type S3EvidenceStore struct {
	client  *s3.Client
	bucket  string
	timeout time.Duration
}

// NewS3EvidenceStore creates an evidence store backed by an S3-compatible
// bucket.
func NewS3EvidenceStore(cfg Config) (*S3EvidenceStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("evidence storage bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("evidence storage credentials are required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(normalizeEndpoint(cfg.Endpoint, cfg.UseSSL))
			o.UsePathStyle = true
		}
	})

	return &S3EvidenceStore{
		client:  client,
		bucket:  cfg.Bucket,
		timeout: 30 * time.Second,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet. Intended to be
// called once during application startup.
func (s *S3EvidenceStore) EnsureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Store uploads the payload and returns the object key as the opaque
// evidence reference.
func (s *S3EvidenceStore) Store(
	ctx context.Context,
	orderID kernel.UUID,
	stage order.Stage,
	payload io.Reader,
	contentType string,
) (string, error) {
	if err := orderID.Validate(); err != nil {
		return "", err
	}
	if payload == nil {
		return "", errors.New("evidence payload is required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := objectKey(orderID, stage)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        payload,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store evidence object: %w", err)
	}

	return key, nil
}

// objectKey builds the deterministic storage key for an evidence payload.
func objectKey(orderID kernel.UUID, stage order.Stage) string {
	return fmt.Sprintf("evidence/%s/%s", orderID.String(), strings.ToLower(stage.String()))
}

func normalizeEndpoint(endpoint string, useSSL bool) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}
