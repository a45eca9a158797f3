package storage

import (
	"alcyxob/fitness-catalog/internal/catalog"
	"alcyxob/fitness-catalog/internal/config"
	"alcyxob/fitness-catalog/internal/domain"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const snapshotContentType = "application/yaml"

// s3Object is the subset of the S3 client the snapshot store uses.
type s3Object interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3SnapshotStorage implements SnapshotStorage on an S3-compatible bucket.
type s3SnapshotStorage struct {
	client     s3Object
	bucketName string
	key        string
}

// NewS3SnapshotStorage creates the snapshot store for an S3-compatible backend.
func NewS3SnapshotStorage(ctx context.Context, cfg config.S3Config) (SnapshotStorage, error) {
	if cfg.BucketName == "" {
		return nil, errors.New("s3 bucket name is required for catalog snapshots")
	}

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(ctx,
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config for S3: %w", err)
	}

	// Path-style addressing is required by most S3-compatible services (MinIO etc.)
	client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	slog.Info("catalog snapshot storage initialized", "endpoint", cfg.Endpoint, "bucket", cfg.BucketName, "key", cfg.SnapshotKey)
	return newS3SnapshotStorage(client, cfg.BucketName, cfg.SnapshotKey), nil
}

func newS3SnapshotStorage(client s3Object, bucket, key string) *s3SnapshotStorage {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &s3SnapshotStorage{client: client, bucketName: bucket, key: key}
}

// Save writes the snapshot as YAML in the bundled dataset format.
func (s *s3SnapshotStorage) Save(ctx context.Context, exercises []domain.Exercise) error {
	body, err := catalog.EncodeExercises(exercises)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(snapshotContentType),
	})
	if err != nil {
		return fmt.Errorf("put snapshot %s/%s: %w", s.bucketName, s.key, err)
	}
	return nil
}

// Load reads the snapshot back. A missing object means no snapshot yet.
func (s *s3SnapshotStorage) Load(ctx context.Context) ([]domain.Exercise, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, catalog.ErrNoData
		}
		return nil, fmt.Errorf("get snapshot %s/%s: %w", s.bucketName, s.key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	exercises, err := catalog.DecodeExercises(body)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := catalog.ValidateExercises(exercises); err != nil {
		return nil, fmt.Errorf("invalid snapshot %s/%s: %w", s.bucketName, s.key, err)
	}
	kept, dropped := catalog.Dedupe(exercises)
	for _, d := range dropped {
		slog.Warn("duplicate exercise in snapshot dropped", "id", d.Dropped.ID, "kept", d.KeptID)
	}
	return kept, nil
}
