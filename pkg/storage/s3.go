package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/learnhub/learnhub-api/pkg/logger"
	"github.com/learnhub/learnhub-api/pkg/metrics"
	"go.uber.org/zap"
)

// S3Storage uploads course images to an S3-compatible object store. Used in
// deployments where the API container has no persistent disk.
type S3Storage struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

// NewS3Storage creates an S3-compatible image store.
func NewS3Storage(accessKeyID, secretAccessKey, bucket, endpoint, region string) (*S3Storage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}
	if region == "" {
		region = "us-east-1"
	}

	opts := s3.Options{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"", // session token not needed
		),
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
	}

	client := s3.New(opts)

	logger.Info("S3 image storage initialized",
		zap.String("bucket", bucket),
		zap.String("endpoint", endpoint),
		zap.String("region", region))

	return &S3Storage{
		client:   client,
		bucket:   bucket,
		endpoint: endpoint,
	}, nil
}

// SaveImage uploads the image and returns its public URL.
func (s *S3Storage) SaveImage(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	start := time.Now()
	operation := "saveImageS3"

	if err := ValidateImageType(contentType); err != nil {
		return "", err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("s3_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key))
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}

	metrics.StorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("s3_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(data)))

	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key), nil
}
