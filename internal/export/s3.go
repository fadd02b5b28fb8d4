// Package export ships a computed schedule to external storage. It is only
// exercised when the CLI's run command is given --s3-bucket (SPEC_FULL.md
// §4.13); the HTTP server never exports. Absent that flag, nothing in this
// package is reached and
// no network call is ever made.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/kjorgen/schedcore/pkg/model"
)

// S3Exporter uploads computed schedules to S3 as JSON objects.
type S3Exporter struct {
	uploader *manager.Uploader
	logger   *slog.Logger
}

// NewS3Exporter builds an S3Exporter from the SDK's default configuration
// chain (environment, shared config file, EC2/ECS role), optionally pinned
// to region.
func NewS3Exporter(ctx context.Context, region string, logger *slog.Logger) (*S3Exporter, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Exporter{
		uploader: manager.NewUploader(client),
		logger:   logger.With("component", "export"),
	}, nil
}

// Upload marshals sched to JSON and uploads it to bucket/key.
func (e *S3Exporter) Upload(ctx context.Context, bucket, key string, sched *model.Schedule) error {
	body, err := json.Marshal(sched)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	e.logger.Debug("uploading schedule", "bucket", bucket, "key", key, "bytes", len(body))

	_, err = e.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: awsString("application/json"),
	})
	if err != nil {
		return fmt.Errorf("upload to s3://%s/%s: %w", bucket, key, err)
	}

	e.logger.Info("schedule exported", "bucket", bucket, "key", key)
	return nil
}

func awsString(s string) *string { return &s }
