package aws

import (
	"bytes"
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectUploader stores a single object under bucket/key.
type ObjectUploader interface {
	Upload(ctx context.Context, bucket, key, contentType string, body []byte) error
}

// S3Uploader uploads objects with PutObject.
type S3Uploader struct {
	client *s3.Client
}

// NewS3Client creates a new S3 client from AWS config.
func NewS3Client(cfg sdkaws.Config) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		// LocalStack does not serve virtual-hosted buckets
		o.UsePathStyle = cfg.BaseEndpoint != nil
	})
}

// NewS3Uploader creates an uploader backed by a new S3 client.
func NewS3Uploader(cfg sdkaws.Config) *S3Uploader {
	return &S3Uploader{client: NewS3Client(cfg)}
}

// Upload puts body at bucket/key.
func (u *S3Uploader) Upload(ctx context.Context, bucket, key, contentType string, body []byte) error {
	if bucket == "" {
		return fmt.Errorf("empty bucket")
	}
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(bucket),
		Key:         sdkaws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: sdkaws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put object %s/%s failed: %w", bucket, key, err)
	}
	return nil
}
