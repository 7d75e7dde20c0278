package reports

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"daycare-backend/internal/config"
)

// S3Archiver stores generated exports in an S3-compatible bucket
// (AWS, Cloudflare R2, MinIO).
type S3Archiver struct {
	client *s3.Client
	bucket string
}

func NewS3Archiver(ctx context.Context, cfg *config.Config) (*S3Archiver, error) {
	s3cfg := cfg.Reports.S3
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s3cfg.AccessKey,
			s3cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s3cfg.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "configure s3 client")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Archiver{client: client, bucket: s3cfg.Bucket}, nil
}

func (a *S3Archiver) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return errors.Wrapf(err, "upload %s", key)
}
