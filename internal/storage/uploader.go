// server/internal/storage/uploader.go
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"cmms-api-server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader writes closure evidence to the "evidencias" bucket of an
// S3-compatible store and hands back a public URL.
type Uploader struct {
	Client        *s3.Client
	Bucket        string
	Region        string
	PublicBaseURL string
}

func NewUploader(cfg config.S3Config) (*Uploader, error) {
	sdkConfig, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Uploader{
		Client:        s3Client,
		Bucket:        cfg.Bucket,
		Region:        cfg.Region,
		PublicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// ObjectKey builds the bucket key for an evidence file: upload timestamp
// plus the original file name, the scheme the existing bucket already uses.
func ObjectKey(now time.Time, filename string) string {
	return fmt.Sprintf("%s_%s", now.Format("20060102150405"), filename)
}

// UploadEvidence uploads one evidence file and returns its public URL.
func (u *Uploader) UploadEvidence(ctx context.Context, file io.Reader, filename, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := ObjectKey(time.Now(), filename)

	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload evidence: %w", err)
	}

	if u.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", u.PublicBaseURL, u.Bucket, objectKey), nil
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.Bucket, u.Region, objectKey), nil
}
