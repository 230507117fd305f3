package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appcfg "github.com/doodle-journal/core/internal/config"
)

// Uploader pushes archives to an S3-compatible bucket.
type Uploader struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewUploader validates the S3 options and builds a client. Non-AWS
// endpoints (MinIO and friends) get path-style addressing.
func NewUploader(opts appcfg.S3Options) (*Uploader, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	region := strings.TrimSpace(opts.Region)
	accessKey := strings.TrimSpace(opts.AccessKeyID)
	secretKey := strings.TrimSpace(opts.SecretAccessKey)
	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket/region/access_key_id/secret_access_key are required")
	}

	clientOpts := s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	}
	if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		clientOpts.BaseEndpoint = aws.String(strings.TrimSuffix(endpoint, "/"))
		clientOpts.UsePathStyle = true
	}
	if opts.PathStyleAccess {
		clientOpts.UsePathStyle = true
	}

	return &Uploader{
		client: s3.New(clientOpts),
		bucket: bucket,
		prefix: strings.Trim(strings.TrimSpace(opts.KeyPrefix), "/"),
	}, nil
}

// Upload stores one archive and returns its object key.
func (u *Uploader) Upload(ctx context.Context, filename string, payload []byte) (string, error) {
	key := filename
	if u.prefix != "" {
		key = u.prefix + "/" + filename
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(payload),
		ContentType:   aws.String("application/zip"),
		ContentLength: aws.Int64(int64(len(payload))),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s: %w", key, err)
	}
	return key, nil
}
