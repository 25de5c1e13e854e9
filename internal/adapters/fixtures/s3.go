package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config locates fixtures in an S3-compatible bucket (AWS S3 or MinIO).
// Objects are read from "<Prefix>/<name>.json".
type S3Config struct {
	Region    string
	Bucket    string
	Prefix    string
	Endpoint  string // optional; custom endpoint such as MinIO
	PathStyle bool

	// Static credentials; when empty the default chain is used.
	AccessKey string
	SecretKey string
}

// S3Opener reads fixtures from a single bucket.
type S3Opener struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Opener builds an opener for cfg.Bucket.
func NewS3Opener(ctx context.Context, cfg S3Config, optFns ...func(*s3.Options)) (*S3Opener, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 fixtures: bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3 fixtures: load aws config: %w", err)
	}

	clientOpts := append([]func(*s3.Options){func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}}, optFns...)
	client := s3.NewFromConfig(awsCfg, clientOpts...)

	return NewS3OpenerFromClient(client, cfg.Bucket, cfg.Prefix), nil
}

func NewS3OpenerFromClient(client *s3.Client, bucket, prefix string) *S3Opener {
	return &S3Opener{client: client, bucket: bucket, prefix: prefix}
}

func (o *S3Opener) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := path.Join(o.prefix, name+".json")
	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &o.bucket, Key: &key})
	if err != nil {
		return nil, fmt.Errorf("get object s3://%s/%s: %w", o.bucket, key, err)
	}
	return out.Body, nil
}
