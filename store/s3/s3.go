// Package s3 serves files from an S3 (or S3-compatible) bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/indigo-web/minihttp/store"
)

var _ store.Store = new(Store)

// Options are decoded from the files.options config section.
type Options struct {
	Bucket string `mapstructure:"bucket"`
	Region string `mapstructure:"region"`
	// Endpoint points to an S3-compatible service (MinIO, Localstack). Enables path-style
	// addressing.
	Endpoint string `mapstructure:"endpoint"`
	// Prefix is prepended to every file name to form the object key.
	Prefix string `mapstructure:"prefix"`
	// AccessKeyID and SecretAccessKey are optional, the default credential chain is used
	// otherwise.
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// GetObjectAPI is the part of the S3 client the store relies on.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Store struct {
	client GetObjectAPI
	bucket string
	prefix string
}

// New builds an S3 client from the options and the environment.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 store: bucket is required")
	}

	var loadOptions []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOptions = append(loadOptions, awsconfig.WithRegion(opts.Region))
	}

	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("s3 store: failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewWithClient(client, opts.Bucket, opts.Prefix), nil
}

func NewWithClient(client GetObjectAPI, bucket, prefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	name, err := store.CleanName(name)
	if err != nil {
		return nil, err
	}

	key := s.prefix + name
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s: %w", key, store.ErrNotFound)
		}

		return nil, fmt.Errorf("get object %s: %w", key, err)
	}

	defer func() {
		_ = out.Body.Close()
	}()

	buff := new(bytes.Buffer)
	if out.ContentLength != nil && *out.ContentLength > 0 {
		buff.Grow(int(*out.ContentLength))
	}

	if _, err = io.Copy(buff, out.Body); err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}

	return buff.Bytes(), nil
}

func (s *Store) Close() error {
	return nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}

	return false
}
