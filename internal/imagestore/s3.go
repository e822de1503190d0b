package imagestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"digital-stamp-go/internal/models"
	"digital-stamp-go/internal/store"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

var _ store.ImageStore = (*S3Store)(nil)

// s3API is the subset of *s3.Client the store needs.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps stamp images as objects under a bucket prefix. References
// look like s3://bucket/prefix/<id>.png.
type S3Store struct {
	client s3API
	bucket string
	prefix string
}

// NewS3Store builds a client from the default AWS credential chain.
func NewS3Store(ctx context.Context, cfg models.ImageConfig) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket cannot be empty")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	zap.L().Info("Using S3 image store",
		zap.String("bucket", cfg.Bucket),
		zap.String("prefix", cfg.Prefix),
		zap.String("region", cfg.Region))

	return newS3Store(client, cfg.Bucket, cfg.Prefix), nil
}

func newS3Store(client s3API, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Store) Put(ctx context.Context, id string, data []byte) (string, error) {
	key := s.prefix + id + ".png"
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading stamp image to s3: %w", err)
	}
	return s.ref(key), nil
}

func (s *S3Store) Get(ctx context.Context, ref string) ([]byte, error) {
	key, err := s.key(ref)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: %s", store.ErrImageNotFound, ref)
		}
		return nil, fmt.Errorf("downloading stamp image from s3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading stamp image body: %w", err)
	}
	return data, nil
}

// Delete checks for the object first because S3 reports success when
// deleting a missing key.
func (s *S3Store) Delete(ctx context.Context, ref string) error {
	key, err := s.key(ref)
	if err != nil {
		return err
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return fmt.Errorf("%w: %s", store.ErrImageNotFound, ref)
		}
		return fmt.Errorf("checking stamp image in s3: %w", err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting stamp image from s3: %w", err)
	}
	return nil
}

func (s *S3Store) ref(key string) string {
	return "s3://" + s.bucket + "/" + key
}

func (s *S3Store) key(ref string) (string, error) {
	prefix := "s3://" + s.bucket + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", fmt.Errorf("image reference %q is not in bucket %s", ref, s.bucket)
	}
	return strings.TrimPrefix(ref, prefix), nil
}
