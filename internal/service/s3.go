package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/spf13/viper"
)

// ErrUploadFailed marks a failure of the external avatar host, so the
// boundary can map it separately from internal faults.
var ErrUploadFailed = errors.New("avatar upload failed")

// AvatarStore is what the avatar endpoint needs from the storage
// backend. Satisfied by S3Client.
type AvatarStore interface {
	UploadAvatar(ctx context.Context, body io.Reader, size int64, contentType, username string) (string, error)
}

type S3Client struct {
	c         *s3.Client
	bucket    *string
	publicURL string
}

func NewS3() (*S3Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("aws.access_key_id"),
			viper.GetString("aws.secret_access_key"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(viper.GetString("aws.bucket"))

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.Region = viper.GetString("aws.region")
	})

	_, err = client.HeadBucket(context.TODO(), &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
			return nil, fmt.Errorf("bucket '%s' does not exist", *bucket)
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return &S3Client{
		c:         client,
		bucket:    bucket,
		publicURL: viper.GetString("aws.public_url"),
	}, nil
}

// UploadAvatar stores the avatar under a per-user key, so a re-upload
// replaces the previous one, and returns the public URL.
func (s *S3Client) UploadAvatar(ctx context.Context, body io.Reader, size int64, contentType, username string) (string, error) {
	key := "avatars/" + username

	_, err := s.c.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        s.bucket,
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return s.publicURL + "/" + key, nil
}
