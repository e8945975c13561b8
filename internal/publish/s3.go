// SPDX-License-Identifier: MIT
package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the slice of the S3 client the target uses
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Target uploads files to a bucket under an optional key prefix
type S3Target struct {
	Client       PutObjectAPI
	Bucket       string
	Prefix       string
	CacheControl string
}

// S3Options configures NewS3Target
type S3Options struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string // for S3-compatible stores; empty means AWS
}

// NewS3Target builds a client using the standard AWS_* credential variables
func NewS3Target(ctx context.Context, opts S3Options) (*S3Target, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("publish.s3_bucket is not set")
	}
	if _, err := envCredentials(ctx); err != nil {
		return nil, err
	}

	s3opts := s3.Options{
		Region:      opts.Region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	}
	if opts.Endpoint != "" {
		s3opts.BaseEndpoint = aws.String(opts.Endpoint)
		s3opts.UsePathStyle = true
	}

	return &S3Target{
		Client:       s3.New(s3opts),
		Bucket:       opts.Bucket,
		Prefix:       strings.Trim(opts.Prefix, "/"),
		CacheControl: "public, max-age=3600",
	}, nil
}

func envCredentials(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return creds, nil
}

func (t *S3Target) Kind() string { return "s3" }

func (t *S3Target) String() string {
	if t.Prefix == "" {
		return "s3://" + t.Bucket
	}
	return "s3://" + t.Bucket + "/" + t.Prefix
}

// Put uploads one object
func (t *S3Target) Put(ctx context.Context, name string, body []byte, contentType string) error {
	key := strings.TrimPrefix(path.Join(t.Prefix, name), "/")
	input := &s3.PutObjectInput{
		Bucket:        aws.String(t.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	}
	if t.CacheControl != "" {
		input.CacheControl = aws.String(t.CacheControl)
	}

	if _, err := t.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", t.Bucket, key, err)
	}
	return nil
}
