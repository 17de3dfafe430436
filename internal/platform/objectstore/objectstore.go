// Copyright (c) 2026 Workbay. All rights reserved.

/*
Package objectstore provides S3-compatible blob storage for uploaded media.

It targets DigitalOcean Spaces in production and MinIO in development, both
of which speak the S3 wire protocol. Video binaries never touch PostgreSQL;
only their object keys do.

Core Responsibilities:

  - Upload: Streams multipart file bodies into the bucket.
  - Playback: Issues short-lived presigned GET URLs so the API never proxies
    video bytes.
  - Cleanup: Deletes objects when their owning records are removed.
*/
package objectstore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignTTL is the lifetime of generated playback URLs.
const PresignTTL = 15 * time.Minute

// Config carries the credentials and location of the target bucket.
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Store wraps an S3 client scoped to a single bucket.
type Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// New builds a Store from static credentials and a custom endpoint.
func New(ctx context.Context, storeConfig Config) (*Store, error) {
	if storeConfig.Bucket == "" {
		return nil, fmt.Errorf("objectstore: bucket is required")
	}

	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(storeConfig.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			storeConfig.AccessKey,
			storeConfig.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("objectstore: failed to load config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(options *s3.Options) {
		if storeConfig.Endpoint != "" {
			options.BaseEndpoint = aws.String(storeConfig.Endpoint)
		}
	})

	return &Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  storeConfig.Bucket,
	}, nil
}

// Put streams an object body into the bucket under the given key.
func (store *Store) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	_, err := store.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("objectstore: put %q failed: %w", key, err)
	}
	return nil
}

// PresignGet returns a time-limited URL for reading the object directly
// from the bucket.
func (store *Store) PresignGet(ctx context.Context, key string) (string, error) {
	request, err := store.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(PresignTTL))
	if err != nil {
		return "", fmt.Errorf("objectstore: presign %q failed: %w", key, err)
	}
	return request.URL, nil
}

// Delete removes an object from the bucket. Deleting a missing key is not
// an error in the S3 protocol.
func (store *Store) Delete(ctx context.Context, key string) error {
	_, err := store.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("objectstore: delete %q failed: %w", key, err)
	}
	return nil
}
