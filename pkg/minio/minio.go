package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"vidtube/pkg/config"
	"vidtube/pkg/media"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Client struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

var _ media.Storage = (*Client)(nil)

func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	mc, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := mc.BucketExists(ctx, cfg.S3BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.S3BucketName, err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.S3BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.S3BucketName, err)
		}
	}

	return &Client{
		client:    mc,
		bucket:    cfg.S3BucketName,
		publicURL: publicBaseURL(cfg),
	}, nil
}

func (c *Client) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (*media.Asset, error) {
	if size <= 0 {
		size = -1
	}
	_, err := c.client.PutObject(ctx, c.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to minio: %w", err)
	}
	return &media.Asset{URL: c.publicURL + "/" + key, PublicID: key}, nil
}

func (c *Client) Delete(ctx context.Context, publicID string) error {
	if err := c.client.RemoveObject(ctx, c.bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file from minio: %w", err)
	}
	return nil
}

// publicBaseURL is "<scheme>://<endpoint>/<bucket>" unless MINIO_PUBLIC_URL overrides the host part.
func publicBaseURL(cfg *config.Config) string {
	base := strings.TrimRight(cfg.MinIOPublicURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.MinIOUseSSL {
			scheme = "https"
		}
		base = scheme + "://" + cfg.MinIOEndpoint
	}
	return base + "/" + cfg.S3BucketName
}
