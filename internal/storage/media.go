package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/d60-Lab/dazzlr/config"
	"github.com/d60-Lab/dazzlr/internal/model"
	"github.com/d60-Lab/dazzlr/pkg/logger"
)

// MediaStore 上传头像、封面、帖子图片，返回 {url, asset_id}
type MediaStore interface {
	Upload(ctx context.Context, ownerID, fileName string, r io.Reader, size int64) (model.Media, error)
	Delete(ctx context.Context, assetID string) error
}

type minioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
	now       func() time.Time
}

// NewMinIOStore 未启用时返回 nil, nil
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig) (MediaStore, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("minio bucket created", zap.String("bucket", cfg.Bucket))
	}

	return &minioStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicBase(cfg),
		now:       time.Now,
	}, nil
}

func (s *minioStore) Upload(ctx context.Context, ownerID, fileName string, r io.Reader, size int64) (model.Media, error) {
	now := s.now()
	ext := fileExt(fileName)
	object := objectName(ownerID, ext, now)

	_, err := s.client.PutObject(ctx, s.bucket, object, r, size, minio.PutObjectOptions{
		ContentType: contentType(ext),
		UserMetadata: map[string]string{
			"original-filename": filepath.Base(fileName),
			"owner-id":          ownerID,
			"uploaded-at":       now.Format(time.RFC3339),
		},
	})
	if err != nil {
		return model.Media{}, fmt.Errorf("upload %s: %w", object, err)
	}
	return model.Media{URL: s.publicURL + "/" + object, AssetID: object}, nil
}

func (s *minioStore) Delete(ctx context.Context, assetID string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, assetID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", assetID, err)
	}
	return nil
}

func fileExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ".jpg"
	}
	return ext
}

func contentType(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// objectName media/<owner>/<yyyy>/<mm>/<id><ext>
func objectName(ownerID, ext string, now time.Time) string {
	return fmt.Sprintf("media/%s/%d/%02d/%s%s", ownerID, now.Year(), now.Month(), model.NewID(), ext)
}

func publicBase(cfg config.MinIOConfig) string {
	if cfg.PublicURL != "" {
		return strings.TrimSuffix(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}
