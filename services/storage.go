package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"attorney_directory_go/config"
	"attorney_directory_go/db"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
)

// StorageProvider holds the attorney document bytes
type StorageProvider interface {
	db.Blob
	Describe() string
}

// InitializeStorage picks R2 when it is fully configured and reachable,
// local filesystem otherwise.
func InitializeStorage(cfg *config.Config) StorageProvider {
	if !cfg.R2Enabled() {
		log.Info().Msg("Storage connection established (Local filesystem)")
		return NewLocalStorage("")
	}

	r2, err := NewR2Storage(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize R2 storage. Falling back to local storage.")
		return NewLocalStorage("")
	}

	// Test R2 connection (HeadBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = r2.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: &cfg.R2BucketName,
	})
	if err != nil {
		log.Warn().Err(err).Msg("R2 bucket connection test failed. Falling back to local storage.")
		return NewLocalStorage("")
	}

	log.Info().Str("bucket", cfg.R2BucketName).Msg("Storage connection established (Cloudflare R2)")
	return r2
}

// R2Storage implements StorageProvider for Cloudflare R2
type R2Storage struct {
	client *s3.Client
	bucket string
}

// NewR2Storage creates a new R2 storage provider
func NewR2Storage(cfg *config.Config) (*R2Storage, error) {
	// R2 endpoint format: https://<account_id>.r2.cloudflarestorage.com
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)

	creds := credentials.NewStaticCredentialsProvider(
		cfg.R2AccessKeyID,
		cfg.R2SecretAccessKey,
		"",
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion("auto"), // R2 uses "auto" region
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Storage{client: client, bucket: cfg.R2BucketName}, nil
}

// Describe names the backend for logs
func (r *R2Storage) Describe() string {
	return "r2://" + r.bucket
}

// Read downloads the whole object
func (r *R2Storage) Read(ctx context.Context, key string) ([]byte, error) {
	result, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%s: %w", key, db.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to get object from R2: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return data, nil
}

// Write replaces the whole object
func (r *R2Storage) Write(ctx context.Context, key string, data []byte) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to R2: %w", err)
	}
	return nil
}

// Exists checks the object with HeadObject
func (r *R2Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to head object in R2: %w", err)
	}
	return true, nil
}

// LocalStorage implements StorageProvider for local filesystem
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates a local provider. Keys are joined to baseDir, so
// an empty baseDir takes keys as plain paths.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

// Describe names the backend for logs
func (l *LocalStorage) Describe() string {
	if l.baseDir == "" {
		return "file://."
	}
	return "file://" + l.baseDir
}

func (l *LocalStorage) path(key string) string {
	return filepath.Join(l.baseDir, key)
}

// Read loads the whole file
func (l *LocalStorage) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(l.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", key, db.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Write rewrites the whole file, creating parent directories as needed
func (l *LocalStorage) Write(ctx context.Context, key string, data []byte) error {
	fullPath := l.path(key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Exists stats the file
func (l *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(l.path(key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat file: %w", err)
}
