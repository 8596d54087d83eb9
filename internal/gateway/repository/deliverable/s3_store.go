package deliverable

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Store keeps deliverable bytes in an S3-compatible bucket (minio in
// local deployments). The bucket is created lazily on first use.
type S3Store struct {
	client     *minio.Client
	bucketName string
	region     string
	initOnce   sync.Once
	initErr    error
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3Store{
		client:     client,
		bucketName: bucket,
		region:     region,
	}, nil
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("store is nil")
	}
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucketName)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

func objectKey(taskID, name string) string {
	return strings.TrimSpace(taskID) + "/" + strings.TrimLeft(strings.TrimSpace(name), "/")
}

func (s *S3Store) Put(ctx context.Context, taskID, name, contentType string, content []byte) (Object, error) {
	if s == nil {
		return Object{}, fmt.Errorf("store is nil")
	}
	taskID = strings.TrimSpace(taskID)
	name = strings.TrimSpace(name)
	if taskID == "" {
		return Object{}, fmt.Errorf("task id is required")
	}
	if name == "" {
		return Object{}, fmt.Errorf("file name is required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return Object{}, fmt.Errorf("ensure bucket: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if content == nil {
		content = []byte{}
	}

	key := objectKey(taskID, name)
	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return Object{}, err
	}
	return Object{
		TaskID:      taskID,
		Name:        name,
		ContentType: contentType,
		SizeBytes:   int64(len(content)),
		UploadedAt:  time.Now().UTC(),
	}, nil
}

func (s *S3Store) Get(ctx context.Context, taskID, name string) ([]byte, Object, error) {
	if s == nil {
		return nil, Object{}, fmt.Errorf("store is nil")
	}
	taskID = strings.TrimSpace(taskID)
	name = strings.TrimSpace(name)
	if taskID == "" || name == "" {
		return nil, Object{}, fmt.Errorf("task id and file name are required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, Object{}, fmt.Errorf("ensure bucket: %w", err)
	}

	key := objectKey(taskID, name)
	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, Object{}, err
	}
	defer obj.Close()

	content, err := io.ReadAll(obj)
	if err != nil {
		return nil, Object{}, fmt.Errorf("read object %s: %w", key, err)
	}
	stat, err := obj.Stat()
	if err != nil {
		return nil, Object{}, err
	}
	return content, Object{
		TaskID:      taskID,
		Name:        name,
		ContentType: stat.ContentType,
		SizeBytes:   stat.Size,
		UploadedAt:  stat.LastModified,
	}, nil
}

func (s *S3Store) List(ctx context.Context, taskID string) ([]Object, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return nil, fmt.Errorf("task id is required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	prefix := taskID + "/"
	var out []Object
	for info := range s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if info.Err != nil {
			return nil, info.Err
		}
		out = append(out, Object{
			TaskID:      taskID,
			Name:        strings.TrimPrefix(info.Key, prefix),
			ContentType: info.ContentType,
			SizeBytes:   info.Size,
			UploadedAt:  info.LastModified,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *S3Store) Delete(ctx context.Context, taskID, name string) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	taskID = strings.TrimSpace(taskID)
	name = strings.TrimSpace(name)
	if taskID == "" || name == "" {
		return fmt.Errorf("task id and file name are required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	return s.client.RemoveObject(ctx, s.bucketName, objectKey(taskID, name), minio.RemoveObjectOptions{})
}
