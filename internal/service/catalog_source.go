package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"skillup_backend/internal/catalog"
	"skillup_backend/internal/config"
	"skillup_backend/internal/util"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const seedContentType = "application/yaml"

// CatalogSource 目录数据来源
type CatalogSource interface {
	Fetch(ctx context.Context) (*catalog.Seed, error)
	Name() string
}

// CatalogPublisher 支持写回的数据来源，导出脚本使用
type CatalogPublisher interface {
	Publish(ctx context.Context, data []byte) error
}

// BuiltinSource 编译进二进制的示例数据
type BuiltinSource struct{}

func (BuiltinSource) Fetch(ctx context.Context) (*catalog.Seed, error) {
	return catalog.DefaultSeed(), nil
}

func (BuiltinSource) Name() string { return util.CatalogSourceBuiltin }

// LocalFileSource 本地 YAML 文件，可配合 configwatcher 热加载
type LocalFileSource struct {
	Path string
}

func (s *LocalFileSource) Fetch(ctx context.Context) (*catalog.Seed, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return catalog.ParseSeed(data)
}

func (s *LocalFileSource) Publish(ctx context.Context, data []byte) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	// 先写临时文件再 rename，避免监听方读到半个文件
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

func (s *LocalFileSource) Name() string { return util.CatalogSourceLocal }

// MinioSource MinIO 中的 YAML 对象
type MinioSource struct {
	Config *config.StorageConfig
	Key    string
	Client *minio.Client
}

func NewMinioSource(cfg *config.StorageConfig, key string) (*MinioSource, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioSource{Config: cfg, Key: key, Client: client}, nil
}

func (s *MinioSource) Fetch(ctx context.Context) (*catalog.Seed, error) {
	obj, err := s.Client.GetObject(ctx, s.Config.MinioBucket, s.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("reading minio object %s/%s: %w", s.Config.MinioBucket, s.Key, err)
	}
	return catalog.ParseSeed(data)
}

func (s *MinioSource) Publish(ctx context.Context, data []byte) error {
	_, err := s.Client.PutObject(ctx, s.Config.MinioBucket, s.Key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: seedContentType,
	})
	return err
}

func (s *MinioSource) Name() string { return util.CatalogSourceMinio }

// OSSSource 阿里云 OSS 中的 YAML 对象
type OSSSource struct {
	Config *config.StorageConfig
	Key    string
	Client *oss.Client
}

func NewOSSSource(cfg *config.StorageConfig, key string) (*OSSSource, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSSource{Config: cfg, Key: key, Client: client}, nil
}

func (s *OSSSource) Fetch(ctx context.Context) (*catalog.Seed, error) {
	bucket, err := s.Client.Bucket(s.Config.OSSBucket)
	if err != nil {
		return nil, err
	}

	body, err := bucket.GetObject(s.Key, oss.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading oss object %s/%s: %w", s.Config.OSSBucket, s.Key, err)
	}
	return catalog.ParseSeed(data)
}

func (s *OSSSource) Publish(ctx context.Context, data []byte) error {
	bucket, err := s.Client.Bucket(s.Config.OSSBucket)
	if err != nil {
		return err
	}
	return bucket.PutObject(s.Key, bytes.NewReader(data), oss.ContentType(seedContentType), oss.WithContext(ctx))
}

func (s *OSSSource) Name() string { return util.CatalogSourceOSS }

// NewCatalogSource 按配置创建数据来源
func NewCatalogSource(cfg *config.Config) (CatalogSource, error) {
	switch cfg.Catalog.Source {
	case util.CatalogSourceLocal:
		return &LocalFileSource{Path: cfg.Catalog.Path}, nil
	case util.CatalogSourceMinio:
		return NewMinioSource(&cfg.Storage, cfg.Catalog.Path)
	case util.CatalogSourceOSS:
		return NewOSSSource(&cfg.Storage, cfg.Catalog.Path)
	case util.CatalogSourceBuiltin, "":
		return BuiltinSource{}, nil
	}
	return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
}
