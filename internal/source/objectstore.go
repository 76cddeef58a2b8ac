package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStoreConfig holds the connection settings of an S3-compatible store.
type ObjectStoreConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	UseSSL          bool
}

// objectGetter is the part of the store client the fetcher needs.
type objectGetter interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// ObjectStoreFetcher reads s3://bucket/key drawings from MinIO or any other
// S3-compatible store.
type ObjectStoreFetcher struct {
	store objectGetter
}

// NewObjectStoreFetcher connects a fetcher to the store described by cfg.
func NewObjectStoreFetcher(cfg ObjectStoreConfig) (*ObjectStoreFetcher, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}
	return &ObjectStoreFetcher{store: minioGetter{client: client}}, nil
}

// Fetch downloads the object named by id.
func (o *ObjectStoreFetcher) Fetch(ctx context.Context, id string) ([]byte, error) {
	bucket, key, err := ParseObjectURL(id)
	if err != nil {
		return nil, unavailable(id, err)
	}
	data, err := o.store.GetObject(ctx, bucket, key)
	if err != nil {
		if isNoSuchObject(err) {
			return nil, notFound(id)
		}
		return nil, unavailable(id, err)
	}
	return data, nil
}

// ParseObjectURL splits s3://bucket/path/to/key into bucket and key.
func ParseObjectURL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("not an s3 url: %q", raw)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("s3 url needs bucket and key: %q", raw)
	}
	return u.Host, key, nil
}

type minioGetter struct {
	client *minio.Client
}

func (m minioGetter) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	// errors from a missing object surface on the first read
	return io.ReadAll(obj)
}

func isNoSuchObject(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	}
	return false
}
