package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// publicPrefix is the key prefix readable without credentials.
const publicPrefix = "public/"

// bucketClient is the part of *minio.Client the store uses.
type bucketClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	SetBucketPolicy(ctx context.Context, bucketName, policy string) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL overrides the URL prefix handed out for uploaded objects,
	// e.g. a CDN in front of the bucket.
	PublicBaseURL string
}

// clean trims every field and fills the region default.
func (c S3Config) clean() (S3Config, error) {
	for _, f := range []*string{&c.Endpoint, &c.Region, &c.AccessKey, &c.SecretKey, &c.Bucket, &c.PublicBaseURL} {
		*f = strings.TrimSpace(*f)
	}
	var missing []string
	if c.Endpoint == "" {
		missing = append(missing, "endpoint")
	}
	if c.AccessKey == "" || c.SecretKey == "" {
		missing = append(missing, "credentials")
	}
	if c.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if len(missing) > 0 {
		return c, fmt.Errorf("s3 config: missing %s", strings.Join(missing, ", "))
	}
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	return c, nil
}

// publicBase is PublicBaseURL, or the path-style bucket URL on the endpoint.
func (c S3Config) publicBase() string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/")
	}
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + c.Endpoint + "/" + c.Bucket
}

// S3 stores images in an S3-compatible bucket. Objects under public/ are
// served anonymously.
type S3 struct {
	client     bucketClient
	bucketName string
	region     string
	publicBase string

	mu            sync.Mutex
	ready         bool
	policyPending bool
}

func NewS3(cfg S3Config) (*S3, error) {
	cfg, err := cfg.clean()
	if err != nil {
		return nil, err
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return newS3(client, cfg), nil
}

func newS3(client bucketClient, cfg S3Config) *S3 {
	return &S3{
		client:     client,
		bucketName: cfg.Bucket,
		region:     cfg.Region,
		publicBase: cfg.publicBase(),
	}
}

// ensureBucket creates the bucket on first use. A failed attempt is retried
// by the next upload.
func (s *S3) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return err
		}
		s.policyPending = true
	}
	if s.policyPending {
		if err := s.client.SetBucketPolicy(ctx, s.bucketName, publicReadPolicy(s.bucketName)); err != nil {
			return fmt.Errorf("set bucket policy: %w", err)
		}
		s.policyPending = false
	}
	s.ready = true
	return nil
}

// publicReadPolicy grants anonymous GetObject on keys under publicPrefix.
func publicReadPolicy(bucket string) string {
	return `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},` +
		`"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::` + bucket + `/` + publicPrefix + `*"]}]}`
}

// Upload writes an object, replacing any object already stored under key.
func (s *S3) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return fmt.Errorf("object key is required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	if size <= 0 {
		size = -1
	}
	_, err := s.client.PutObject(ctx, s.bucketName, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *S3) PublicURL(key string) string {
	return joinURL(s.publicBase, key)
}

func joinURL(base, key string) string {
	parts := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return base + "/" + strings.Join(parts, "/")
}
