package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// sniffLen is how much of an upload is read to detect its type
const sniffLen = 3072

// Options configures the MinIO connection
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Object describes a stored upload
type Object struct {
	Key         string
	URL         string
	ContentType string
	Kind        string
	Size        int64
}

// ObjectStore stores uploaded files
type ObjectStore interface {
	Upload(ctx context.Context, folder, fileName string, file io.Reader, size int64) (*Object, error)
	Remove(ctx context.Context, key string) error
}

// Client holds the initialized MinIO client and its bucket
type Client struct {
	minio  *minio.Client
	bucket string
}

// InitMinio connects to MinIO and creates the bucket when it does not exist yet
func InitMinio(ctx context.Context, opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint not provided")
	}

	mc, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing minio client: %w", err)
	}

	exists, err := mc.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("error creating bucket %s: %w", opts.Bucket, err)
		}
	}

	return &Client{minio: mc, bucket: opts.Bucket}, nil
}

// Upload stores file under folder/yyyy/mm/<uuid><ext>. The content type is detected
// from the leading bytes, not from the file name.
func (c *Client) Upload(ctx context.Context, folder, fileName string, file io.Reader, size int64) (*Object, error) {
	mt, body, err := Detect(file)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	key := fmt.Sprintf("%s/%d/%02d/%s%s", folder, now.Year(), now.Month(), uuid.NewString(), mt.Extension())

	info, err := c.minio.PutObject(ctx, c.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: mt.String(),
		UserMetadata: map[string]string{
			"original-filename": path.Base(fileName),
			"uploaded-at":       now.Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error uploading to minio: %w", err)
	}

	return &Object{
		Key:         key,
		URL:         fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(c.minio.EndpointURL().String(), "/"), c.bucket, key),
		ContentType: mt.String(),
		Kind:        Kind(mt),
		Size:        info.Size,
	}, nil
}

func (c *Client) Remove(ctx context.Context, key string) error {
	if err := c.minio.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("error removing from minio: %w", err)
	}
	return nil
}

// Detect sniffs the type of r and returns a reader that still yields every byte of r
func Detect(r io.Reader) (*mimetype.MIME, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, nil, fmt.Errorf("error reading upload: %w", err)
	}
	head = head[:n]
	return mimetype.Detect(head), io.MultiReader(bytes.NewReader(head), r), nil
}

// Kind maps a detected type to one of image, video, audio or document
func Kind(mt *mimetype.MIME) string {
	for m := mt; m != nil; m = m.Parent() {
		switch {
		case strings.HasPrefix(m.String(), "image/"):
			return "image"
		case strings.HasPrefix(m.String(), "video/"):
			return "video"
		case strings.HasPrefix(m.String(), "audio/"):
			return "audio"
		}
	}
	return "document"
}
