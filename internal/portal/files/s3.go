package files

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStorageConfig carries the S3-compatible endpoint settings.
type ObjectStorageConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// ObjectStorage is the remote attachment bucket. Objects are keyed
// <noteId>/<timestamp>_<filename>.
type ObjectStorage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	baseURL string
}

func NewObjectStorage(ctx context.Context, c ObjectStorageConfig) (*ObjectStorage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(c.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKey, c.SecretKey, "",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.Endpoint)
		o.UsePathStyle = true
	})

	return &ObjectStorage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  c.Bucket,
		baseURL: strings.TrimRight(c.Endpoint, "/") + "/" + c.Bucket,
	}, nil
}

// ObjectKey builds the bucket key for an attachment.
func ObjectKey(noteID, filename string) string {
	return fmt.Sprintf("%s/%d_%s", noteID, time.Now().Unix(), filename)
}

// Upload puts the bytes under a fresh key and returns it.
func (o *ObjectStorage) Upload(ctx context.Context, noteID, filename, contentType string, data []byte) (string, error) {
	key := ObjectKey(noteID, filename)

	_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &o.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// List returns the object keys under a note's prefix.
func (o *ObjectStorage) List(ctx context.Context, noteID string) ([]string, error) {
	prefix := noteID + "/"
	out, err := o.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: &o.bucket,
		Prefix: &prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}

	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		keys = append(keys, aws.ToString(obj.Key))
	}
	return keys, nil
}

// Delete removes one object.
func (o *ObjectStorage) Delete(ctx context.Context, key string) error {
	_, err := o.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &o.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the unauthenticated URL of an object in a public bucket.
func (o *ObjectStorage) PublicURL(key string) string {
	return o.baseURL + "/" + key
}

// PresignGet returns a time-limited download URL.
func (o *ObjectStorage) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := o.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &o.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// PresignPut returns a time-limited upload URL for the given key. The admin
// material flow pairs this with netx.UploadToPresignedURL.
func (o *ObjectStorage) PresignPut(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := o.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &o.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
