package storage

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignExpiry = 5 * time.Minute

// Config holds credentials and bucket settings for an S3-compatible object
// store (Cloudflare R2).
type Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
}

// PresignedUpload is the result of a presign request: clients PUT the file
// to URL and reference it afterwards via PublicURL.
type PresignedUpload struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	PublicURL string `json:"publicUrl"`
}

// StoredObject describes one object in the bucket.
type StoredObject struct {
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	LastModified time.Time `json:"lastModified"`
	Size         int64     `json:"size"`
}

// Client wraps the S3 API for presigned uploads and listings.
type Client struct {
	s3            *s3.Client
	presigner     *s3.PresignClient
	bucket        string
	publicBaseURL string
}

// New builds a Client pointed at the R2 endpoint for the configured account.
func New(ctx context.Context, cfg Config) (*Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &Client{
		s3:            client,
		presigner:     s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// PresignUpload returns a presigned PUT URL for a new object under folder.
// The key is prefixed with a fresh UUID so uploads never collide, and the
// filename is sanitized to a safe character set.
func (c *Client) PresignUpload(ctx context.Context, filename, contentType, folder string) (*PresignedUpload, error) {
	if folder == "" {
		folder = "images"
	}
	safeName := unsafeKeyChars.ReplaceAllString(filename, "_")
	key := fmt.Sprintf("%s/%s-%s", folder, uuid.New().String(), safeName)

	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}

	return &PresignedUpload{
		URL:       req.URL,
		Key:       key,
		PublicURL: fmt.Sprintf("%s/%s", c.publicBaseURL, key),
	}, nil
}

// ListFiles returns the objects under prefix, newest first.
func (c *Client) ListFiles(ctx context.Context, prefix string) ([]StoredObject, error) {
	if prefix == "" {
		prefix = "images/"
	}

	out, err := c.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects under %s: %w", prefix, err)
	}

	files := make([]StoredObject, 0, len(out.Contents))
	for _, obj := range out.Contents {
		f := StoredObject{
			Key: aws.ToString(obj.Key),
			URL: fmt.Sprintf("%s/%s", c.publicBaseURL, aws.ToString(obj.Key)),
		}
		if obj.LastModified != nil {
			f.LastModified = *obj.LastModified
		}
		if obj.Size != nil {
			f.Size = *obj.Size
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].LastModified.After(files[j].LastModified)
	})
	return files, nil
}
