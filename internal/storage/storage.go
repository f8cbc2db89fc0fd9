// Package storage issues presigned S3 upload URLs so clients can put files
// straight into the data bucket.
package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/iliyamo/docdesk/internal/utils"
)

// URLExpiry is how long a presigned URL accepts the upload.
const URLExpiry = 300 * time.Second

const (
	DefaultFolder      = "images"
	DefaultContentType = "image/jpeg"
)

// Presigner signs a public-read PUT of key.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
}

// S3Presigner signs against one bucket.
type S3Presigner struct {
	bucket string
	client *s3.PresignClient
}

// NewS3Presigner loads the default AWS credential chain for region.
func NewS3Presigner(ctx context.Context, bucket, region string) (*S3Presigner, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Presigner{bucket: bucket, client: s3.NewPresignClient(s3.NewFromConfig(cfg))}, nil
}

func (p *S3Presigner) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	}, s3.WithPresignExpires(URLExpiry))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}
	return req.URL, nil
}

// Upload is the optional request of the upload URL endpoint.
type Upload struct {
	Folder      string `json:"folder"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

// Ticket is what the client needs to perform the upload.
type Ticket struct {
	UploadURL string `json:"uploadURL"`
	Key       string `json:"Key"`
}

// Normalize fills in defaults for empty fields.
func (u Upload) Normalize() Upload {
	if strings.TrimSpace(u.Folder) == "" {
		u.Folder = DefaultFolder
	}
	if strings.TrimSpace(u.FileName) == "" {
		u.FileName = uuid.NewString() + ".jpg"
	}
	if strings.TrimSpace(u.ContentType) == "" {
		u.ContentType = DefaultContentType
	}
	return u
}

// Key places the slugged file name under folder, prefixed with the UTC
// upload time in milliseconds so repeated names never collide.
func Key(folder, fileName string, now time.Time) string {
	return folder + "/" + strconv.FormatInt(now.UTC().UnixMilli(), 10) + "-" + utils.SEOSlug(fileName)
}

// Issue signs an upload for u.
func Issue(ctx context.Context, p Presigner, u Upload, now time.Time) (Ticket, error) {
	u = u.Normalize()
	key := Key(u.Folder, u.FileName, now)
	url, err := p.PresignPut(ctx, key, u.ContentType)
	if err != nil {
		return Ticket{}, err
	}
	return Ticket{UploadURL: url, Key: key}, nil
}
