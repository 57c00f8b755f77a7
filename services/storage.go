package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/rpupo63/research-lab-backend/config"
)

// DefaultUploadFolder is the fixed destination folder for uploaded files.
const DefaultUploadFolder = "lab-website"

// StorageSettings configures the S3 (or S3-compatible) bucket uploads go to.
type StorageSettings struct {
	Bucket    string
	Region    string
	Endpoint  string // custom endpoint for S3-compatible stores, path-style addressing
	AccessKey string
	SecretKey string
	PublicURL string // base URL objects are served from, when not the bucket itself
	Folder    string
}

func StorageSettingsFromConfig(c map[string]string) StorageSettings {
	return StorageSettings{
		Bucket:    config.GetString(c, "S3_BUCKET", ""),
		Region:    config.GetString(c, "S3_REGION", "us-east-1"),
		Endpoint:  strings.TrimSuffix(config.GetString(c, "S3_ENDPOINT", ""), "/"),
		AccessKey: config.GetString(c, "S3_ACCESS_KEY", ""),
		SecretKey: config.GetString(c, "S3_SECRET_KEY", ""),
		PublicURL: strings.TrimSuffix(config.GetString(c, "S3_PUBLIC_URL", ""), "/"),
		Folder:    strings.Trim(config.GetString(c, "UPLOAD_FOLDER", DefaultUploadFolder), "/"),
	}
}

// Enabled reports whether uploads can be stored at all.
func (s StorageSettings) Enabled() bool {
	return s.Bucket != ""
}

// StoredObject is the location descriptor returned for an uploaded file.
type StoredObject struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	Bucket      string `json:"bucket"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ObjectStorage writes uploaded files to a bucket.
type ObjectStorage struct {
	client   objectPutter
	settings StorageSettings
	newID    func() string
}

// NewObjectStorage builds an S3 client from the default credential chain,
// overridden by static keys and a custom endpoint when configured.
func NewObjectStorage(ctx context.Context, settings StorageSettings) (*ObjectStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(settings.Region),
	}
	if settings.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.AccessKey, settings.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newObjectStorage(client, settings), nil
}

func newObjectStorage(client objectPutter, settings StorageSettings) *ObjectStorage {
	if settings.Folder == "" {
		settings.Folder = DefaultUploadFolder
	}
	return &ObjectStorage{
		client:   client,
		settings: settings,
		newID:    uuid.NewString,
	}
}

// Upload stores body under the upload folder. No type or size checks are
// made here; whatever the store rejects comes back as the error.
func (s *ObjectStorage) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (StoredObject, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := s.objectKey(filename)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.settings.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return StoredObject{}, fmt.Errorf("put object %s: %w", key, err)
	}

	return StoredObject{
		URL:         s.objectURL(key),
		Key:         key,
		Bucket:      s.settings.Bucket,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
	}, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename reduces a client file name to a safe object key segment.
func SanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	name = unsafeKeyChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		return "file"
	}
	return name
}

func (s *ObjectStorage) objectKey(filename string) string {
	return fmt.Sprintf("%s/%s-%s", s.settings.Folder, s.newID(), SanitizeFilename(filename))
}

func (s *ObjectStorage) objectURL(key string) string {
	switch {
	case s.settings.PublicURL != "":
		return fmt.Sprintf("%s/%s", s.settings.PublicURL, key)
	case s.settings.Endpoint != "":
		return fmt.Sprintf("%s/%s/%s", s.settings.Endpoint, s.settings.Bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.settings.Bucket, s.settings.Region, key)
	}
}
