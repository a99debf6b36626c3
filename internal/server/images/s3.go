package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	sc "github.com/maaz2022/ourtracker/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// S3 uploads decoded payloads to an S3 compatible bucket (MinIO in
// development) and keeps the object key on the row.
type S3 struct {
	client *s3.Client
	bucket string
}

func NewS3(ctx context.Context, cfg *sc.Config) (*S3, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3{client: client, bucket: cfg.S3Bucket}, nil
}

// GetRandomStorageKey returns a fresh object key under a date prefix.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("inventory/%04d/%02d/%02d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *S3) Put(ctx context.Context, payload string) (*string, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, nil
	}

	data, contentType, err := Decode(payload)
	if err != nil {
		return nil, err
	}

	key := GetRandomStorageKey()
	_, err = putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("error uploading image: %w", err)
	}

	return &key, nil
}

// Decode accepts raw base64 or a data URL ("data:image/png;base64,...") and
// returns the bytes with their content type.
func Decode(payload string) ([]byte, string, error) {
	contentType := ""
	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		meta, body, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(meta, ";base64") {
			return nil, "", fmt.Errorf("unsupported data url")
		}
		contentType = strings.TrimSuffix(meta, ";base64")
		payload = body
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid image payload: %w", err)
	}

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
