// Package blob implementa ports.BlobStore sobre S3 (o MinIO) y en memoria.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/jhoicas/Catalogos-api/internal/application/ports"
	"github.com/jhoicas/Catalogos-api/internal/domain"
)

var _ ports.BlobStore = (*S3Store)(nil)

// S3Config parámetros del bucket. Sin AccessKeyID se usa la cadena de credenciales por defecto.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // opcional (MinIO)
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

// S3Store guarda objetos en un único bucket; la clave del objeto es la clave recibida.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3Store construye el cliente S3.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("blob: bucket S3 requerido")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("blob: cargar config AWS: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Store{client: client, presign: s3.NewPresignClient(client), bucket: cfg.Bucket}, nil
}

// Put sube (o reemplaza) el objeto.
func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (ports.BlobInfo, error) {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return ports.BlobInfo{}, fmt.Errorf("blob: put %s: %w", key, err)
	}
	return ports.BlobInfo{Key: key, ContentType: contentType, Size: size, UpdatedAt: time.Now().UTC()}, nil
}

// Get descarga el objeto; el llamador cierra el body.
func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, ports.BlobInfo, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ports.BlobInfo{}, fmt.Errorf("blob %s: %w", key, domain.ErrNotFound)
		}
		return nil, ports.BlobInfo{}, fmt.Errorf("blob: get %s: %w", key, err)
	}
	info := ports.BlobInfo{
		Key:         key,
		ContentType: aws.ToString(out.ContentType),
		Size:        aws.ToInt64(out.ContentLength),
		UpdatedAt:   aws.ToTime(out.LastModified),
	}
	return out.Body, info, nil
}

// Delete elimina el objeto. S3 no falla si no existe.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)}); err != nil {
		return fmt.Errorf("blob: delete %s: %w", key, err)
	}
	return nil
}

// PresignURL firma un GET temporal (15 minutos por defecto).
func (s *S3Store) PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	out, err := s.presign.PresignGetObject(ctx,
		&s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)},
		func(po *s3.PresignOptions) { po.Expires = ttl },
	)
	if err != nil {
		return "", fmt.Errorf("blob: presign %s: %w", key, err)
	}
	return out.URL, nil
}
