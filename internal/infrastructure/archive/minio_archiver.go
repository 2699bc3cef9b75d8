// Package archive copia los vales emitidos a un bucket S3/MinIO.
package archive

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/vale-consumo/pkg/logger"
)

// MinioArchiver sube PDF y sidecar bajo el prefijo del año/mes de emisión.
type MinioArchiver struct {
	client *minio.Client
	bucket string
	log    *logger.Logger
}

// NewMinioArchiver construye el cliente. No contacta al servidor.
func NewMinioArchiver(endpoint, accessKey, secretKey, bucket string, useSSL bool, log *logger.Logger) (*MinioArchiver, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("archive: cliente minio: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &MinioArchiver{client: client, bucket: bucket, log: log}, nil
}

// EnsureBucket crea el bucket si no existe.
func (a *MinioArchiver) EnsureBucket(ctx context.Context) error {
	found, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("archive: verificar bucket %s: %w", a.bucket, err)
	}
	if !found {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("archive: crear bucket %s: %w", a.bucket, err)
		}
	}
	return nil
}

// Archive sube cada archivo no vacío de files bajo prefix.
func (a *MinioArchiver) Archive(ctx context.Context, prefix string, files ...string) error {
	for _, f := range files {
		if f == "" {
			continue
		}
		name := ObjectName(prefix, f)
		_, err := a.client.FPutObject(ctx, a.bucket, name, f, minio.PutObjectOptions{
			ContentType: contentType(f),
		})
		if err != nil {
			return fmt.Errorf("archive: subir %s: %w", name, err)
		}
		a.log.Debug().Str("bucket", a.bucket).Str("object", name).Msg("archivo subido")
	}
	return nil
}

// ObjectName arma la clave del objeto: prefix/nombre_de_archivo.
func ObjectName(prefix, file string) string {
	base := filepath.Base(file)
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return base
	}
	return prefix + "/" + base
}

func contentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".pdf":
		return "application/pdf"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// NoopArchiver se usa cuando no hay endpoint configurado.
type NoopArchiver struct{}

// Archive no hace nada.
func (NoopArchiver) Archive(context.Context, string, ...string) error { return nil }
