package storage

import (
	"context"
	"io"

	"farmacia_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// MinIOStore guarda las subidas en un bucket cuando MINIO_ENDPOINT
// está configurado.
type MinIOStore struct {
	Bucket string
}

func (s MinIOStore) Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) error {
	_, err := database.MinIO.PutObject(ctx, s.Bucket, NombreSeguro(filename), r, size,
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s MinIOStore) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	obj, err := database.MinIO.GetObject(ctx, s.Bucket, NombreSeguro(filename), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject es perezoso: un Stat fuerza el error si el objeto no existe.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

func (s MinIOStore) Remove(ctx context.Context, filename string) error {
	return database.MinIO.RemoveObject(ctx, s.Bucket, NombreSeguro(filename), minio.RemoveObjectOptions{})
}
