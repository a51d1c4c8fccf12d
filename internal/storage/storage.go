package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"farmacia_back_end/internal/database"

	"github.com/google/uuid"
)

// Store abstrae dónde viven las subidas (imágenes de producto y
// recetas). El backend por defecto es el disco local; si MinIO está
// configurado se usa el bucket.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, filename string) (io.ReadCloser, error)
	Remove(ctx context.Context, filename string) error
}

var extensionesPermitidas = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ExtensionPermitida valida la extensión de una subida.
func ExtensionPermitida(filename string) bool {
	return extensionesPermitidas[strings.ToLower(filepath.Ext(filename))]
}

var inseguro = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// NombreSeguro limpia el nombre original: sin rutas, sin caracteres raros.
func NombreSeguro(filename string) string {
	filename = filepath.Base(filename)
	filename = inseguro.ReplaceAllString(filename, "_")
	filename = strings.Trim(filename, "._")
	if filename == "" {
		filename = "archivo"
	}
	return filename
}

// NombreAlmacenado genera el nombre definitivo: prefijo de fecha más un
// fragmento de uuid para evitar colisiones entre subidas del mismo segundo.
func NombreAlmacenado(original string) string {
	stamp := time.Now().UTC().Format("20060102_150405")
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s_%s", stamp, suffix, NombreSeguro(original))
}

// UploadDir devuelve el directorio local configurado para subidas.
func UploadDir() string {
	dir := os.Getenv("UPLOAD_FOLDER")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

// Activo elige el backend según la configuración.
func Activo() Store {
	if database.MinIO != nil {
		return MinIOStore{Bucket: bucketName()}
	}
	return LocalStore{Dir: UploadDir()}
}

func bucketName() string {
	b := os.Getenv("MINIO_BUCKET")
	if b == "" {
		b = "farmacia-uploads"
	}
	return b
}
