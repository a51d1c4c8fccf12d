package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore guarda las subidas en un directorio del disco,
// igual que la versión original de la tienda.
type LocalStore struct {
	Dir string
}

func (s LocalStore) Save(_ context.Context, filename string, r io.Reader, _ int64, _ string) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(s.Dir, NombreSeguro(filename)))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, r)
	return err
}

func (s LocalStore) Open(_ context.Context, filename string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.Dir, NombreSeguro(filename)))
}

func (s LocalStore) Remove(_ context.Context, filename string) error {
	path := filepath.Join(s.Dir, NombreSeguro(filename))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}
