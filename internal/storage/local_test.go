package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionPermitida(t *testing.T) {
	assert.True(t, ExtensionPermitida("receta.png"))
	assert.True(t, ExtensionPermitida("FOTO.JPG"))
	assert.True(t, ExtensionPermitida("scan.jpeg"))
	assert.True(t, ExtensionPermitida("anim.gif"))

	assert.False(t, ExtensionPermitida("documento.pdf"))
	assert.False(t, ExtensionPermitida("script.png.exe"))
	assert.False(t, ExtensionPermitida("sin_extension"))
	assert.False(t, ExtensionPermitida(""))
}

func TestNombreSeguro(t *testing.T) {
	assert.Equal(t, "receta.png", NombreSeguro("receta.png"))
	assert.Equal(t, "mi_receta_2024.jpg", NombreSeguro("mi receta 2024.jpg"))

	// Separadores de ruta y caracteres raros se neutralizan
	assert.NotContains(t, NombreSeguro("../../etc/passwd"), "/")
	assert.NotContains(t, NombreSeguro(`..\windows\system32`), `\`)

	// Nunca devuelve vacío
	assert.Equal(t, "archivo", NombreSeguro(""))
	assert.Equal(t, "archivo", NombreSeguro("..."))
}

func TestNombreAlmacenado(t *testing.T) {
	nombre := NombreAlmacenado("mi receta.png")

	assert.True(t, strings.HasSuffix(nombre, "_mi_receta.png"))
	// timestamp + uuid al frente: dos nombres seguidos no chocan
	assert.NotEqual(t, nombre, NombreAlmacenado("mi receta.png"))
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	store := LocalStore{Dir: t.TempDir()}

	err := store.Save(ctx, "receta.png", strings.NewReader("contenido"), 9, "image/png")
	require.NoError(t, err)

	rc, err := store.Open(ctx, "receta.png")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))

	require.NoError(t, store.Remove(ctx, "receta.png"))
	_, err = store.Open(ctx, "receta.png")
	assert.Error(t, err)

	// Borrar algo que ya no está no es error
	assert.NoError(t, store.Remove(ctx, "receta.png"))
}

func TestLocalStoreCreaDirectorio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sub", "uploads")
	store := LocalStore{Dir: dir}

	err := store.Save(context.Background(), "a.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "a.png"))
	assert.NoError(t, err)
}
