package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"farmacia_back_end/internal/storage"

	"github.com/gin-gonic/gin"
)

var tiposImagen = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

//
// GET /images/:filename — sirve las imágenes subidas (local o MinIO)
//
func ServeImage(c *gin.Context) {
	filename := storage.NombreSeguro(c.Param("filename"))

	rc, err := storage.Activo().Open(c.Request.Context(), filename)
	if err != nil {
		NotFound(c)
		return
	}
	defer rc.Close()

	contentType := tiposImagen[strings.ToLower(filepath.Ext(filename))]
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}
