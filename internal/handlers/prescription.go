package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/models"
	"farmacia_back_end/internal/session"
	"farmacia_back_end/internal/storage"

	"github.com/gin-gonic/gin"
)

//
// GET /prescription/upload
//
func UploadPrescriptionForm(c *gin.Context) {
	render(c, http.StatusOK, "upload_prescription.html", gin.H{"Email": session.UserEmail(c)})
}

//
// POST /prescription/upload — multipart con el archivo de la receta
//
func UploadPrescription(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	email := strings.TrimSpace(c.PostForm("email"))
	notas := strings.TrimSpace(c.PostForm("notes"))

	if email == "" {
		flashRedirect(c, "Por favor ingresa tu correo electrónico", "/prescription/upload")
		return
	}

	fileHeader, err := c.FormFile("prescription")
	if err != nil || fileHeader.Filename == "" {
		flashRedirect(c, "Por favor selecciona un archivo", "/prescription/upload")
		return
	}

	if !storage.ExtensionPermitida(fileHeader.Filename) {
		flashRedirect(c, "Tipo de archivo no permitido. Use PNG, JPG, JPEG o GIF", "/prescription/upload")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		flashRedirect(c, "Error al subir la receta", "/prescription/upload")
		return
	}
	defer f.Close()

	filename := storage.NombreAlmacenado(fileHeader.Filename)
	err = storage.Activo().Save(c.Request.Context(), filename, f, fileHeader.Size,
		fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Println("❌ Error guardando receta:", err)
		flashRedirect(c, "Error al subir la receta", "/prescription/upload")
		return
	}

	doc := models.Prescription{
		Email:            email,
		Filename:         filename,
		OriginalFilename: fileHeader.Filename,
		Notes:            notas,
		UploadedAt:       time.Now().UTC(),
		Status:           models.PrescriptionStatusPending,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := database.Prescriptions().InsertOne(ctx, doc); err != nil {
		log.Println("❌ Error registrando receta:", err)
		flashRedirect(c, "Error al subir la receta", "/prescription/upload")
		return
	}

	flashRedirect(c, "✅ Receta subida correctamente. Será revisada por nuestro equipo.", "/")
}
