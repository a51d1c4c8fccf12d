package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/users"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// Rutas de mantenimiento, solo registradas con DEBUG=true.

//
// GET /admin/clean — vacía todas las colecciones
//
func AdminClean(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	colecciones := []string{"products", "users", "orders", "prescriptions"}
	for _, nombre := range colecciones {
		if _, err := database.Mongo.Collection(nombre).DeleteMany(ctx, bson.M{}); err != nil {
			log.Printf("❌ Error limpiando %s: %v", nombre, err)
		}
	}

	flashRedirect(c, "Base de datos limpiada (solo desarrollo)", "/")
}

//
// GET /admin/migrate-users — completa los campos faltantes de usuarios viejos
//
func MigrateUsers(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	migrados, err := users.MigrateAll(ctx)
	if err != nil {
		log.Println("❌ Error migrando usuarios:", err)
		flashRedirect(c, "❌ Error durante la migración", "/")
		return
	}

	flashRedirect(c, fmt.Sprintf("✅ %d usuarios migrados correctamente", migrados), "/")
}
