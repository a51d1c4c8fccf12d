package users

import (
	"context"
	"time"

	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Los documentos de usuario más viejos no traen las subestructuras de
// notificaciones ni dirección. La señal es únicamente la presencia del
// campo: una subestructura presente pero vacía no se toca.

func DefaultNotificaciones() *models.Notificaciones {
	return &models.Notificaciones{
		EmailPromociones:  true,
		EmailPedidos:      true,
		EmailRecetas:      true,
		SMSNotificaciones: false,
	}
}

func DefaultDireccion() *models.Direccion {
	return &models.Direccion{
		Ciudad: "Guadalajara",
		Estado: "Jalisco",
	}
}

// Normalize rellena en memoria las subestructuras que falten. El puntero
// nil después del decode bson significa que el campo no venía en el
// documento.
func Normalize(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	if u.Notifications == nil {
		u.Notifications = DefaultNotificaciones()
	}
	if u.Direccion == nil {
		u.Direccion = DefaultDireccion()
	}
	return u
}

// Get busca el usuario por id y lo devuelve ya normalizado.
// Devuelve nil si el id es inválido o no hay documento.
func Get(ctx context.Context, id string) *models.User {
	if id == "" || !database.Disponible() {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var u models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		return nil
	}
	return Normalize(&u)
}

// MigrationDelta calcula, sobre el documento crudo, solo los campos que
// faltan. Devuelve un bson.M vacío cuando no hay nada que escribir.
func MigrationDelta(doc bson.M) bson.M {
	delta := bson.M{}
	if _, ok := doc["notifications"]; !ok {
		delta["notifications"] = DefaultNotificaciones()
	}
	if _, ok := doc["direccion"]; !ok {
		delta["direccion"] = DefaultDireccion()
	}
	return delta
}

// MigrateAll recorre toda la colección de usuarios y persiste el
// backfill, escribiendo únicamente el delta por documento.
func MigrateAll(ctx context.Context) (int, error) {
	cursor, err := database.Users().Find(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	migrados := 0
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		delta := MigrationDelta(doc)
		if len(delta) == 0 {
			continue
		}
		if _, err := database.Users().UpdateOne(ctx, bson.M{"_id": doc["_id"]}, bson.M{"$set": delta}); err != nil {
			return migrados, err
		}
		migrados++
	}
	return migrados, cursor.Err()
}
