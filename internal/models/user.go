package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notificaciones son las preferencias de correo/SMS del usuario.
// El puntero nil en User indica que el documento aún no trae la subestructura.
type Notificaciones struct {
	EmailPromociones  bool `bson:"email_promociones" json:"email_promociones"`
	EmailPedidos      bool `bson:"email_pedidos" json:"email_pedidos"`
	EmailRecetas      bool `bson:"email_recetas" json:"email_recetas"`
	SMSNotificaciones bool `bson:"sms_notificaciones" json:"sms_notificaciones"`
}

type Direccion struct {
	Calle          string `bson:"calle" json:"calle"`
	NumeroExterior string `bson:"numero_exterior" json:"numero_exterior"`
	NumeroInterior string `bson:"numero_interior" json:"numero_interior"`
	Colonia        string `bson:"colonia" json:"colonia"`
	Ciudad         string `bson:"ciudad" json:"ciudad"`
	Estado         string `bson:"estado" json:"estado"`
	CodigoPostal   string `bson:"codigo_postal" json:"codigo_postal"`
	Referencias    string `bson:"referencias" json:"referencias"`
}

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"user_id"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"`
	Nombre          string             `bson:"nombre,omitempty" json:"nombre,omitempty"`
	Apellido        string             `bson:"apellido,omitempty" json:"apellido,omitempty"`
	Telefono        string             `bson:"telefono,omitempty" json:"telefono,omitempty"`
	FechaNacimiento string             `bson:"fecha_nacimiento,omitempty" json:"fecha_nacimiento,omitempty"`
	Genero          string             `bson:"genero,omitempty" json:"genero,omitempty"`
	Role            string             `bson:"role" json:"role"`
	Notifications   *Notificaciones    `bson:"notifications,omitempty" json:"notifications,omitempty"`
	Direccion       *Direccion         `bson:"direccion,omitempty" json:"direccion,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// NombreCompleto devuelve algo presentable para el saludo de bienvenida.
func (u *User) NombreCompleto() string {
	if u.Nombre == "" {
		return u.Email
	}
	if u.Apellido == "" {
		return u.Nombre
	}
	return u.Nombre + " " + u.Apellido
}
