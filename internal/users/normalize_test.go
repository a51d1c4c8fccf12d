package users

import (
	"testing"

	"farmacia_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeRellenaCamposFaltantes(t *testing.T) {
	u := &models.User{Email: "viejo@ejemplo.com"}

	Normalize(u)

	require.NotNil(t, u.Notifications)
	assert.True(t, u.Notifications.EmailPromociones)
	assert.True(t, u.Notifications.EmailPedidos)
	assert.True(t, u.Notifications.EmailRecetas)
	assert.False(t, u.Notifications.SMSNotificaciones)

	require.NotNil(t, u.Direccion)
	assert.Equal(t, "Guadalajara", u.Direccion.Ciudad)
	assert.Equal(t, "Jalisco", u.Direccion.Estado)
}

func TestNormalizeNoTocaCamposPresentes(t *testing.T) {
	// Una subestructura presente pero con todo apagado es una elección
	// del usuario, no un documento viejo.
	prefs := &models.Notificaciones{}
	dir := &models.Direccion{Ciudad: "Zapopan"}
	u := &models.User{Notifications: prefs, Direccion: dir}

	Normalize(u)

	assert.Same(t, prefs, u.Notifications)
	assert.False(t, u.Notifications.EmailPedidos)
	assert.Equal(t, "Zapopan", u.Direccion.Ciudad)
}

func TestNormalizeNil(t *testing.T) {
	assert.Nil(t, Normalize(nil))
}

func TestMigrationDelta(t *testing.T) {
	t.Run("documento viejo sin subestructuras", func(t *testing.T) {
		delta := MigrationDelta(bson.M{"email": "viejo@ejemplo.com"})
		require.Len(t, delta, 2)
		assert.Contains(t, delta, "notifications")
		assert.Contains(t, delta, "direccion")
	})

	t.Run("documento parcial", func(t *testing.T) {
		delta := MigrationDelta(bson.M{
			"email":         "parcial@ejemplo.com",
			"notifications": bson.M{"email_pedidos": false},
		})
		require.Len(t, delta, 1)
		assert.Contains(t, delta, "direccion")
	})

	t.Run("documento completo no genera escritura", func(t *testing.T) {
		delta := MigrationDelta(bson.M{
			"notifications": bson.M{},
			"direccion":     bson.M{},
		})
		assert.Empty(t, delta)
	})
}
