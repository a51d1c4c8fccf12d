package main

import (
	"context"
	"log"
	"time"

	"farmacia_back_end/internal/config"
	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/models"
	"farmacia_back_end/internal/users"
	"farmacia_back_end/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Siembra la base con productos de muestra y dos cuentas de prueba.

var productos = []models.Product{
	{Name: "Paracetamol 500mg", Price: 35.50, Category: "analgesicos",
		Description: "Caja con 20 tabletas. Alivio del dolor leve y la fiebre."},
	{Name: "Ibuprofeno 400mg", Price: 48.00, Category: "analgesicos",
		Description: "Caja con 10 cápsulas. Antiinflamatorio y analgésico."},
	{Name: "Amoxicilina 500mg", Price: 89.90, Category: "antibioticos",
		Description: "Frasco con 12 cápsulas. Requiere receta médica."},
	{Name: "Loratadina 10mg", Price: 42.00, Category: "antialergicos",
		Description: "Caja con 10 tabletas. Antihistamínico de 24 horas."},
	{Name: "Omeprazol 20mg", Price: 55.00, Category: "gastrointestinales",
		Description: "Caja con 14 cápsulas. Protector gástrico."},
	{Name: "Vitamina C 1g", Price: 120.00, Category: "vitaminas",
		Description: "Tubo con 20 tabletas efervescentes sabor naranja."},
	{Name: "Electrolitos orales 625ml", Price: 28.50, Category: "hidratacion",
		Description: "Suero rehidratante sabor fresa."},
	{Name: "Gel antibacterial 250ml", Price: 45.00, Category: "higiene",
		Description: "Gel con 70% de alcohol para manos."},
}

func main() {
	config.Load()
	database.Connect()
	defer database.Close()

	if !database.Disponible() {
		log.Fatal("❌ Se necesita MONGO_URI para sembrar la base")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, nombre := range []string{"products", "users", "orders", "prescriptions"} {
		if _, err := database.Mongo.Collection(nombre).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("❌ Error limpiando %s: %v", nombre, err)
		}
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(productos))
	for _, p := range productos {
		p.Active = true
		p.CreatedAt = now
		docs = append(docs, p)
	}
	if _, err := database.Products().InsertMany(ctx, docs); err != nil {
		log.Fatal("❌ Error insertando productos:", err)
	}

	crearUsuario(ctx, "admin@farmacia.com", "admin123", models.RoleAdmin, "Admin", "Farmacia")
	crearUsuario(ctx, "cliente@ejemplo.com", "cliente123", models.RoleUser, "Cliente", "Ejemplo")

	log.Printf("📊 Sembrado completo: %d productos, 2 usuarios", len(productos))
	log.Println("🔑 admin@farmacia.com / admin123")
	log.Println("🔑 cliente@ejemplo.com / cliente123")
}

func crearUsuario(ctx context.Context, email, password, role, nombre, apellido string) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("❌ Error hasheando contraseña:", err)
	}

	user := models.User{
		Email:         email,
		Password:      hashed,
		Nombre:        nombre,
		Apellido:      apellido,
		Role:          role,
		Notifications: users.DefaultNotificaciones(),
		Direccion:     users.DefaultDireccion(),
		CreatedAt:     time.Now().UTC(),
	}

	if _, err := database.Users().InsertOne(ctx, user); err != nil {
		log.Fatalf("❌ Error creando usuario %s: %v", email, err)
	}
}
