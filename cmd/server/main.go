package main

import (
	"log"
	"os"

	"farmacia_back_end/internal/config"
	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/routes"
	"farmacia_back_end/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	database.Connect()
	defer database.Close()

	session.Init(os.Getenv("SECRET_KEY"))

	r := gin.Default()
	r.Use(cors.Default())

	r.LoadHTMLGlob("templates/*.html")
	r.Static("/static", "./static")

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Farmacias La Guadalajara en el puerto", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Error arrancando el servidor:", err)
	}
}
