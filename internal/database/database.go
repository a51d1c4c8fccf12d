package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// --- Clientes globales ---
// Mongo es la base principal. Los demás son opcionales: si no están
// configurados el servidor sigue funcionando en modo degradado.
var (
	Client  *mongo.Client
	Mongo   *mongo.Database
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client
)

func Connect() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectMongo(ctx)
	connectRedis(ctx)
	connectElastic()
	connectMinIO(ctx)
}

// Disponible indica si hay base de datos; sin MONGO_URI la tienda
// arranca igual pero cada operación avisa que no hay datos.
func Disponible() bool {
	return Mongo != nil
}

func Products() *mongo.Collection      { return Mongo.Collection("products") }
func Users() *mongo.Collection         { return Mongo.Collection("users") }
func Orders() *mongo.Collection        { return Mongo.Collection("orders") }
func Prescriptions() *mongo.Collection { return Mongo.Collection("prescriptions") }

// =============================================
// MONGODB
// =============================================
func connectMongo(ctx context.Context) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Println("⚠️  MONGO_URI no encontrada. Modo sin base de datos activado")
		return
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Println("❌ Error conectando a MongoDB:", err)
		return
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Println("❌ MongoDB no responde al ping:", err)
		return
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "farmacia"
	}

	Client = client
	Mongo = client.Database(dbName)
	log.Println("✅ Conectado a MongoDB correctamente:", dbName)
}

// =============================================
// REDIS (opcional: rate limit de login y caché del catálogo)
// =============================================
func connectRedis(ctx context.Context) {
	addr := os.Getenv("REDIS_HOST")
	if addr == "" {
		log.Println("⚠️  Redis no configurado — sin caché ni rate limit")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("❌ Error conexión Redis:", err)
		return
	}

	Redis = client
	log.Println("✅ Conectado a Redis")
}

// =============================================
// ELASTICSEARCH (opcional: búsqueda del catálogo)
// =============================================
func connectElastic() {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️  Elasticsearch no configurado — la búsqueda usará MongoDB")
		return
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Println("❌ Error creando cliente Elasticsearch:", err)
		return
	}

	res, err := client.Info()
	if err != nil {
		log.Println("❌ Error conexión Elasticsearch:", err)
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Conectado a Elasticsearch")
}

// =============================================
// MINIO (opcional: almacenamiento de imágenes y recetas)
// =============================================
func connectMinIO(ctx context.Context) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		log.Println("⚠️  MinIO no configurado — las subidas se guardan en disco local")
		return
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
		Secure: os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		log.Println("❌ Error conexión MinIO:", err)
		return
	}

	bucketName := os.Getenv("MINIO_BUCKET")
	if bucketName == "" {
		bucketName = "farmacia-uploads"
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		log.Println("❌ Error verificación bucket MinIO:", err)
		return
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			log.Println("❌ Error creación bucket MinIO:", err)
			return
		}
		log.Println("🪣 Bucket creado:", bucketName)
	}

	MinIO = client
	log.Println("✅ Conectado a MinIO:", endpoint)
}

// Close cierra las conexiones abiertas (se usa al apagar el servidor).
func Close() {
	if Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := Client.Disconnect(ctx); err != nil {
			log.Println("❌ Error cerrando MongoDB:", err)
		} else {
			log.Println("🔌 Conexión MongoDB cerrada")
		}
	}
	if Redis != nil {
		_ = Redis.Close()
	}
}
