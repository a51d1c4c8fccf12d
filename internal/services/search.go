package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const indexProductos = "products"

//
// --- INDEXACIÓN EN ELASTICSEARCH ---
//

// IndexProduct indexa un producto del catálogo en Elasticsearch.
// Si Elastic no está configurado, no hace nada.
func IndexProduct(p models.Product) {
	if database.Elastic == nil {
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      indexProductos,
		DocumentID: p.ID.Hex(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Error enviando a Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic devolvió error para %s: %s", p.Name, res.String())
	}
}

// RemoveFromIndex quita un producto del índice (al eliminarlo del catálogo).
func RemoveFromIndex(id string) {
	if database.Elastic == nil {
		return
	}

	req := esapi.DeleteRequest{Index: indexProductos, DocumentID: id}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Error borrando del índice:", err)
		return
	}
	res.Body.Close()
}

//
// --- BÚSQUEDA ---
//

// BuscarProductos busca por nombre y descripción. Primero intenta
// Elasticsearch; si no está configurado o no responde, cae al regex
// de MongoDB (insensible a mayúsculas), igual que el catálogo original.
func BuscarProductos(ctx context.Context, query string) ([]models.Product, error) {
	if productos, err := buscarElastic(query); err == nil {
		return productos, nil
	}
	return buscarMongo(ctx, query)
}

func buscarElastic(query string) ([]models.Product, error) {
	if database.Elastic == nil {
		return nil, errors.New("cliente Elasticsearch no inicializado")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "description"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{
		Index: []string{indexProductos},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.New("índice no encontrado o vacío")
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	productos := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		productos = append(productos, hit.Source)
	}
	return productos, nil
}

func buscarMongo(ctx context.Context, query string) ([]models.Product, error) {
	if !database.Disponible() {
		return nil, errors.New("base de datos no disponible")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filtro := bson.M{"$or": bson.A{
		bson.M{"name": bson.M{"$regex": query, "$options": "i"}},
		bson.M{"description": bson.M{"$regex": query, "$options": "i"}},
	}}

	cursor, err := database.Products().Find(ctx, filtro)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var productos []models.Product
	if err := cursor.All(ctx, &productos); err != nil {
		return nil, err
	}
	return productos, nil
}

//
// --- CATÁLOGO COMPLETO (con caché Redis) ---
//

const (
	catalogoCacheKey = "products:all"
	catalogoCacheTTL = time.Hour
)

// ListarProductos devuelve el catálogo completo ordenado por fecha de
// creación descendente, con caché en Redis cuando está disponible.
func ListarProductos(ctx context.Context) ([]models.Product, error) {
	if database.Redis != nil {
		if val, err := database.Redis.Get(ctx, catalogoCacheKey).Result(); err == nil && val != "" {
			var cached []models.Product
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	if !database.Disponible() {
		return nil, errors.New("base de datos no disponible")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.Products().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var productos []models.Product
	if err := cursor.All(ctx, &productos); err != nil {
		return nil, err
	}

	if database.Redis != nil {
		if data, err := json.Marshal(productos); err == nil {
			database.Redis.Set(ctx, catalogoCacheKey, data, catalogoCacheTTL)
		}
	}

	return productos, nil
}

// InvalidarCatalogo tira la caché tras cualquier escritura de admin.
func InvalidarCatalogo(ctx context.Context) {
	if database.Redis != nil {
		database.Redis.Del(ctx, catalogoCacheKey)
	}
}
