package openfoodfacts_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/limbo/trkr/internal/provider/openfoodfacts"
	"github.com/stretchr/testify/assert"
)

func TestSearch(t *testing.T) {
	ctx := context.Background()
	t.Run("maps products to foods", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/cgi/search.pl", r.URL.Path)
			assert.Equal(t, "peanut butter", r.URL.Query().Get("search_terms"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "20", r.URL.Query().Get("page_size"))
			assert.Equal(t, "trkr/1.0", r.Header.Get("User-Agent"))
			w.Write([]byte(`{"products": [
				{"code": "123", "product_name": "Peanut Butter", "brands": "NutCo",
				 "serving_size": "32g",
				 "nutriments": {"energy-kcal_100g": 588.4, "proteins_100g": 25.1, "carbohydrates_100g": 20.3, "fat_100g": 50.6}},
				{"code": "456", "product_name": "  ", "nutriments": {}}
			]}`))
		}))
		defer server.Close()
		client := &openfoodfacts.Client{BaseURL: server.URL}
		foods, err := client.Search(ctx, "peanut butter", 2)
		assert.NoError(t, err)
		assert.Equal(t, 2, len(foods))
		assert.Equal(t, openfoodfacts.Food{
			ID:          "123",
			Name:        "Peanut Butter",
			Brand:       "NutCo",
			Calories:    588,
			Protein:     25,
			Carbs:       20,
			Fat:         51,
			ServingSize: "32g",
		}, foods[0])
		// Blank names and serving sizes get placeholders
		assert.Equal(t, "Unknown", foods[1].Name)
		assert.Equal(t, "100g", foods[1].ServingSize)
	})
	t.Run("page below one clamps to one", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			w.Write([]byte(`{"products": []}`))
		}))
		defer server.Close()
		client := &openfoodfacts.Client{BaseURL: server.URL}
		foods, err := client.Search(ctx, "rice", 0)
		assert.NoError(t, err)
		assert.Empty(t, foods)
	})
	t.Run("upstream error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()
		client := &openfoodfacts.Client{BaseURL: server.URL}
		_, err := client.Search(ctx, "rice", 1)
		assert.Error(t, err)
	})
	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer server.Close()
		client := &openfoodfacts.Client{BaseURL: server.URL}
		_, err := client.Search(ctx, "rice", 1)
		assert.Error(t, err)
	})
}

func TestBarcode(t *testing.T) {
	ctx := context.Background()
	t.Run("known product", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v0/product/5901234123457.json", r.URL.Path)
			w.Write([]byte(`{"status": 1, "product":
				{"code": "5901234123457", "product_name": "Dark Chocolate", "brands": "ChocoCo",
				 "nutriments": {"energy-kcal_100g": 546, "proteins_100g": 4.9, "carbohydrates_100g": 61.2, "fat_100g": 31.1}}}`))
		}))
		defer server.Close()
		client := &openfoodfacts.Client{BaseURL: server.URL}
		food, err := client.Barcode(ctx, "5901234123457")
		assert.NoError(t, err)
		if assert.NotNil(t, food) {
			assert.Equal(t, "Dark Chocolate", food.Name)
			assert.Equal(t, 546, food.Calories)
			assert.Equal(t, 5.0, food.Protein)
		}
	})
	t.Run("unknown product gives nil without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": 0, "status_verbose": "product not found"}`))
		}))
		defer server.Close()
		client := &openfoodfacts.Client{BaseURL: server.URL}
		food, err := client.Barcode(ctx, "000")
		assert.NoError(t, err)
		assert.Nil(t, food)
	})
	t.Run("upstream error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()
		client := &openfoodfacts.Client{BaseURL: server.URL}
		_, err := client.Barcode(ctx, "000")
		assert.Error(t, err)
	})
}
