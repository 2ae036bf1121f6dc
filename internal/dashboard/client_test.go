package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stefan-mouope/terabia-catalog/internal/models"
)

func TestClientCreateSendsMultipartInOrder(t *testing.T) {
	var gotImages []string
	var gotAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Tomates", r.FormValue("title"))
		assert.Equal(t, "1500", r.FormValue("price"))
		assert.Equal(t, "20", r.FormValue("stock"))
		assert.Equal(t, "3", r.FormValue("category_id"))
		for _, fh := range r.MultipartForm.File["images"] {
			gotImages = append(gotImages, fh.Filename)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Product{ID: primitive.NewObjectID(), Title: "Tomates"})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "tok")
	created, err := client.CreateProduct(context.Background(), ProductInput{
		Title: "Tomates", Price: 1500, Stock: 20, CategoryID: 3, Unit: "kg",
	}, []ImageUpload{
		{Filename: "a.jpg", Reader: strings.NewReader("a")},
		{Filename: "b.jpg", Reader: strings.NewReader("b")},
	})

	require.NoError(t, err)
	assert.Equal(t, "Tomates", created.Title)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, gotImages)
}

func TestClientGetByIDParsesEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"id":            "abc123",
				"title":         "Gombo",
				"price":         250,
				"images":        []string{},
				"location_city": "Yaoundé",
				"seller":        nil,
			},
		})
	}))
	defer ts.Close()

	detail, err := NewClient(ts.URL, "").GetProductByID(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Gombo", detail.Title)
	assert.Equal(t, float64(250), detail.Price)
	assert.Nil(t, detail.Seller)
}

func TestClientSurfacesServerMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Produit non trouvé"})
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, "").GetProductByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "Produit non trouvé", err.Error())
}

func TestClientFallsBackToStatusMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	err := NewClient(ts.URL, "").DeleteProduct(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
