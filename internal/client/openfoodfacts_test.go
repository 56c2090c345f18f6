package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodfacts/explorer/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) CatalogClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewOpenFoodFactsClient(config.APIConfig{
		BaseURL:              srv.URL,
		Timeout:              5,
		PageSize:             20,
		MaxRequestsPerSecond: 0, // unlimited in tests
		UserAgent:            "foodcart-test",
	})
}

func TestClient_FeedDecodesAndNormalizes(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"page":      q.Get("page"),
			"page_size": q.Get("page_size"),
			"sort_by":   q.Get("sort_by"),
			"fields":    q.Get("fields"),
		}
		w.Write([]byte(`{"products":[
			{"code":"111","product_name":"Nutella","nutrition_grade_fr":"e","image_front_url":"http://img/front.jpg"},
			{"code":"222","nutrition_grades":"a"}
		]}`))
	}))

	products := c.Feed(context.Background(), 3)

	require.Len(t, products, 2)
	assert.Equal(t, "111", products[0].Code)
	assert.Equal(t, "Nutella", products[0].Name)
	assert.Equal(t, "e", products[0].Grade, "nutrition_grade_fr fills the canonical grade")
	assert.Equal(t, "http://img/front.jpg", products[0].ImageURL)
	assert.Equal(t, "a", products[1].Grade)
	assert.Empty(t, products[1].Name)

	assert.Equal(t, "3", gotQuery["page"])
	assert.Equal(t, "20", gotQuery["page_size"])
	assert.Equal(t, "unique_scans_n", gotQuery["sort_by"])
	assert.Equal(t, fieldProjection, gotQuery["fields"])
}

func TestClient_SearchSendsTerm(t *testing.T) {
	var gotTerm string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTerm = r.URL.Query().Get("search_terms")
		w.Write([]byte(`{"products":[{"code":"111"}]}`))
	}))

	products := c.Search(context.Background(), "peanut butter")

	assert.Equal(t, "peanut butter", gotTerm)
	require.Len(t, products, 1)
	assert.Equal(t, "111", products[0].Code)
}

func TestClient_ByCategoryHitsCategoryPath(t *testing.T) {
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"products":[{"code":"111"},{"code":"222"}]}`))
	}))

	products := c.ByCategory(context.Background(), "en:snacks")

	assert.Equal(t, "/category/en:snacks.json", gotPath)
	assert.Len(t, products, 2)
}

func TestClient_HTTPErrorCoercesToEmpty(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	assert.Empty(t, c.Feed(context.Background(), 1))
	assert.Empty(t, c.Search(context.Background(), "tea"))
	assert.Empty(t, c.ByCategory(context.Background(), "en:snacks"))
	assert.Empty(t, c.Categories(context.Background()))

	_, ok := c.Lookup(context.Background(), "111")
	assert.False(t, ok)
}

func TestClient_MalformedBodyCoercesToEmpty(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))

	assert.Empty(t, c.Feed(context.Background(), 1))

	_, ok := c.Lookup(context.Background(), "111")
	assert.False(t, ok)
}

func TestClient_TransportFailureCoercesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // nothing is listening anymore

	c := NewOpenFoodFactsClient(config.APIConfig{
		BaseURL:  url,
		Timeout:  1,
		PageSize: 20,
	})

	assert.Empty(t, c.Feed(context.Background(), 1))
}

func TestClient_LookupFound(t *testing.T) {
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"status":1,"product":{
			"code":"3017620422003",
			"product_name":"Nutella",
			"brands":"Ferrero",
			"nutrition_grades":"e",
			"nutriments":{"fat":30.9,"energy-kcal":539}
		}}`))
	}))

	product, ok := c.Lookup(context.Background(), "3017620422003")

	require.True(t, ok)
	assert.Equal(t, "/api/v0/product/3017620422003.json", gotPath)
	assert.Equal(t, "Nutella", product.Name)
	assert.Equal(t, "Ferrero", product.Brands)
	require.NotNil(t, product.Nutriments.Fat)
	assert.Equal(t, 30.9, *product.Nutriments.Fat)
	require.NotNil(t, product.Nutriments.EnergyKcal)
	assert.Equal(t, 539.0, *product.Nutriments.EnergyKcal)
	assert.Nil(t, product.Nutriments.Salt)
}

func TestClient_LookupAbsentProduct(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":0,"status_verbose":"product not found"}`))
	}))

	_, ok := c.Lookup(context.Background(), "000")
	assert.False(t, ok)
}

func TestClient_CategoriesDecodesTags(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories.json", r.URL.Path)
		w.Write([]byte(`{"tags":[
			{"id":"en:snacks","name":"Snacks"},
			{"id":"en:beverages","name":"Beverages"}
		]}`))
	}))

	categories := c.Categories(context.Background())

	require.Len(t, categories, 2)
	assert.Equal(t, "en:snacks", categories[0].ID)
	assert.Equal(t, "Snacks", categories[0].Name)
}
