package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-farm-store/internal/repository"
	"go-farm-store/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, authEnabled bool) *fiber.App {
	t.Helper()
	kv := repository.NewMemoryKV()
	store, err := service.NewStoreService(context.Background(), repository.NewProductRepo(kv), repository.NewSaleRepo(kv), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	auth, err := service.NewAuthService(authEnabled, "admin@farm.test", "hay-bale", "test-secret", time.Hour)
	require.NoError(t, err)

	carts := service.NewCartService(store)
	app := fiber.New()
	SetupRoutes(app, Services{
		Store:     store,
		Carts:     carts,
		Checkout:  service.NewCheckoutService(carts, nil, 0),
		Shop:      service.NewShopService(store),
		Dashboard: service.NewDashboardService(store),
		Auth:      auth,
	})
	return app
}

// call sends body as JSON and decodes the JSON reply into out when non-nil.
func call(t *testing.T, app *fiber.App, method, path string, body interface{}, token string, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestShopRoutes(t *testing.T) {
	app := newTestApp(t, false)

	var page map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/shop", nil, "", &page))
	assert.Equal(t, float64(6), page["total"])
	products := page["products"].([]interface{})
	first := products[0].(map[string]interface{})
	assert.Equal(t, "cattle-mix", first["id"])
	assert.Equal(t, true, first["isPopular"])

	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/shop?q=oats&per_page=2&page=2&view=list", nil, "", &page))
	assert.Equal(t, float64(3), page["total"])
	assert.Equal(t, float64(2), page["total_pages"])
	assert.Equal(t, "list", page["view"])
	assert.Len(t, page["products"], 1)

	var farPage map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/shop?page=9223372036854775807&per_page=9223372036854775807", nil, "", &farPage))
	assert.Empty(t, farPage["products"])

	var product map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/products/horse-oats", nil, "", &product))
	assert.Equal(t, "Horse Oats", product["name"])
	assert.Equal(t, 38.99, product["price"])

	var errBody map[string]interface{}
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/v1/products/tractor", nil, "", &errBody))
	assert.Equal(t, "Product not found", errBody["error"])
}

func TestCartFlow(t *testing.T) {
	app := newTestApp(t, false)

	var cart map[string]interface{}
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/v1/carts", nil, "", &cart))
	cartPath := "/api/v1/carts/" + cart["id"].(string)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, cartPath+"/items", map[string]string{"product_id": "chicken-feed"}, "", &cart))
	}
	assert.Equal(t, float64(2), cart["item_count"])
	assert.InDelta(t, 49.98, cart["total"], 1e-9)
	assert.Len(t, cart["items"], 1)

	var sales []map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/admin/sales", nil, "", &sales))
	assert.Len(t, sales, 2)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, cartPath+"/items/chicken-feed", map[string]int{"quantity": 5}, "", &cart))
	assert.Equal(t, float64(5), cart["item_count"])

	var errBody map[string]interface{}
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodPost, cartPath+"/items", map[string]string{"product_id": "tractor"}, "", &errBody))
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, cartPath+"/items", map[string]string{}, "", &errBody))

	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, cartPath+"/checkout", map[string]string{"email": "jo@farm.test"}, "", &errBody))

	form := map[string]string{
		"email": "jo@farm.test", "first_name": "Jo", "last_name": "Miller",
		"address": "1 Barn Road", "city": "Ames", "state": "IA", "zip": "50010",
		"card_number": "4242424242424242", "expiry": "12/29", "cvv": "123",
	}
	var order map[string]interface{}
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, cartPath+"/checkout", form, "", &order))
	data := order["data"].(map[string]interface{})
	assert.Equal(t, float64(5), data["item_count"])
	assert.InDelta(t, 124.95, data["total"], 1e-9)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, cartPath, nil, "", &cart))
	assert.Equal(t, float64(0), cart["item_count"])

	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, cartPath+"/checkout", form, "", &errBody))
	assert.Equal(t, "no items to checkout", errBody["error"])
}

func TestCartNotFound(t *testing.T) {
	app := newTestApp(t, false)
	var errBody map[string]interface{}

	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/v1/carts/not-a-uuid", nil, "", &errBody))
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/v1/carts/7f1c3a52-0c1e-4a55-9a8e-2f4f7d1f0b11", nil, "", &errBody))
	assert.Equal(t, "cart not found", errBody["error"])
}

func TestAdminCatalogRoutes(t *testing.T) {
	app := newTestApp(t, false)

	input := map[string]interface{}{
		"name":        "Layer Mash",
		"price":       19.99,
		"description": "Crumble for laying hens",
		"category":    "Supplements",
		"stock":       5,
	}
	var created map[string]interface{}
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/v1/admin/products", input, "", &created))
	product := created["data"].(map[string]interface{})
	id := product["id"].(string)
	assert.Equal(t, float64(0), product["salesCount"])

	var errBody map[string]interface{}
	input["category"] = "Toys"
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/v1/admin/products", input, "", &errBody))

	var updated map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPut, "/api/v1/admin/products/"+id, map[string]interface{}{"stock": 50}, "", &updated))
	assert.Equal(t, float64(50), updated["data"].(map[string]interface{})["stock"])

	var toggled map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/v1/admin/products/"+id+"/popular", nil, "", &toggled))
	assert.Equal(t, true, toggled["data"].(map[string]interface{})["isManuallyPopular"])

	var popular []map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/admin/products/popular", nil, "", &popular))
	assert.Equal(t, "cattle-mix", popular[0]["id"])
	assert.Equal(t, id, popular[1]["id"])

	var filtered []map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/admin/products/category/Supplements", nil, "", &filtered))
	assert.Len(t, filtered, 1)

	var found []map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/admin/products/search?q=crumble", nil, "", &found))
	assert.Len(t, found, 1)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodDelete, "/api/v1/admin/products/"+id, nil, "", nil))
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodDelete, "/api/v1/admin/products/"+id, nil, "", &errBody))
	assert.Equal(t, "product not found", errBody["error"])

	var all []map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/admin/products", nil, "", &all))
	assert.Len(t, all, 6)
}

func TestAdminSalesAndDashboard(t *testing.T) {
	app := newTestApp(t, false)

	var sale map[string]interface{}
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/v1/admin/sales",
		map[string]interface{}{"product_id": "cattle-mix", "quantity": 2, "customer_email": "jo@farm.test"}, "", &sale))
	assert.InDelta(t, 91.98, sale["data"].(map[string]interface{})["totalAmount"], 1e-9)

	var errBody map[string]interface{}
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/v1/admin/sales",
		map[string]interface{}{"product_id": "cattle-mix", "quantity": 0}, "", &errBody))
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodPost, "/api/v1/admin/sales",
		map[string]interface{}{"product_id": "tractor", "quantity": 1}, "", &errBody))
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/v1/admin/sales",
		map[string]interface{}{"product_id": "cattle-mix", "quantity": int64(math.MaxInt64)}, "", &errBody))
	assert.Contains(t, errBody["error"], "lte")

	var analytics map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/admin/analytics", nil, "", &analytics))
	assert.Equal(t, float64(2), analytics["totalSales"])
	assert.InDelta(t, 91.98, analytics["totalRevenue"], 1e-9)
	assert.Len(t, analytics["topSellingProducts"], 5)
	assert.Len(t, analytics["categoryStats"], 4)

	var stats map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/admin/dashboard/stats", nil, "", &stats))
	assert.Equal(t, float64(6), stats["total_products"])

	var movement map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/admin/dashboard/sales-movement?days=abc", nil, "", &movement))
	assert.Equal(t, float64(7), movement["period"])
	assert.Len(t, movement["data"], 1)
}

func TestAdminAuth(t *testing.T) {
	app := newTestApp(t, true)
	var body map[string]interface{}

	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodGet, "/api/v1/admin/products", nil, "", &body))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodGet, "/api/v1/admin/products", nil, "garbage", &body))

	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodPost, "/api/v1/admin/login",
		map[string]string{"email": "admin@farm.test", "password": "wrong"}, "", &body))

	var login map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/v1/admin/login",
		map[string]string{"email": "admin@farm.test", "password": "hay-bale"}, "", &login))
	token := login["token"].(string)

	var me map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/admin/me", nil, token, &me))
	assert.Equal(t, "admin@farm.test", me["email"])
	assert.Equal(t, true, me["auth_enabled"])

	var products []map[string]interface{}
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/admin/products", nil, token, &products))
	assert.Len(t, products, 6)

	// the shop stays public
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/shop", nil, "", &body))
}

func TestAdminOpenWhenAuthDisabled(t *testing.T) {
	app := newTestApp(t, false)

	var me map[string]interface{}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/admin/me", nil, "", &me))
	assert.Equal(t, "anonymous", me["email"])

	var body map[string]interface{}
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodPost, "/api/v1/admin/login",
		map[string]string{"email": "admin@farm.test", "password": "hay-bale"}, "", &body))
}
