package cartControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techstore/storefront-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{},
	))
	return db
}

// newCartRouter wires the cart endpoints behind a stub auth middleware that
// injects the given user id.
func newCartRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
	})
	r.GET("/api/cart", GetUserCart(db))
	r.POST("/api/cart", AddCartItem(db))
	r.PUT("/api/cart/:productId", SetCartItemQuantity(db))
	r.DELETE("/api/cart/:productId", DeleteCartItem(db))
	r.DELETE("/api/cart", ClearUserCart(db))
	return r
}

func createUserWithCart(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.NewString(),
		Name:     "bob",
		Email:    uuid.NewString() + "@example.com",
		Password: "irrelevant",
		Cart:     models.Cart{},
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:              name,
		Price:             price,
		CountInStock:      stock,
		LowStockThreshold: 10,
		ReorderPoint:      5,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeItems(t *testing.T, w *httptest.ResponseRecorder) []models.CartItem {
	t.Helper()
	var items []models.CartItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	return items
}

func TestAddCartItemAccumulates(t *testing.T) {
	db := newTestDB(t)
	user := createUserWithCart(t, db)
	product := createProduct(t, db, "keyboard", 6499, 20)
	r := newCartRouter(db, user.ID)

	body := fmt.Sprintf(`{"productId": %d, "quantity": 2}`, product.ID)
	w := doJSON(t, r, http.MethodPost, "/api/cart", body)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeItems(t, w)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	// Same product again: quantity accumulates, no second line.
	body = fmt.Sprintf(`{"productId": %d, "quantity": 3}`, product.ID)
	w = doJSON(t, r, http.MethodPost, "/api/cart", body)
	require.Equal(t, http.StatusOK, w.Code)
	items = decodeItems(t, w)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "keyboard", items[0].Product.Name)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	user := createUserWithCart(t, db)
	r := newCartRouter(db, user.ID)

	w := doJSON(t, r, http.MethodPost, "/api/cart", `{"productId": 999, "quantity": 1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddCartItemRejectsZeroQuantity(t *testing.T) {
	db := newTestDB(t)
	user := createUserWithCart(t, db)
	product := createProduct(t, db, "mouse", 1299, 20)
	r := newCartRouter(db, user.ID)

	body := fmt.Sprintf(`{"productId": %d, "quantity": 0}`, product.ID)
	w := doJSON(t, r, http.MethodPost, "/api/cart", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddCartItemUnauthorized(t *testing.T) {
	db := newTestDB(t)
	r := newCartRouter(db, "")

	w := doJSON(t, r, http.MethodPost, "/api/cart", `{"productId": 1, "quantity": 1}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetCartItemQuantity(t *testing.T) {
	db := newTestDB(t)
	user := createUserWithCart(t, db)
	product := createProduct(t, db, "monitor", 21999, 10)
	r := newCartRouter(db, user.ID)

	body := fmt.Sprintf(`{"productId": %d, "quantity": 4}`, product.ID)
	w := doJSON(t, r, http.MethodPost, "/api/cart", body)
	require.Equal(t, http.StatusOK, w.Code)

	// PUT replaces the quantity rather than accumulating.
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/cart/%d", product.ID), `{"quantity": 2}`)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeItems(t, w)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestSetCartItemQuantityMissingLine(t *testing.T) {
	db := newTestDB(t)
	user := createUserWithCart(t, db)
	product := createProduct(t, db, "hub", 1899, 10)
	r := newCartRouter(db, user.ID)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/cart/%d", product.ID), `{"quantity": 2}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCartItem(t *testing.T) {
	db := newTestDB(t)
	user := createUserWithCart(t, db)
	product := createProduct(t, db, "webcam", 2500, 10)
	r := newCartRouter(db, user.ID)

	body := fmt.Sprintf(`{"productId": %d, "quantity": 1}`, product.ID)
	w := doJSON(t, r, http.MethodPost, "/api/cart", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/cart/%d", product.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	// Deleting it again reports not found.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/cart/%d", product.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeItems(t, w))
}

func TestClearUserCart(t *testing.T) {
	db := newTestDB(t)
	user := createUserWithCart(t, db)
	p1 := createProduct(t, db, "stand", 899, 10)
	p2 := createProduct(t, db, "cable", 199, 10)
	r := newCartRouter(db, user.ID)

	for _, p := range []models.Product{p1, p2} {
		body := fmt.Sprintf(`{"productId": %d, "quantity": 1}`, p.ID)
		w := doJSON(t, r, http.MethodPost, "/api/cart", body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeItems(t, w))
}

func TestGetUserCartPopulatesProducts(t *testing.T) {
	db := newTestDB(t)
	user := createUserWithCart(t, db)
	product := createProduct(t, db, "earbuds", 4999, 10)
	r := newCartRouter(db, user.ID)

	body := fmt.Sprintf(`{"productId": %d, "quantity": 2}`, product.ID)
	w := doJSON(t, r, http.MethodPost, "/api/cart", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeItems(t, w)
	require.Len(t, items, 1)
	assert.Equal(t, "earbuds", items[0].Product.Name)
	assert.Equal(t, 4999.0, items[0].Product.Price)
}
