package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techstore/storefront-api/middleware"
	"github.com/techstore/storefront-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Cart{}, &models.CartItem{}, &models.Product{}))
	return db
}

func newAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", RegisterHandler(db))
		authGroup.POST("/login", LoginHandler(db))
		authGroup.GET("/profile", middleware.ValidateToken, ProfileHandler(db))
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name": "alice", "email": "alice@example.com", "password": "alice123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["name"])
	assert.Equal(t, true, body["isAdmin"])
	assert.NotEmpty(t, body["token"])

	w = doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name": "bob", "email": "bob@example.com", "password": "bob12345"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, false, body["isAdmin"])
}

func TestRegisterConcurrentFirstUsersSingleAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	r := newAuthRouter(db)

	const racers = 4
	codes := make([]int, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"name": "user%d", "email": "user%d@example.com", "password": "pass%d1234"}`, i, i, i)
			w := doJSON(t, r, http.MethodPost, "/api/auth/register", body, "")
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		assert.Equal(t, http.StatusCreated, code, "registration %d", i)
	}

	// Exactly one of the racers won the admin flag.
	var admins int64
	require.NoError(t, db.Model(&models.User{}).Where("is_admin = ?", true).Count(&admins).Error)
	assert.Equal(t, int64(1), admins)
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(racers), users)
}

func TestRegisterStoresHashedPasswordAndCart(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name": "alice", "email": "alice@example.com", "password": "alice123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Preload("Cart").Where("email = ?", "alice@example.com").First(&user).Error)
	assert.NotEqual(t, "alice123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("alice123")))
	assert.NotZero(t, user.Cart.CartID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name": "alice", "email": "alice@example.com", "password": "alice123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name": "alice again", "email": "alice@example.com", "password": "other123"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decodeBody(t, w)["error"])
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name": "alice", "email": "alice@example.com", "password": "abc"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name": "alice", "email": "alice@example.com", "password": "alice123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login",
		`{"email": "alice@example.com", "password": "alice123"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotEmpty(t, body["token"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name": "alice", "email": "alice@example.com", "password": "alice123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// Same message for a wrong password and an unknown email.
	w = doJSON(t, r, http.MethodPost, "/api/auth/login",
		`{"email": "alice@example.com", "password": "wrongpass"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, w)["error"])

	w = doJSON(t, r, http.MethodPost, "/api/auth/login",
		`{"email": "nobody@example.com", "password": "alice123"}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, w)["error"])
}

func TestProfileWithIssuedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name": "alice", "email": "alice@example.com", "password": "alice123"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	token := decodeBody(t, w)["token"].(string)

	w = doJSON(t, r, http.MethodGet, "/api/auth/profile", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "alice@example.com", body["email"])
	// Password hash never leaves the API.
	_, leaked := body["password"]
	assert.False(t, leaked)
}

func TestProfileRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodGet, "/api/auth/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/auth/profile", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
