package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"kedai/internal/handlers"
	"kedai/internal/middleware"
	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq int64

type testEnv struct {
	app       *fiber.App
	userRepo  repositories.UserRepository
	orderRepo repositories.OrderRepository
}

// setupApp builds a full Fiber app on a fresh in-memory SQLite database with
// all handlers, services, and middleware wired the way main does it.
func setupApp() (*testEnv, error) {
	// Configure Viper for testing
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	// A unique shared-cache DSN per app keeps tests independent.
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	err = db.AutoMigrate(
		&models.MenuItem{}, &models.User{}, &models.Order{},
		&models.Address{}, &models.Favorite{}, &models.Page{}, &models.HeroSlide{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	// Initialize Repositories
	menuRepo := repositories.NewGORMMenuRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	addressRepo := repositories.NewGORMAddressRepository(db)
	pageRepo := repositories.NewGORMPageRepository(db)
	heroRepo := repositories.NewGORMHeroRepository(db)
	userFavs := repositories.NewGORMFavoriteStore(db)
	guestFavs := repositories.NewMemoryFavoriteStore()

	// Initialize Services
	menuService := services.NewMenuService(menuRepo)
	orderService := services.NewOrderService(orderRepo, nil) // nil for RabbitMQ client
	authService := services.NewAuthService(userRepo, jwtSecret)
	profileService := services.NewProfileService(userRepo, addressRepo)
	favoriteService := services.NewFavoriteService(guestFavs, userFavs)
	contentService := services.NewContentService(pageRepo, heroRepo)

	// Initialize Handlers
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	contentHandler := handlers.NewContentHandler(contentService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	menuHandler.RegisterRoutes(apiV1)
	contentHandler.RegisterRoutes(apiV1)

	optionalAuth := apiV1.Group("", middleware.OptionalAuth(authService))
	orderHandler.RegisterRoutes(optionalAuth)
	favoriteHandler.RegisterRoutes(optionalAuth)

	authed := apiV1.Group("", middleware.AuthRequired(authService))
	profileHandler.RegisterRoutes(authed)

	admin := apiV1.Group("/admin", middleware.AuthRequired(authService), middleware.AdminRequired())
	orderHandler.RegisterAdminRoutes(admin)
	menuHandler.RegisterAdminRoutes(admin)
	contentHandler.RegisterAdminRoutes(admin)

	seedMenuForTest(menuRepo)

	return &testEnv{app: app, userRepo: userRepo, orderRepo: orderRepo}, nil
}

// seedMenuForTest populates the menu repository for tests.
func seedMenuForTest(repo repositories.MenuRepository) {
	items := []models.MenuItem{
		{ID: "item-1", Name: "Kopi Susu", Description: "Iced milk coffee", Price: 28000, Category: "coffee", Available: true},
		{ID: "item-2", Name: "Jasmine Tea", Description: "Hot jasmine tea", Price: 20000, Category: "tea", Available: true},
	}
	for i := range items {
		if err := repo.Create(&items[i]); err != nil {
			log.Printf("Failed to seed menu item %s: %v", items[i].Name, err)
		}
	}
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(app *fiber.App, method, path, token string, payload interface{}) (*http.Response, map[string]interface{}, error) {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1) // -1 for no timeout
	if err != nil {
		return nil, nil, err
	}
	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]interface{}
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded, nil
}

// registerAndLogin creates a customer account through the API and returns a
// session token.
func registerAndLogin(t *testing.T, env *testEnv, username string) string {
	t.Helper()
	resp, _, err := doJSON(env.app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body, err := doJSON(env.app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

// loginAsAdmin seeds an admin account directly and returns a session token.
func loginAsAdmin(t *testing.T, env *testEnv) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	err = env.userRepo.Create(&models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	})
	assert.NoError(t, err)

	resp, body, err := doJSON(env.app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func checkoutPayload() map[string]interface{} {
	return map[string]interface{}{
		"lines": []map[string]interface{}{
			{"id": "item-1", "name": "Kopi Susu", "unit_price": 125000, "quantity": 2},
		},
		"customer": map[string]interface{}{
			"name":          "Sari",
			"phone":         "0812000111",
			"delivery_type": "delivery",
			"address":       "Jl. Melati 4",
		},
	}
}

func TestPublicMenuAndAdminGate(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	// Public listing works without a token
	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu/", nil)
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	var items []models.MenuItem
	assert.NoError(t, json.Unmarshal(raw, &items))
	assert.Len(t, items, 2)

	newItem := map[string]interface{}{"name": "Matcha Latte", "price": 35000, "category": "tea"}

	// Writes require a token
	resp, _, err = doJSON(env.app, http.MethodPost, "/api/v1/admin/menu/", "", newItem)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// ...and an admin one
	customerToken := registerAndLogin(t, env, "menucustomer")
	resp, _, err = doJSON(env.app, http.MethodPost, "/api/v1/admin/menu/", customerToken, newItem)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := loginAsAdmin(t, env)
	resp, _, err = doJSON(env.app, http.MethodPost, "/api/v1/admin/menu/", adminToken, newItem)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestGuestCheckoutPricing(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	resp, body, err := doJSON(env.app, http.MethodPost, "/api/v1/orders/", "", checkoutPayload())
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	order, ok := body["order"].(map[string]interface{})
	assert.True(t, ok, "response must wrap the created order")
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, true, order["guest"])

	summary := order["summary"].(map[string]interface{})
	assert.Equal(t, float64(250000), summary["subtotal"])
	assert.Equal(t, float64(25000), summary["tax"])
	assert.Equal(t, float64(15000), summary["delivery_fee"])
	assert.Equal(t, float64(12500), summary["discount"])
	assert.Equal(t, float64(277500), summary["total"])
}

func TestCheckoutValidation(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	// Empty lines
	payload := checkoutPayload()
	payload["lines"] = []map[string]interface{}{}
	resp, _, err := doJSON(env.app, http.MethodPost, "/api/v1/orders/", "", payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Delivery without an address
	payload = checkoutPayload()
	payload["customer"].(map[string]interface{})["address"] = ""
	resp, _, err = doJSON(env.app, http.MethodPost, "/api/v1/orders/", "", payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCustomerOrderHistory(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	token := registerAndLogin(t, env, "historycustomer")

	resp, _, err := doJSON(env.app, http.MethodPost, "/api/v1/orders/", token, checkoutPayload())
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, listResp.StatusCode)
	raw, _ := io.ReadAll(listResp.Body)
	var orders []models.Order
	assert.NoError(t, json.Unmarshal(raw, &orders))
	assert.Len(t, orders, 1)
	assert.Equal(t, int64(277500), orders[0].Summary.Total)
}

func TestGetOrderNotFound(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	adminToken := loginAsAdmin(t, env)

	resp, _, err := doJSON(env.app, http.MethodGet, "/api/v1/orders/no-such-order", adminToken, nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminStatusTransitions(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	// Create a guest order to work on
	resp, body, err := doJSON(env.app, http.MethodPost, "/api/v1/orders/", "", checkoutPayload())
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := body["order"].(map[string]interface{})["id"].(string)

	statusPath := "/api/v1/admin/orders/" + orderID + "/status"
	confirmed := map[string]string{"status": "confirmed"}

	// 401 without a token
	resp, _, err = doJSON(env.app, http.MethodPatch, statusPath, "", confirmed)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// 403 for a non-admin
	customerToken := registerAndLogin(t, env, "statuscustomer")
	resp, _, err = doJSON(env.app, http.MethodPatch, statusPath, customerToken, confirmed)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := loginAsAdmin(t, env)

	// 400 for a status outside the enum
	resp, _, err = doJSON(env.app, http.MethodPatch, statusPath, adminToken, map[string]string{"status": "archived"})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// 404 for an unknown order
	resp, _, err = doJSON(env.app, http.MethodPatch, "/api/v1/admin/orders/no-such-order/status", adminToken, confirmed)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Success, then straight back to pending: ordering is unconstrained
	resp, updated, err := doJSON(env.app, http.MethodPatch, statusPath, adminToken, confirmed)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "confirmed", updated["status"])

	resp, updated, err = doJSON(env.app, http.MethodPatch, statusPath, adminToken, map[string]string{"status": "pending"})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending", updated["status"])
}

func TestAdminOrderStats(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	for i := 0; i < 3; i++ {
		resp, _, err := doJSON(env.app, http.MethodPost, "/api/v1/orders/", "", checkoutPayload())
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	adminToken := loginAsAdmin(t, env)
	resp, body, err := doJSON(env.app, http.MethodGet, "/api/v1/admin/orders/stats", adminToken, nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["total"])
	byStatus := body["by_status"].(map[string]interface{})
	assert.Equal(t, float64(3), byStatus["pending"])
}

func TestFavoritesGuestAndSync(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	addFav := func(token, guestID, itemID string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/"+itemID, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if guestID != "" {
			req.Header.Set("X-Guest-ID", guestID)
		}
		resp, err := env.app.Test(req, -1)
		assert.NoError(t, err)
		return resp
	}

	// Guest stars two items
	assert.Equal(t, http.StatusCreated, addFav("", "guest-abc", "item-1").StatusCode)
	assert.Equal(t, http.StatusCreated, addFav("", "guest-abc", "item-2").StatusCode)

	// Guest without a session id is rejected
	assert.Equal(t, http.StatusBadRequest, addFav("", "", "item-1").StatusCode)

	// Sign in and sync
	token := registerAndLogin(t, env, "favcustomer")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/sync", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Guest-ID", "guest-abc")
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The account now holds the guest favorites
	req = httptest.NewRequest(http.MethodGet, "/api/v1/favorites/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	var favBody struct {
		Items []string `json:"items"`
	}
	assert.NoError(t, json.Unmarshal(raw, &favBody))
	assert.ElementsMatch(t, []string{"item-1", "item-2"}, favBody.Items)
}

func TestProfileAndAddresses(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	token := registerAndLogin(t, env, "profilecustomer")

	// Unauthenticated profile access is rejected
	resp, _, err := doJSON(env.app, http.MethodGet, "/api/v1/profile/", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body, err := doJSON(env.app, http.MethodPut, "/api/v1/profile/", token, map[string]string{
		"full_name": "Sari Dewi",
		"phone":     "0812000111",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sari Dewi", body["full_name"])

	resp, addr, err := doJSON(env.app, http.MethodPost, "/api/v1/profile/addresses", token, map[string]string{
		"label":  "Home",
		"street": "Jl. Melati 4",
		"city":   "Bandung",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	addressID := addr["id"].(string)

	resp, _, err = doJSON(env.app, http.MethodDelete, "/api/v1/profile/addresses/"+addressID, token, nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestContentPagesAndHero(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	adminToken := loginAsAdmin(t, env)

	// Missing page is a 404, not an empty success
	resp, _, err := doJSON(env.app, http.MethodGet, "/api/v1/pages/about", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _, err = doJSON(env.app, http.MethodPut, "/api/v1/admin/pages/about", adminToken, map[string]string{
		"title": "About Us",
		"body":  "We brew since 2015.",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, page, err := doJSON(env.app, http.MethodGet, "/api/v1/pages/about", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "About Us", page["title"])

	// Hero slides are ordered by position
	for i, heading := range []string{"Second", "First"} {
		resp, _, err = doJSON(env.app, http.MethodPut, "/api/v1/admin/hero", adminToken, map[string]interface{}{
			"position":  1 - i,
			"image_ref": "hero.jpg",
			"heading":   heading,
		})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hero", nil)
	heroResp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, heroResp.StatusCode)
	raw, _ := io.ReadAll(heroResp.Body)
	var slides []models.HeroSlide
	assert.NoError(t, json.Unmarshal(raw, &slides))
	assert.Len(t, slides, 2)
	assert.Equal(t, "First", slides[0].Heading)
	assert.Equal(t, "Second", slides[1].Heading)
}

func TestPasswordResetEndpointsAreShapeStable(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	registerAndLogin(t, env, "resetcustomer")

	// Known and unknown emails answer identically
	for _, email := range []string{"resetcustomer@example.com", "nobody@example.com"} {
		resp, _, err := doJSON(env.app, http.MethodPost, "/api/v1/auth/password-reset", "", map[string]string{"email": email})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// A bogus token is rejected as a validation error
	resp, _, err := doJSON(env.app, http.MethodPost, "/api/v1/auth/password-reset/confirm", "", map[string]string{
		"token":    "not-a-real-token",
		"password": "newpassword",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
