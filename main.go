package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kedai/internal/handlers"
	"kedai/internal/middleware"
	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/internal/services"
	"kedai/pkg/rabbitmq"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("JWT_SECRET", "dev_only_secret")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	databaseURL := viper.GetString("DATABASE_URL")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize RabbitMQ Client ---
	// Optional: without a broker URL orders are still accepted, just without
	// lifecycle events.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, order events disabled")
	}

	// --- Initialize Repositories ---
	// Postgres when DATABASE_URL is set, in-memory stores otherwise (dev mode).
	var (
		menuRepo    repositories.MenuRepository
		orderRepo   repositories.OrderRepository
		userRepo    repositories.UserRepository
		addressRepo repositories.AddressRepository
		pageRepo    repositories.PageRepository
		heroRepo    repositories.HeroRepository
		userFavs    repositories.FavoriteStore
	)
	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		err = db.AutoMigrate(
			&models.MenuItem{}, &models.User{}, &models.Order{},
			&models.Address{}, &models.Favorite{}, &models.Page{}, &models.HeroSlide{},
		)
		if err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		menuRepo = repositories.NewGORMMenuRepository(db)
		orderRepo = repositories.NewGORMOrderRepository(db)
		userRepo = repositories.NewGORMUserRepository(db)
		addressRepo = repositories.NewGORMAddressRepository(db)
		pageRepo = repositories.NewGORMPageRepository(db)
		heroRepo = repositories.NewGORMHeroRepository(db)
		userFavs = repositories.NewGORMFavoriteStore(db)
	} else {
		log.Println("DATABASE_URL not set, using in-memory stores")
		menuRepo = repositories.NewMockMenuRepository()
		orderRepo = repositories.NewMockOrderRepository()
		userRepo = repositories.NewMockUserRepository()
		addressRepo = repositories.NewMockAddressRepository()
		pageRepo = repositories.NewMockPageRepository()
		heroRepo = repositories.NewMockHeroRepository()
		userFavs = repositories.NewMemoryFavoriteStore()
	}
	// Guest favorites always live in process memory until reconciled.
	guestFavs := repositories.NewMemoryFavoriteStore()

	seedMenu(menuRepo)
	seedAdmin(userRepo, viper.GetString("ADMIN_PASSWORD"))

	// --- Initialize Services ---
	menuService := services.NewMenuService(menuRepo)
	orderService := services.NewOrderService(orderRepo, mqClient)
	authService := services.NewAuthService(userRepo, jwtSecret)
	profileService := services.NewProfileService(userRepo, addressRepo)
	favoriteService := services.NewFavoriteService(guestFavs, userFavs)
	contentService := services.NewContentService(pageRepo, heroRepo)

	// --- Initialize Handlers ---
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	contentHandler := handlers.NewContentHandler(contentService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(apiV1)
	menuHandler.RegisterRoutes(apiV1)
	contentHandler.RegisterRoutes(apiV1)

	// Guest-or-signed-in routes (checkout, favorites)
	optionalAuth := apiV1.Group("", middleware.OptionalAuth(authService))
	orderHandler.RegisterRoutes(optionalAuth)
	favoriteHandler.RegisterRoutes(optionalAuth)

	// Signed-in routes
	authed := apiV1.Group("", middleware.AuthRequired(authService))
	profileHandler.RegisterRoutes(authed)

	// Admin dashboard routes
	admin := apiV1.Group("/admin", middleware.AuthRequired(authService), middleware.AdminRequired())
	orderHandler.RegisterAdminRoutes(admin)
	menuHandler.RegisterAdminRoutes(admin)
	contentHandler.RegisterAdminRoutes(admin)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Listens for order lifecycle events; the real work (receipt printing,
	// notification fan-out) belongs to downstream consumers.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received %s event (Tag: %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	// RabbitMQ connection close is handled by defer in main
	log.Println("Server gracefully stopped")
}

// seedMenu populates an empty menu repository with the shop's starting items.
// Prices are in minor currency units.
func seedMenu(repo repositories.MenuRepository) {
	existing, err := repo.GetAll()
	if err != nil || len(existing) > 0 {
		return
	}

	items := []models.MenuItem{
		{ID: "item-1", Name: "Kopi Susu", Description: "Iced milk coffee with palm sugar", Price: 28000, Category: "coffee", Available: true},
		{ID: "item-2", Name: "Americano", Description: "Double shot over water", Price: 25000, Category: "coffee", Available: true},
		{ID: "item-3", Name: "Jasmine Tea", Description: "Hot jasmine green tea", Price: 20000, Category: "tea", Available: true},
		{ID: "item-4", Name: "Butter Croissant", Description: "Baked every morning", Price: 32000, Category: "food", Available: true},
	}

	for i := range items {
		if err := repo.Create(&items[i]); err != nil {
			log.Printf("Error seeding menu item %s: %v", items[i].Name, err)
		} else {
			log.Printf("Seeded menu item: %s (ID: %s)", items[i].Name, items[i].ID)
		}
	}
}

// seedAdmin ensures an administrator account exists when ADMIN_PASSWORD is
// configured. Registration never produces admins, so this is the only way in.
func seedAdmin(repo repositories.UserRepository, password string) {
	if password == "" {
		return
	}
	if existing, err := repo.GetByUsername("admin"); err == nil && existing != nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}
	admin := &models.User{
		Username: "admin",
		Email:    "admin@kedai.local",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := repo.Create(admin); err != nil {
		log.Printf("Error seeding admin user: %v", err)
	} else {
		log.Printf("Seeded admin user (ID: %s)", admin.ID)
	}
}
