package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	amqp "github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stockroom/internal/handlers"
	"stockroom/internal/middleware"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
	"stockroom/pkg/rabbitmq"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "stockroom.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SEED_DATA", false)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// --- Database ---
	db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DB_DSN"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// --- RabbitMQ (optional) ---
	// Stock alerts are a side channel; a missing broker must never keep
	// the API from serving.
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, stock alerts disabled")
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, jwtSecret)
	productService := services.NewProductService(productRepo, userRepo, mqClient)
	inventoryService := services.NewInventoryService(productRepo)

	if viper.GetBool("SEED_DATA") {
		seedData(authService, productService)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := app.Group("/api")

	// Public authentication routes
	authHandler.RegisterRoutes(api)

	// Everything else requires a valid token; product mutations pass
	// the admin guard registered per route.
	protected := api.Group("", middleware.AuthRequired(authService))
	productHandler.RegisterRoutes(protected, middleware.AdminRequired())
	inventoryHandler.RegisterRoutes(protected)

	// --- Stock alert consumer ---
	if mqClient != nil {
		if err := mqClient.ConsumeStockAlerts(func(msg amqp.Delivery) error {
			log.Info().Str("alert", string(msg.Body)).Msg("stock alert received")
			return nil
		}); err != nil {
			log.Warn().Err(err).Msg("failed to start stock alert consumer")
		}
	}

	// --- Start HTTP Server ---
	log.Info().Str("port", appPort).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

// openDatabase opens the configured GORM store. SQLite serves local
// setups, Postgres the deployed one.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// seedData creates a default admin account and a sample product set.
// Skipped when the admin account already exists.
func seedData(authService *services.AuthService, productService *services.ProductService) {
	_, admin, err := authService.Register(services.RegisterInput{
		Name:     "Admin User",
		Email:    "admin@example.com",
		Password: "admin123",
		Role:     models.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			log.Info().Msg("seed data already present, skipping")
			return
		}
		log.Error().Err(err).Msg("failed to seed admin user")
		return
	}

	products := []models.Product{
		{Name: "Wireless Ergonomic Mouse", Category: "Electronics", Price: 49.99, Quantity: 150, MinStock: 20, SKU: "MX-ERGO-001", Description: "Advanced ergonomic mouse for comfortable all-day use."},
		{Name: "Mechanical Gaming Keyboard", Category: "Electronics", Price: 129.99, Quantity: 45, MinStock: 10, SKU: "KEY-MECH-RGB", Description: "RGB backlit mechanical keyboard with tactile blue switches."},
		{Name: "4K Ultra HD Monitor", Category: "Electronics", Price: 399.99, Quantity: 8, MinStock: 5, SKU: "MON-4K-27", Description: "27-inch 4K monitor with HDR support and 144Hz refresh rate."},
		{Name: "Noise Cancelling Headphones", Category: "Audio", Price: 249.99, Quantity: 30, MinStock: 10, SKU: "AUD-NC-PRO", Description: "Premium wireless headphones with active noise cancellation."},
		{Name: "USB-C Docking Station", Category: "Accessories", Price: 89.99, Quantity: 75, MinStock: 15, SKU: "DOCK-USBC-11", Description: "11-in-1 docking station with dual HDMI output."},
	}
	for i := range products {
		if err := productService.Create(&products[i], admin.ID); err != nil {
			log.Error().Err(err).Str("product", products[i].Name).Msg("failed to seed product")
		}
	}
	log.Info().Int("products", len(products)).Msg("seed data created")
}
