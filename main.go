package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"boutique/internal/handlers"
	"boutique/internal/middleware"
	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/internal/services"
	"boutique/pkg/mailer"
	"boutique/pkg/rabbitmq"
	"boutique/pkg/storage"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=boutique port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASS", "")
	viper.SetDefault("SHOP_EMAIL", "")
	viper.SetDefault("R2_ACCOUNT_ID", "")
	viper.SetDefault("R2_ACCESS_KEY_ID", "")
	viper.SetDefault("R2_SECRET_ACCESS_KEY", "")
	viper.SetDefault("R2_BUCKET", "")
	viper.SetDefault("R2_PUBLIC_BASE_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := gorm.Open(postgres.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Product{},
		&models.Collection{},
		&models.ProductType{},
		&models.PageInfo{},
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, order events disabled")
	}

	// --- Mailer (optional) ---
	var shopMailer *mailer.Mailer
	if host := viper.GetString("SMTP_HOST"); host != "" {
		shopMailer = mailer.New(mailer.Config{
			Host:      host,
			Port:      viper.GetInt("SMTP_PORT"),
			Username:  viper.GetString("SMTP_USER"),
			Password:  viper.GetString("SMTP_PASS"),
			From:      viper.GetString("SMTP_USER"),
			ShopEmail: viper.GetString("SHOP_EMAIL"),
		})
	} else {
		log.Println("SMTP_HOST not set, email notifications disabled")
	}

	// --- Object storage (optional) ---
	var store *storage.Client
	if viper.GetString("R2_ACCOUNT_ID") != "" {
		store, err = storage.New(context.Background(), storage.Config{
			AccountID:       viper.GetString("R2_ACCOUNT_ID"),
			AccessKeyID:     viper.GetString("R2_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("R2_SECRET_ACCESS_KEY"),
			Bucket:          viper.GetString("R2_BUCKET"),
			PublicBaseURL:   viper.GetString("R2_PUBLIC_BASE_URL"),
		})
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
	} else {
		log.Println("R2_ACCOUNT_ID not set, uploads disabled")
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	collectionRepo := repositories.NewGORMCollectionRepository(db)
	typeRepo := repositories.NewGORMProductTypeRepository(db)
	pageRepo := repositories.NewGORMPageInfoRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Services ---
	productService := services.NewProductService(productRepo)
	var publisher services.OrderEventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	orderService := services.NewOrderService(orderRepo, productRepo, publisher)
	collectionService := services.NewCollectionService(collectionRepo)
	typeService := services.NewProductTypeService(typeRepo)
	pageService := services.NewPageInfoService(pageRepo)
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	collectionHandler := handlers.NewCollectionHandler(collectionService)
	typeHandler := handlers.NewProductTypeHandler(typeService)
	pageHandler := handlers.NewPageInfoHandler(pageService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	admin := apiV1.Group("/admin", middleware.AuthRequired(authService))

	productHandler.RegisterRoutes(apiV1, admin)
	orderHandler.RegisterRoutes(apiV1, admin)
	collectionHandler.RegisterRoutes(apiV1, admin)
	typeHandler.RegisterRoutes(apiV1, admin)
	pageHandler.RegisterRoutes(apiV1, admin)
	authHandler.RegisterRoutes(apiV1, admin)

	if shopMailer != nil {
		contactHandler := handlers.NewContactHandler(shopMailer)
		contactHandler.RegisterRoutes(apiV1)
	}
	if store != nil {
		uploadHandler := handlers.NewUploadHandler(store)
		uploadHandler.RegisterRoutes(admin)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer ---
	// New orders are committed synchronously; the notification email is
	// sent from the queue so a slow SMTP server never delays checkout.
	if mqClient != nil && shopMailer != nil {
		log.Println("Starting order event consumer...")
		err := mqClient.ConsumeOrderEvents(func(event rabbitmq.OrderEvent) error {
			return shopMailer.SendOrderNotification(event)
		})
		if err != nil {
			log.Printf("Failed to start order event consumer: %v", err)
		}
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
