package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/weatherwidget/backend/internal/delivery/http"
	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/internal/repository/postgres"
	"github.com/weatherwidget/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	messages, err := domain.LoadMessages(cfg.MessagesFile, cfg.Language)
	if err != nil {
		log.Fatalf("Failed to load messages: %v", err)
	}

	// Journal storage: PostgreSQL when configured, memory otherwise
	dataRepo := openRepository(cfg.DatabaseURL)

	// Dependency Injection: Services
	weatherSvc := service.NewWeatherService(cfg.OpenWeatherAPIKey,
		service.WithBaseURL(cfg.OpenWeatherBaseURL),
		service.WithIconHost(cfg.IconHost),
	)
	widgetSvc := service.NewWidgetService(weatherSvc, dataRepo, messages, cfg.DefaultCity)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Weather Widget v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, widgetSvc, weatherSvc, dataRepo)

	// Initial lookup for the default city
	go widgetSvc.Mount(context.Background())

	// Graceful shutdown
	go func() {
		port := cfg.Port
		if port == "" {
			port = "8080"
		}
		log.Printf("Server starting on :%s (%s)", port, cfg.Env)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	widgetSvc.WaitBackground()
	if pg, ok := dataRepo.(*postgres.PostgresRepository); ok {
		pg.Close()
	}
	log.Println("Server exited gracefully")
}

// openRepository connects to PostgreSQL, falling back to the in-memory journal
func openRepository(databaseURL string) service.DataRepository {
	if databaseURL == "" {
		log.Println("DATABASE_URL not set, keeping lookup journal in memory")
		return postgres.NewMemoryRepository()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Keeping lookup journal in memory")
		if pool != nil {
			pool.Close()
		}
		return postgres.NewMemoryRepository()
	}

	repo := postgres.NewPostgresRepository(pool)
	if err := repo.Migrate(ctx); err != nil {
		log.Printf("Warning: %v", err)
		log.Println("Keeping lookup journal in memory")
		pool.Close()
		return postgres.NewMemoryRepository()
	}

	log.Println("Connected to PostgreSQL")
	return repo
}

type Config struct {
	DatabaseURL        string
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	IconHost           string
	DefaultCity        string
	Language           string
	MessagesFile       string
	Port               string
	Env                string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		OpenWeatherAPIKey:  getEnv("OPENWEATHER_API_KEY", ""),
		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", service.DefaultBaseURL),
		IconHost:           getEnv("OPENWEATHER_ICON_HOST", service.DefaultIconHost),
		DefaultCity:        getEnv("DEFAULT_CITY", domain.DefaultCity),
		Language:           getEnv("LANGUAGE", domain.DefaultLanguage),
		MessagesFile:       getEnv("MESSAGES_FILE", ""),
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
