package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/fadilmartias/cover-gen/internal/config"
	"github.com/fadilmartias/cover-gen/internal/domain/fiber/handler"
	"github.com/fadilmartias/cover-gen/internal/middleware"
	"github.com/fadilmartias/cover-gen/internal/model"
	"github.com/fadilmartias/cover-gen/internal/pdf"
	"github.com/fadilmartias/cover-gen/internal/provider"
	"github.com/fadilmartias/cover-gen/internal/ratelimit"
	"github.com/fadilmartias/cover-gen/internal/repository"
	"github.com/fadilmartias/cover-gen/internal/usecase"
	"github.com/fadilmartias/cover-gen/internal/worker"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	// Use middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: config.LoadAppConfig().Env != "production",
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return config.LoadAppConfig().Env != "production"
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()

	profileRepo := repository.NewProfileRepository(db)
	postingRepo := repository.NewJobPostingRepository(db)
	jobRepo := repository.NewGenerationJobRepository(db)
	letterRepo := repository.NewCoverLetterRepository(db)
	settingsRepo := repository.NewProviderSettingsRepository(db)

	registry := provider.NewRegistry()
	registry.Register(provider.NewOllamaProvider(config.LoadOllamaConfig().BaseURL))
	// Registered even without an env key: a key saved through the settings
	// API is carried with each call.
	gemini, err := provider.NewGeminiProvider(context.Background(), config.LoadGeminiConfig().APIKey)
	if err != nil {
		log.Fatal(err)
	}
	registry.Register(gemini)

	limiter := ratelimit.New(ratelimit.DefaultMaxCalls, ratelimit.DefaultWindow)

	w := worker.New(jobRepo, letterRepo, settingsRepo, registry, limiter)
	w.Recover()

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go w.Run(workerCtx)

	generationUC := usecase.NewGenerationUsecase(profileRepo, postingRepo, jobRepo, w)
	letterUC := usecase.NewLetterUsecase(letterRepo, jobRepo, profileRepo, pdf.NewChromiumExporter())
	settingsUC := usecase.NewSettingsUsecase(settingsRepo, registry, limiter)

	handler.NewGenerationHandler(generationUC).RegisterRoutes(app)
	handler.NewProfileHandler(profileRepo, postingRepo).RegisterRoutes(app)
	handler.NewLetterHandler(letterUC).RegisterRoutes(app)
	handler.NewSettingsHandler(settingsUC).RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(
		&model.Profile{},
		&model.JobPosting{},
		&model.GenerationJob{},
		&model.CoverLetter{},
		&model.ProviderSettings{},
	)
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
