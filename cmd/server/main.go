package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/empowerment-ai/thumbforge/internal/ai"
	"github.com/empowerment-ai/thumbforge/internal/analysis"
	"github.com/empowerment-ai/thumbforge/internal/api"
	"github.com/empowerment-ai/thumbforge/internal/database"
	"github.com/empowerment-ai/thumbforge/internal/thumbnail"
	"github.com/empowerment-ai/thumbforge/internal/youtube"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	maxRequestSize := os.Getenv("MAX_REQUEST_SIZE")
	if maxRequestSize == "" {
		maxRequestSize = "33554432"
	}
	maxSize, err := strconv.ParseInt(maxRequestSize, 10, 64)
	if err != nil {
		log.Fatal("Invalid MAX_REQUEST_SIZE:", err)
	}

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		log.Printf("Warning: OPENROUTER_API_KEY is not set. Analysis and generation requests will fail.")
	}

	textModel := os.Getenv("TEXT_MODEL")
	if textModel == "" {
		textModel = ai.DefaultTextModel
	}

	imageModel := os.Getenv("IMAGE_MODEL")
	if imageModel == "" {
		imageModel = ai.DefaultImageModel
	}

	var client *ai.Client
	if baseURL := os.Getenv("OPENROUTER_BASE_URL"); baseURL != "" {
		client = ai.NewClientWithBaseURL(apiKey, baseURL)
	} else {
		client = ai.NewClient(apiKey)
	}

	resolver := youtube.NewResolver(os.Getenv("YTDLP_PATH"))

	// The transcript cache is optional; everything else works without a
	// database.
	cacheEnabled := os.Getenv("CACHE_ENABLED") != "false"
	var db *database.DB
	if cacheEnabled {
		dbType := os.Getenv("DB_TYPE")
		if dbType == "" {
			dbType = "sqlite"
		}

		var dbConfig database.Config
		dbConfig.Type = dbType

		if dbType == "postgres" {
			dbConfig.Host = os.Getenv("DB_HOST")
			if dbConfig.Host == "" {
				dbConfig.Host = "localhost"
			}

			dbPortStr := os.Getenv("DB_PORT")
			if dbPortStr == "" {
				dbPortStr = "5432"
			}
			dbPort, err := strconv.Atoi(dbPortStr)
			if err != nil {
				log.Fatal("Invalid DB_PORT:", err)
			}
			dbConfig.Port = dbPort

			dbConfig.User = os.Getenv("DB_USER")
			if dbConfig.User == "" {
				dbConfig.User = "thumbforge"
			}

			dbConfig.Password = os.Getenv("DB_PASSWORD")
			if dbConfig.Password == "" {
				dbConfig.Password = "thumbforge_dev"
			}

			dbConfig.Name = os.Getenv("DB_NAME")
			if dbConfig.Name == "" {
				dbConfig.Name = "thumbforge"
			}
		} else {
			dbConfig.SQLitePath = os.Getenv("DB_PATH")
			if dbConfig.SQLitePath == "" {
				dbConfig.SQLitePath = "./thumbforge.db"
			}
		}

		db, err = database.NewDB(dbConfig)
		if err != nil {
			log.Fatal("Failed to initialize transcript cache:", err)
		}
		defer db.Close()

		migrationsPath := os.Getenv("MIGRATIONS_PATH")
		if migrationsPath == "" {
			migrationsPath = "./migrations"
		}

		log.Printf("Running database migrations from %s", migrationsPath)
		if err := db.RunMigrations(migrationsPath); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}

		resolver = resolver.WithCache(database.NewTranscriptRepo(db))
	}

	analysisService := analysis.NewService(client, resolver, youtube.NewMetadataFetcher(), textModel)
	generator := thumbnail.NewGenerator(client, imageModel)

	app := &api.App{
		Analysis:        analysisService,
		Generator:       generator,
		MaxRequestBytes: maxSize,
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %s", port)
	log.Printf("Text model: %s", textModel)
	log.Printf("Image model: %s", imageModel)
	if cacheEnabled && db != nil {
		log.Printf("Transcript cache: %s", db.Type())
	} else {
		log.Printf("Transcript cache: disabled")
	}
	log.Printf("Max request size: %d bytes", maxSize)

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}
