package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/empowerment-ai/thumbforge/internal/ai"
	"github.com/empowerment-ai/thumbforge/internal/analysis"
	"github.com/empowerment-ai/thumbforge/internal/database"
	"github.com/empowerment-ai/thumbforge/internal/youtube"
)

func main() {
	var (
		videoURL = flag.String("url", "", "YouTube video URL to analyze")
		refresh  = flag.Bool("refresh", false, "Drop the cached transcript before resolving")
	)
	flag.Parse()

	if *videoURL == "" {
		log.Fatal("Please provide a video URL with -url flag")
	}

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENROUTER_API_KEY is not set")
	}

	textModel := getEnv("TEXT_MODEL", ai.DefaultTextModel)

	resolver := youtube.NewResolver(os.Getenv("YTDLP_PATH"))

	ctx := context.Background()

	if os.Getenv("CACHE_ENABLED") != "false" {
		dbConfig := database.Config{
			Type:       getEnv("DB_TYPE", "sqlite"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       5432,
			User:       getEnv("DB_USER", "thumbforge"),
			Password:   getEnv("DB_PASSWORD", "thumbforge_dev"),
			Name:       getEnv("DB_NAME", "thumbforge"),
			SQLitePath: getEnv("DB_PATH", "./thumbforge.db"),
		}

		db, err := database.NewDB(dbConfig)
		if err != nil {
			log.Fatal("Failed to open transcript cache:", err)
		}
		defer db.Close()

		cache := database.NewTranscriptRepo(db)
		if *refresh {
			videoID, err := youtube.ExtractVideoID(*videoURL)
			if err != nil {
				log.Fatal("Invalid video URL:", err)
			}
			if err := cache.Delete(ctx, videoID); err != nil {
				log.Fatal("Failed to drop cached transcript:", err)
			}
			log.Printf("Dropped cached transcript for %s", videoID)
		}
		resolver = resolver.WithCache(cache)
	}

	service := analysis.NewService(ai.NewClient(apiKey), resolver, youtube.NewMetadataFetcher(), textModel)

	log.Printf("Analyzing %s with %s", *videoURL, textModel)

	result, err := service.AnalyzeURL(ctx, *videoURL)
	if err != nil {
		log.Fatal("Analysis failed:", err)
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal("Failed to encode analysis:", err)
	}
	fmt.Println(string(output))
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
