package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/empowerment-ai/thumbforge/internal/ai"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./thumbforge.db"
	}

	fmt.Println("🔍 Checking Provider Configuration")
	fmt.Println("==================================")

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		fmt.Println("⚠️  WARNING: OPENROUTER_API_KEY is not set!")
		fmt.Println("   Analysis and generation requests will fail without it.")
	} else {
		fmt.Println("✅ OpenRouter API key configured")
	}
	fmt.Println()

	textModel := os.Getenv("TEXT_MODEL")
	if textModel == "" {
		textModel = ai.DefaultTextModel
	}
	imageModel := os.Getenv("IMAGE_MODEL")
	if imageModel == "" {
		imageModel = ai.DefaultImageModel
	}
	fmt.Printf("📝 Text model: %s\n", textModel)
	fmt.Printf("🖼️  Image model: %s\n\n", imageModel)

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	var transcriptCount int
	err = db.QueryRow("SELECT COUNT(*) FROM transcripts").Scan(&transcriptCount)
	if err != nil {
		fmt.Println("❌ No transcripts table found (cache not yet used)")
		return
	}
	fmt.Printf("💾 Cached transcripts: %d\n\n", transcriptCount)

	rows, err := db.Query(`
		SELECT video_id, source, LENGTH(content), fetched_at
		FROM transcripts
		ORDER BY fetched_at DESC
		LIMIT 5
	`)
	if err != nil {
		log.Fatal("Failed to query transcripts:", err)
	}
	defer rows.Close()

	fmt.Println("📊 Recent Transcripts:")
	fmt.Println("---------------------")

	count := 0
	for rows.Next() {
		var videoID, source, fetchedAt string
		var contentLen int

		if err := rows.Scan(&videoID, &source, &contentLen, &fetchedAt); err != nil {
			log.Printf("Error scanning row: %v", err)
			continue
		}

		count++
		fmt.Printf("\n🎬 %s (via %s)\n", videoID, source)
		fmt.Printf("   %d characters, fetched %s\n", contentLen, fetchedAt)
	}

	if count == 0 {
		fmt.Println("No cached transcripts yet. Analyze a video to populate the cache!")
	} else {
		fmt.Printf("\n✅ Transcript cache is working! Found %d recent entries.\n", count)
	}
}
