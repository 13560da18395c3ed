package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	dir := flag.String("dir", "./reference_docs/roles", "Directory with role descriptions (pdf, doc, docx)")
	chunkSize := flag.Int("chunk-size", 1000, "Maximum chunk size in characters")
	overlap := flag.Int("overlap", 200, "Characters repeated between consecutive chunks")
	flag.Parse()

	os.Exit(run(*dir, *chunkSize, *overlap))
}

// run returns the process exit code.
func run(dir string, chunkSize, overlap int) int {
	log.Println("🚀 Starting role ingestion...")

	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

	// Initialize services
	geminiService, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:          cfg.GenAI.APIKey,
		Model:           cfg.GenAI.Model,
		EmbedModel:      cfg.GenAI.EmbedModel,
		EmbedDimensions: cfg.GenAI.EmbedDimensions,
	})
	if err != nil {
		log.Printf("❌ Failed to initialize Gemini: %v", err)
		return 1
	}

	index, err := services.NewReferenceIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, cfg.GenAI.EmbedDimensions)
	if err != nil {
		log.Printf("❌ Failed to initialize Qdrant: %v", err)
		return 1
	}
	defer index.Close()

	if err := index.InitCollection(ctx); err != nil {
		log.Printf("❌ Failed to initialize collection: %v", err)
		return 1
	}

	storage := services.NewTempStorage(cfg.Storage.TempDir)
	extractor := services.NewDocumentExtractor(storage)
	chunker := services.NewTextChunker()

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("❌ Failed to read %s: %v", dir, err)
		return 1
	}

	successCount := 0
	failCount := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := services.SupportedExtension(entry.Name()); err != nil {
			log.Printf("⚠️  Skipping %s: %v", entry.Name(), err)
			continue
		}

		path := filepath.Join(dir, entry.Name())
		role := roleFromFilename(entry.Name())
		log.Printf("📄 Processing %s (%s)", entry.Name(), role)

		text, err := extractor.ExtractFile(path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		chunks := chunker.ChunkText(text, chunkSize, overlap)
		log.Printf("   ✂️  %d characters, %d chunks", len(text), len(chunks))

		// drop chunks left over from a longer previous version
		if err := index.DeleteSource(ctx, entry.Name()); err != nil {
			log.Printf("   ⚠️  %v", err)
		}

		batch := make([]services.ReferenceChunk, 0, len(chunks))
		for i, chunk := range chunks {
			embedding, err := geminiService.Embed(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to embed chunk %d: %v", i+1, err)
				continue
			}

			batch = append(batch, services.ReferenceChunk{
				Source:    entry.Name(),
				Role:      role,
				Index:     i,
				Text:      chunk,
				Embedding: embedding,
			})
		}

		if err := index.Upsert(ctx, batch); err != nil {
			log.Printf("   ❌ Failed to store chunks: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Stored %d/%d chunks", len(batch), len(chunks))
		successCount++
	}

	// Summary
	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		return 1
	}
	return 0
}

// roleFromFilename turns "site_reliability-engineer.pdf" into
// "site reliability engineer".
func roleFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.Join(strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	}), " ")
}
