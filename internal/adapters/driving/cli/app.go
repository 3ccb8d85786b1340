package cli

import (
	"fmt"
	"os"

	"github.com/granthika-labs/granthika/internal/adapters/driven/embedding/ollama"
	ollamallm "github.com/granthika-labs/granthika/internal/adapters/driven/llm/ollama"
	"github.com/granthika-labs/granthika/internal/adapters/driven/ocr/tesseract"
	"github.com/granthika-labs/granthika/internal/adapters/driven/pdftext/poppler"
	"github.com/granthika-labs/granthika/internal/adapters/driven/storage/sqlite"
	"github.com/granthika-labs/granthika/internal/config"
	"github.com/granthika-labs/granthika/internal/connectors/filesystem"
	"github.com/granthika-labs/granthika/internal/core/ports/driven"
	"github.com/granthika-labs/granthika/internal/core/ports/driving"
	"github.com/granthika-labs/granthika/internal/core/services"
	"github.com/granthika-labs/granthika/internal/logger"
	"github.com/granthika-labs/granthika/internal/segmenters/image"
	"github.com/granthika-labs/granthika/internal/segmenters/pdf"
	"github.com/granthika-labs/granthika/internal/vectorindex/memory"
)

// app bundles the wired services behind the CLI commands. Each command
// builds one, uses it, and closes it on the way out.
type app struct {
	cfg config.Config

	store    *sqlite.Store
	index    *memory.Index
	embedder *ollama.EmbeddingService
	llm      *ollamallm.LLMService
	scanner  driven.Scanner

	search driving.SearchService
	chat   driving.ChatService
	auth   driving.AuthService
	ingest driving.IngestService

	snapshotPath string
}

func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.NewStore(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening record store: %w", err)
	}

	snapshotPath, err := cfg.SnapshotPath()
	if err != nil {
		store.Close()
		return nil, err
	}

	index := memory.New(cfg.Embedding.Dimensions)
	if f, err := os.Open(snapshotPath); err == nil {
		if err := index.Restore(f); err != nil {
			logger.Warn("Vector snapshot unreadable, starting with an empty index: %v", err)
		} else {
			logger.Debug("Restored %d vectors from %s", index.Len(), snapshotPath)
		}
		f.Close()
	}

	embedder := ollama.NewEmbeddingService(ollama.Config{
		BaseURL:           cfg.Embedding.BaseURL,
		Model:             cfg.Embedding.Model,
		Dimensions:        cfg.Embedding.Dimensions,
		RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
	})
	llm := ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: cfg.Chat.BaseURL,
		Model:   cfg.Chat.Model,
	})

	ocr := tesseract.New(tesseract.Config{
		Binary:    cfg.OCR.Binary,
		Languages: cfg.OCR.Languages,
	})
	pdftext := poppler.New(poppler.Config{Binary: cfg.PDF.Binary})
	scanner := filesystem.New()

	search := services.NewSearchService(store, index, embedder)

	return &app{
		cfg:      cfg,
		store:    store,
		index:    index,
		embedder: embedder,
		llm:      llm,
		scanner:  scanner,
		search:   search,
		chat:     services.NewChatService(search, llm),
		auth:     services.NewAuthService(store),
		ingest: services.NewIngestService(
			scanner, store, index, embedder,
			image.New(ocr), pdf.New(pdftext),
			snapshotPath,
		),
		snapshotPath: snapshotPath,
	}, nil
}

func (a *app) Close() {
	if err := a.embedder.Close(); err != nil {
		logger.Warn("Closing embedding service: %v", err)
	}
	if err := a.llm.Close(); err != nil {
		logger.Warn("Closing chat service: %v", err)
	}
	if err := a.store.Close(); err != nil {
		logger.Warn("Closing record store: %v", err)
	}
}
