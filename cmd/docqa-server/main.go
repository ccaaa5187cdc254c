// Command docqa-server runs the document Q&A HTTP API.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"docqa/internal/chat"
	"docqa/internal/chunker"
	"docqa/internal/config"
	"docqa/internal/embedding"
	"docqa/internal/extract"
	"docqa/internal/server"
	"docqa/internal/service"
	"docqa/internal/vectorstore"
	"docqa/internal/vectorstore/memory"
	"docqa/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var debug bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docqa/config.yaml if not provided)")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(debug)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	emb, err := embedding.NewOpenAIClient(embedding.OpenAIConfig{
		BaseURL:   cfg.Embedder.BaseURL,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Model:     cfg.Embedder.Model,
		Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Fatal("embedder init failed", zap.Error(err))
	}

	var store vectorstore.Storage
	switch cfg.VectorStore.Type {
	case "memory", "":
		store = memory.NewStorage()
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			logger.Fatal("qdrant config missing")
		}
		store = qdrant.NewStorage(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		logger.Fatal("unknown vector store", zap.String("type", cfg.VectorStore.Type))
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.Init(initCtx, cfg.VectorStore.VectorSize); err != nil {
		cancel()
		logger.Fatal("vector store init failed", zap.Error(err))
	}
	cancel()
	logger.Info("vector store ready",
		zap.String("type", cfg.VectorStore.Type),
		zap.Int("vector_size", cfg.VectorStore.VectorSize))

	chatModel, err := chat.NewClient(chat.Config{
		BaseURL:     cfg.Chat.BaseURL,
		APIKeyEnv:   cfg.Chat.APIKeyEnv,
		Model:       cfg.Chat.Model,
		Temperature: cfg.Chat.Temperature,
		MaxTokens:   cfg.Chat.MaxTokens,
		Timeout:     time.Duration(cfg.Chat.TimeoutSecs) * time.Second,
	})
	if err != nil {
		logger.Fatal("chat client init failed", zap.Error(err))
	}

	svc := service.New(extract.New(), chunker.New(cfg.Chunker.MaxLen), emb, store, chatModel)
	srv := server.NewServer(svc, &cfg.Server, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		logger.Fatal("server stopped", zap.Error(err))
	case <-sig:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
