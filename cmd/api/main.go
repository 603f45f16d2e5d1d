package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkscout/internal/catalog"
	"linkscout/internal/chat"
	"linkscout/internal/dialogue"
	"linkscout/internal/gateway/config"
	"linkscout/internal/gateway/handler"
	"linkscout/internal/gateway/server"
	"linkscout/internal/llmclient"
	"linkscout/internal/store/catalogstore"
	"linkscout/internal/store/devicestore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	index := catalog.NewIndex(catalogstore.NewFromEnv())
	if err := index.Load(ctx); err != nil {
		// A cold index still serves: Match retries the load per request.
		log.Printf("catalog warm-up failed, will retry lazily: %v", err)
	}

	var devices devicestore.Lister
	if cfg.DeviceDSN != "" {
		pg, err := devicestore.NewPostgres(cfg.DeviceDSN)
		if err != nil {
			log.Fatalf("Failed to connect device store: %v", err)
		}
		defer pg.Close()
		devices = pg
	} else {
		log.Printf("DEVICE_PG_DSN not set, saved-device flow disabled")
		devices = devicestore.NewMemory()
	}

	gemini, err := llmclient.NewGeminiProvider(ctx, cfg.Providers.GeminiKey, cfg.Providers.GeminiModel, cfg.Providers.Timeout)
	if err != nil {
		log.Fatalf("Failed to initialize gemini provider: %v", err)
	}
	registry := llmclient.NewRegistry(
		gemini,
		llmclient.NewGroqProvider(cfg.Providers.GroqKey, cfg.Providers.GroqModel, cfg.Providers.Timeout),
		llmclient.NewMistralProvider(cfg.Providers.MistralKey, cfg.Providers.MistralModel, cfg.Providers.Timeout),
		llmclient.NewOpenRouterProvider(cfg.Providers.OpenRouterKey, cfg.Providers.OpenRouterModel, cfg.Providers.Timeout),
	)

	orchestrator := chat.New(index, devices, registry, dialogue.NewClassifier())
	mux := server.NewMux(
		handler.NewChatHandler(orchestrator),
		handler.NewAdminHandler(index),
	)

	srv := server.New(cfg.Port, mux)
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
