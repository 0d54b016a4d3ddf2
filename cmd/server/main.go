package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"voxchat/internal/config"
	"voxchat/internal/database"
	"voxchat/internal/handlers"
	"voxchat/internal/router"
	"voxchat/internal/services"
	"voxchat/internal/websocket"
)

func main() {
	log.Println("🚀 Starting voxchat gateway...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Redis (optional) ────
	var redisClients *database.RedisClients
	var cacheClient *redis.Client
	if cfg.RedisURL != "" {
		var err error
		redisClients, err = database.NewRedisClients(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClients.Close()
		cacheClient = redisClients.Cache
		log.Println("✓ Redis connected")
	} else {
		log.Println("– Redis disabled (no REDIS_URL): audio cache and session feed off")
	}

	// ──── Step 3: Initialize Completion Client ────
	completionService, err := services.NewCompletionService(
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		cfg.GeminiConcurrentReqs,
	)
	if err != nil {
		log.Fatalf("✗ Completion client initialization failed: %v", err)
	}
	defer completionService.Close()
	log.Println("✓ Completion client initialized")

	// ──── Step 4: Initialize Speech Client ────
	speechService := services.NewSpeechService(
		cfg.DeepgramAPIKey,
		cfg.DeepgramVoice,
		cacheClient,
		time.Duration(cfg.AudioCacheTTLMin)*time.Minute,
	)
	log.Println("✓ Speech client initialized")

	// ──── Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(completionService, cacheClient)
	speakHandler := handlers.NewSpeakHandler(speechService)

	// ──── Step 5: Start WebSocket Hub ────
	var wsHub *websocket.Hub
	if redisClients != nil {
		wsHub = websocket.NewHub(redisClients.PubSub)
		log.Println("✓ WebSocket hub started")
	}

	// ──── Step 6: Start HTTP Server ────
	r := router.New(chatHandler, speakHandler, wsHub, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ voxchat gateway ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	if wsHub != nil {
		log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)
	}

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
