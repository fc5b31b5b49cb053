package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"samvad/internal/analysis"
	"samvad/internal/cache"
	"samvad/internal/config"
	"samvad/internal/repository"
	"samvad/internal/service"
	"samvad/internal/transport/rest"
	"samvad/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	transcribeCfg := config.DefaultTranscribeConfig()
	log.Printf("Transcription config:")
	log.Printf("  Model:    %s", transcribeCfg.Model)
	if transcribeCfg.IsEnabled() {
		log.Println("  API Key:  configured")
	} else {
		log.Println("  API Key:  NOT SET (audio analysis disabled)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := cfg.RedisAddr
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories and caches
	analysisRepo := repository.NewAnalysisRepo(db)
	statsCache := cache.NewStatsCache(rdb)

	// Initialize the analysis core; one taxonomy shared by all components
	taxonomy := analysis.DefaultTaxonomy()
	analyzer := analysis.NewAnalyzer(taxonomy)
	detector := analysis.NewAgreementDetector(taxonomy)
	reporter := analysis.NewReportBuilder()

	// Initialize services
	authSvc := service.NewAuthService()
	transcriber := service.NewTranscriber(transcribeCfg)
	analysisSvc := service.NewAnalysisService(analyzer, detector, reporter, analysisRepo, statsCache)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	analysisSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		AnalysisService: analysisSvc,
		Transcriber:     transcriber,
		UploadDir:       cfg.UploadDir,
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Printf("Host auth: username=%s", os.Getenv("HOST_USERNAME"))
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/analyze")
		log.Println("  POST /v1/analyze-audio")
		log.Println("  GET  /v1/analyses")
		log.Println("  GET  /v1/analyses/{id}")
		log.Println("  GET  /v1/statistics")
		log.Println("  WS   /v1/ws/dashboard")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
