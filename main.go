package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jewels-backend/controllers"
	"jewels-backend/database"
	"jewels-backend/pkg/ai"
	"jewels-backend/pkg/logger"
	"jewels-backend/pkg/media"
	"jewels-backend/pkg/oauth"
	"jewels-backend/repository"
	"jewels-backend/routes"
	"jewels-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.Initialize(cfg.Env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// --- 1. External connections ---

	client, db, err := database.Connect(cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer database.Close(client)

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	uploader, err := media.NewCloudinaryUploader(cfg.CloudinaryURL)
	if err != nil {
		log.Fatal("Failed to initialize media uploader", zap.Error(err))
	}

	generator, err := ai.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal("Failed to initialize AI generator", zap.Error(err))
	}
	defer generator.Close()

	google := oauth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	// --- 2. Repositories ---

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	userRepo := repository.NewUserRepository(db)
	blacklist := repository.NewTokenBlacklist(redisClient)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for name, ensure := range map[string]func(context.Context) error{
		"categories": categoryRepo.EnsureIndexes,
		"cart_items": cartRepo.EnsureIndexes,
		"wishlist":   wishlistRepo.EnsureIndexes,
		"users":      userRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			log.Warn("Failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
	}

	// --- 3. Services and controllers ---

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, tokenService, blacklist, google, log)
	productService := services.NewProductService(productRepo, categoryRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, productRepo)
	aiService := services.NewAIService(generator)

	ctrls := routes.Controllers{
		Auth:     controllers.NewAuthController(authService, cfg.FrontendURL),
		Products: controllers.NewProductController(productService, uploader),
		Category: controllers.NewCategoryController(categoryService, uploader),
		Cart:     controllers.NewCartController(cartService),
		Wishlist: controllers.NewWishlistController(wishlistService),
		AI:       controllers.NewAIController(aiService),
	}

	// --- 4. HTTP server ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(log))

	routes.Register(r, ctrls, tokenService, blacklist)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
