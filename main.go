package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/inlet-sites/inletshopapi/controllers"
	"github.com/inlet-sites/inletshopapi/database"
	"github.com/inlet-sites/inletshopapi/logger"
	"github.com/inlet-sites/inletshopapi/middleware"
	"github.com/inlet-sites/inletshopapi/models"
	"github.com/inlet-sites/inletshopapi/routes"
	"github.com/inlet-sites/inletshopapi/services/images"
	"github.com/inlet-sites/inletshopapi/services/mailer"
	"github.com/inlet-sites/inletshopapi/services/payments"
)

// productStore adapts the product model to the image pipeline's commit
// interface.
type productStore struct{}

func (productStore) AppendImages(ctx context.Context, productID, vendorID primitive.ObjectID, urls []string, thumbnail string) error {
	return models.AppendProductImages(ctx, productID, vendorID, urls, thumbnail)
}

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Initialize(cfg.AppEnv)
	defer zap.L().Sync()

	if err := database.ConnectWithConfig(cfg.MongoURI, cfg.DBName); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer database.Close()

	controllers.Init(
		images.NewPipeline(&images.SharpConverter{}, productStore{}),
		payments.NewStripeService(cfg.StripeSecretKey),
		mailer.New(cfg.ZeptoToken),
		cfg.AppEnv,
	)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.CORS(cfg.AppEnv))
	r.Use(logger.RequestLogger())
	r.Use(gin.Recovery())

	routes.RegisterVendorRoutes(r)
	routes.RegisterUserRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("API starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down...")

	// In-flight image batches run detached; the shutdown window gives the
	// HTTP side time to drain but does not wait for conversions.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Stopped gracefully")
}
