// Package stub runs a local stand-in for the chat backend.
package stub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"chatwidget/internal/config"
	"chatwidget/internal/handler"
	"chatwidget/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg config.StubConfig, chatHandler *handler.ChatHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter))
	router.Use(gin.CustomRecovery(chatHandler.Recover))

	corsConfig := cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: cfg.CORS.AllowedHeaders,
		MaxAge:       time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	if len(corsConfig.AllowOrigins) == 0 || slices.Contains(corsConfig.AllowOrigins, "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	router.Use(cors.New(corsConfig))

	router.NoRoute(chatHandler.NotFound)

	api := router.Group("/api")
	{
		api.POST("/chat", chatHandler.Chat)
		api.GET("/health", chatHandler.Health)
		api.GET("/stats", chatHandler.Stats)
	}

	return router
}

// NewHandler builds the chat handler from configuration.
func NewHandler(cfg config.StubConfig) *handler.ChatHandler {
	replier := handler.NewCannedReplier(cfg.DefaultReply, cfg.Replies)
	return handler.NewChatHandler(replier, handler.Options{
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		CacheTTL:           cfg.CacheTTL,
		CacheSize:          cfg.CacheSize,
		Development:        cfg.Development,
	})
}

// Run serves until ctx is cancelled.
func Run(ctx context.Context, cfg config.StubConfig) error {
	router := NewRouter(cfg, NewHandler(cfg))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Stub chat backend listening on port %d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Stub chat backend shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
