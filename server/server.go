// Package server собирает HTTP-сервер магазина: маршруты gin,
// middleware, сервисы корзины, рекомендаций, оформления и каталога.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"shopserver/bridge"
	"shopserver/cart"
	"shopserver/classification"
	"shopserver/database"
	"shopserver/internal/config"
	"shopserver/recommendation"
	"shopserver/server/handlers"
	"shopserver/server/middleware"
	"shopserver/server/services"
)

// Server HTTP-сервер магазина
type Server struct {
	config *config.Config

	db         *database.DB
	cartEngine *cart.Engine

	cartService           *services.CartService
	recommendationService *services.RecommendationService
	checkoutService       *services.CheckoutService
	catalogService        *services.CatalogService

	httpServer *http.Server

	handlerOnce sync.Once
	handler     http.Handler
	handlerErr  error
}

// NewServer создает сервер и инициализирует сервисы. База данных
// открывается здесь; недоступная база не фатальна для корзины и
// рекомендаций, каталог деградирует до встроенного.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		loaded, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	s := &Server{config: cfg}

	db, err := database.NewDBWithConfig(cfg.DatabasePath, database.DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		log.Printf("[Server] база данных недоступна, каталог работает со встроенными данными: %v", err)
	} else {
		s.db = db
	}

	var scratch bridge.Scratch
	var catalogStore *database.CatalogStore
	if s.db != nil {
		scratch = database.NewSQLiteScratch(s.db)
		catalogStore = database.NewCatalogStore(s.db)
		if err := catalogStore.EnsureSeeded(); err != nil {
			log.Printf("[Server] не удалось засеять каталог: %v", err)
		}
	} else {
		scratch = bridge.NewMemoryScratch()
	}

	s.cartEngine = cart.NewEngine(cart.Config{
		Bridge:         bridge.NewMemoryBridge(),
		Scratch:        scratch,
		StateKey:       cfg.StateKey,
		DebounceWindow: cfg.DebounceWindow,
		GuardWindow:    cfg.GuardWindow,
	})

	classifier := classification.NewClassifier(nil)
	engine := recommendation.NewEngine(recommendation.Config{Classifier: classifier})

	var lookup *recommendation.LookupClient
	if cfg.LookupBaseURL != "" {
		lookup = recommendation.NewLookupClient(recommendation.LookupClientConfig{
			BaseURL:   cfg.LookupBaseURL,
			Timeout:   cfg.LookupTimeout,
			RateLimit: rate.Limit(cfg.LookupRateLimitPerSec),
			CacheTTL:  cfg.LookupCacheTTL,
		})
	}

	s.cartService = services.NewCartService(s.cartEngine)
	s.recommendationService = services.NewRecommendationService(engine, lookup, catalogStore)
	s.checkoutService = services.NewCheckoutService()
	if catalogStore != nil {
		s.catalogService = services.NewCatalogService(catalogStore, classifier)
	}

	return s, nil
}

func (s *Server) ensureHTTPHandler() (http.Handler, error) {
	s.handlerOnce.Do(func() {
		s.handler, s.handlerErr = s.buildHTTPHandler()
	})
	return s.handler, s.handlerErr
}

func (s *Server) buildHTTPHandler() (http.Handler, error) {
	// Режим Gin: release по умолчанию, переопределяется через GIN_MODE
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinRateLimitMiddleware(rate.Limit(s.config.RateLimitPerSec), s.config.RateLimitBurst))
	router.Use(middleware.GinRecoveryMiddleware())

	handlers.RegisterSwaggerRoutes(router, "localhost:"+s.config.Port)

	s.registerGinHandlers(router)

	return router, nil
}

// registerGinHandlers регистрирует маршруты API
func (s *Server) registerGinHandlers(router *gin.Engine) {
	api := router.Group("/api")

	cartHandler := handlers.NewCartHandler(s.cartService)
	api.POST("/cart/items", cartHandler.HandleAddItemGin)
	api.DELETE("/cart/items/:id", cartHandler.HandleRemoveItemGin)
	api.POST("/cart/clear", cartHandler.HandleClearGin)
	api.GET("/cart", cartHandler.HandleGetCartGin)
	api.GET("/cart/contains/:id", cartHandler.HandleContainsGin)

	recHandler := handlers.NewRecommendationsHandler(s.recommendationService)
	api.POST("/recommendations/cross-sell", recHandler.HandleCrossSellGin)
	api.POST("/recommendations/cross-sell/merge", recHandler.HandleMergeCrossSellGin)
	api.POST("/recommendations/related", recHandler.HandleRelatedGin)

	checkoutHandler := handlers.NewCheckoutHandler(s.checkoutService)
	api.POST("/checkout/totals", checkoutHandler.HandleTotalsGin)
	api.POST("/checkout/sessions", checkoutHandler.HandleCreateSessionGin)
	api.PATCH("/checkout/sessions/:id", checkoutHandler.HandleUpdateSessionGin)
	api.POST("/checkout/sessions/:id/complete", checkoutHandler.HandleCompleteSessionGin)

	if s.catalogService != nil {
		catalogHandler := handlers.NewCatalogHandler(s.catalogService)
		api.POST("/catalog/import", catalogHandler.HandleImportGin)
		api.POST("/catalog/enrich", catalogHandler.HandleEnrichGin)
		api.GET("/catalog", catalogHandler.HandleListGin)
		api.GET("/export/suggestions", catalogHandler.HandleExportGin)
	}
}

// ServeHTTP реализует http.Handler для тестов
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		http.Error(w, "server initialization failed", http.StatusInternalServerError)
		return
	}
	handler.ServeHTTP(w, r)
}

// Start запускает HTTP-сервер и блокируется до его остановки
func (s *Server) Start() error {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%s", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Сервер запускается на порту %s", s.config.Port)
	log.Printf("API доступно по адресу: http://localhost%s", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("не удалось запустить HTTP сервер на %s: %w", addr, err)
	}
	return nil
}

// Shutdown останавливает сервер и освобождает ресурсы
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Initiating graceful shutdown...")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("ошибка остановки сервера: %w", err)
		}
	}

	s.cartEngine.Close()

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Printf("[Server] ошибка закрытия базы данных: %v", err)
		}
	}

	log.Println("Graceful shutdown completed")
	return nil
}
