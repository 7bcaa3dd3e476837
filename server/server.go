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

	"retailserver/internal/config"
	"retailserver/server/middleware"
	"retailserver/server/services"
)

// Server HTTP сервер аналитики продаж. Держит сервисы и конфигурацию,
// собирает gin router лениво при первом обращении.
type Server struct {
	config *config.Config

	datasets  *services.DatasetStore
	upload    *services.UploadService
	metrics   *services.MetricsService
	grouping  *services.GroupingService
	discovery *services.DiscoveryService

	httpServer  *http.Server
	httpHandler http.Handler
	handlerOnce sync.Once
}

// NewServer создает сервер с сервисами поверх общего хранилища наборов
func NewServer(cfg *config.Config) *Server {
	store := services.NewDatasetStore()
	return &Server{
		config:    cfg,
		datasets:  store,
		upload:    services.NewUploadService(store, int64(cfg.MaxUploadSizeMB)*1024*1024),
		metrics:   services.NewMetricsService(store),
		grouping:  services.NewGroupingService(store),
		discovery: services.NewDiscoveryService(),
	}
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.ensureHTTPHandler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // обнаружение паттернов по большим наборам отвечает долго
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Сервер запускается на порту %s", s.config.Port)
	log.Printf("API доступно по адресу: http://localhost%s", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed on %s: %w", addr, err)
	}
	return nil
}

// Shutdown останавливает HTTP сервер gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	log.Println("Останавливаем HTTP сервер...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Println("HTTP сервер остановлен")
	return nil
}

func (s *Server) ensureHTTPHandler() http.Handler {
	s.handlerOnce.Do(func() {
		s.httpHandler = s.buildHTTPHandler()
	})
	return s.httpHandler
}

func (s *Server) buildHTTPHandler() http.Handler {
	// Режим Gin: release по умолчанию, переопределяется через GIN_MODE
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware(s.config.CORSOrigins))
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinRateLimitMiddleware(s.config.RateLimitRPS, s.config.RateLimitBurst))
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())

	s.registerRoutes(router)
	return router
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/upload", s.handleUploadMonth)
		api.POST("/upload/catalog", s.handleUploadCatalog)

		api.GET("/datasets", s.handleListDatasets)
		api.DELETE("/datasets/:id", s.handleDeleteDataset)

		metricsAPI := api.Group("/metrics")
		{
			metricsAPI.POST("/overview", s.handleMetricsOverview)
			metricsAPI.POST("/revenue", s.handleMetricsRevenue)
			metricsAPI.POST("/attach-rate", s.handleMetricsAttachRate)
			metricsAPI.POST("/velocity", s.handleMetricsVelocity)
			metricsAPI.POST("/cross-sell", s.handleMetricsCrossSell)
			metricsAPI.POST("/concentration", s.handleMetricsConcentration)
			metricsAPI.POST("/growth", s.handleMetricsGrowth)
			metricsAPI.POST("/channels", s.handleMetricsChannels)
		}

		api.POST("/grouping/products", s.handleGroupProducts)

		discoveryAPI := api.Group("/discovery")
		{
			discoveryAPI.POST("/sessions", s.handleCreateDiscoverySession)
			discoveryAPI.POST("/run", s.handleRunDiscovery)
			discoveryAPI.GET("/passes", s.handleDiscoveryPasses)
		}

		questionsAPI := api.Group("/questions")
		{
			questionsAPI.POST("/generate", s.handleGenerateQuestions)
			questionsAPI.POST("/respond", s.handleQuestionResponse)
		}

		api.POST("/export/patterns", s.handleExportPatterns)
	}
}

// ServeHTTP реализует http.Handler для тестов
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.ensureHTTPHandler().ServeHTTP(w, r)
}
