package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JustJay7/lawdesk/internal/api"
	"github.com/JustJay7/lawdesk/internal/cache"
	"github.com/JustJay7/lawdesk/internal/config"
	"github.com/JustJay7/lawdesk/internal/deadline"
	"github.com/JustJay7/lawdesk/internal/entity"
	"github.com/JustJay7/lawdesk/internal/scheduler"
	"github.com/JustJay7/lawdesk/pkg/logger"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	cfg       *config.Config
	db        *gorm.DB
	cache     cache.Cache
	logger    *logger.Logger
	router    *gin.Engine
	scheduler *scheduler.Scheduler
}

func New(
	cfg *config.Config,
	db *gorm.DB,
	clients *entity.Clients,
	sync *deadline.Synchronizer,
	cache cache.Cache,
	sched *scheduler.Scheduler,
	logger *logger.Logger,
) *Server {
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(ginzap.RecoveryWithZap(logger.Zap(), true))
	router.Use(loggingMiddleware(logger))
	router.Use(corsMiddleware())

	server := &Server{
		cfg:       cfg,
		db:        db,
		cache:     cache,
		logger:    logger,
		router:    router,
		scheduler: sched,
	}

	h := api.NewHandlers(db, clients, sync, cache, sched, logger, cfg)
	api.SetupRoutes(router, h)

	return server
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.cfg.ReconcileEnabled {
		if _, err := s.scheduler.ScheduleReconcile(s.cfg.ReconcileInterval); err != nil {
			return fmt.Errorf("failed to schedule reconcile: %w", err)
		}
		s.scheduler.Start()
		s.logger.Info("Reconcile scheduled", "interval", s.cfg.ReconcileInterval.String())
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("Failed to start server", "error", err)
		}
	}()

	s.logger.Info("Server started", "address", srv.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if s.cfg.ReconcileEnabled {
		s.scheduler.Stop()
	}

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	s.logger.Info("Server exited gracefully")
	return nil
}

func loggingMiddleware(logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := []interface{}{
			"client_ip", clientIP,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency.String(),
		}
		switch {
		case statusCode >= http.StatusInternalServerError:
			logger.Error("HTTP Request", fields...)
		case statusCode >= http.StatusBadRequest:
			logger.Warn("HTTP Request", fields...)
		default:
			logger.Info("HTTP Request", fields...)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
