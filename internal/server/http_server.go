package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/staypulse/pricingservice/internal/auth"
	"github.com/staypulse/pricingservice/internal/config"
	"github.com/staypulse/pricingservice/internal/domain"
	"github.com/staypulse/pricingservice/internal/server/middleware"
	"github.com/staypulse/pricingservice/internal/service"
)

// HTTPServer exposes the pricing service over HTTP.
type HTTPServer struct {
	server  *http.Server
	logger  *zap.Logger
	pricing *service.PricingService
}

// NewHTTPServer builds the router and wires middleware. validator may be
// nil when authentication is disabled.
func NewHTTPServer(cfg *config.Config, pricing *service.PricingService, validator auth.Validator, logger *zap.Logger) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())

	s := &HTTPServer{
		logger:  logger,
		pricing: pricing,
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	if validator != nil {
		v1.Use(middleware.Auth(validator))
	}
	v1.POST("/adjustments/quote", s.handleQuote)
	v1.POST("/adjustments/batch", s.handleBatch)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

func (s *HTTPServer) handleQuote(c *gin.Context) {
	var req service.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    domain.ErrCodeInvalidInput,
			"message": "malformed request body",
			"details": err.Error(),
		})
		return
	}

	res, err := s.pricing.Quote(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *HTTPServer) handleBatch(c *gin.Context) {
	var req service.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    domain.ErrCodeInvalidInput,
			"message": "malformed request body",
			"details": err.Error(),
		})
		return
	}

	results, err := s.pricing.Batch(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"results": results,
	})
}

// writeError maps domain error codes onto HTTP statuses.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	de := domain.GetDomainError(err)
	if de == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    domain.ErrCodeInternal,
			"message": "internal error",
		})
		return
	}

	status := http.StatusInternalServerError
	switch de.Code {
	case domain.ErrCodeInvalidInput, domain.ErrCodeBatchLimitExceeded:
		status = http.StatusBadRequest
	case domain.ErrCodeNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, de)
}

// Start runs the HTTP server until it is shut down.
func (s *HTTPServer) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
