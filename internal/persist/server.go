package persist

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServerConfig configures the HTTP gateway endpoint.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`

	// RateLimit is the number of statements one client may send per
	// RateWindow.
	RateLimit  int           `mapstructure:"rate_limit"`
	RateWindow time.Duration `mapstructure:"rate_window"`
}

// DefaultServerConfig returns the serve command defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:       "127.0.0.1:8080",
		RateLimit:  30,
		RateWindow: time.Minute,
	}
}

// Server exposes a Gateway over HTTP.
type Server struct {
	cfg     ServerConfig
	gw      Gateway
	allow   Allowlist
	logger  *zap.Logger
	metrics *Metrics
	engine  *gin.Engine
}

// NewServer wires routes and middleware. Statements are checked against
// DefaultAllowlist before they reach gw.
func NewServer(cfg ServerConfig, gw Gateway, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:     cfg,
		gw:      gw,
		allow:   DefaultAllowlist(),
		logger:  logger.Named("server"),
		metrics: NewMetrics(),
		engine:  gin.New(),
	}

	s.engine.Use(gin.Recovery(), s.requestLogger(), s.metrics.Middleware())

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", s.metrics.Handler())
	s.engine.POST(DefaultEndpointPath,
		RateLimiter(cfg.RateLimit, cfg.RateWindow, s.metrics),
		s.handleStatement,
	)

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("gateway listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down gateway")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleStatement(c *gin.Context) {
	var stmt Statement
	if err := c.ShouldBindJSON(&stmt); err != nil {
		s.metrics.StatementsTotal.WithLabelValues("malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.allow.Check(stmt); err != nil {
		s.metrics.StatementsTotal.WithLabelValues("rejected").Inc()
		s.logger.Warn("statement rejected", zap.String("query", stmt.Query), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.gw.Execute(c.Request.Context(), stmt); err != nil {
		s.metrics.StatementsTotal.WithLabelValues("failed").Inc()
		s.logger.Error("statement failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "statement failed"})
		return
	}

	s.metrics.StatementsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
