package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/taskmaster/planner/docs"
	httpHandlers "github.com/taskmaster/planner/internal/adapters/http"
	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/infrastructure/config"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

// Server represents the mock API HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	db     *repository.Database
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, db *repository.Database, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	tokens := httpHandlers.NewTokens(cfg.JWT)
	authHandler, err := httpHandlers.NewAuthHandler(db, tokens, cfg.Demo, appLogger.WithComponent("auth"))
	if err != nil {
		return nil, err
	}

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	server.setupMiddleware()

	// Metrics are recorded for every route registered after this point
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	server.setupRoutes(routes{
		collections:   httpHandlers.NewCollectionHandler(db, appLogger.WithComponent("collections")),
		auth:          authHandler,
		tasks:         httpHandlers.NewTaskHandler(db, appLogger.WithComponent("tasks")),
		notifications: httpHandlers.NewNotificationHandler(db, appLogger.WithComponent("notifications")),
		ai:            httpHandlers.NewAIHandler(appLogger.WithComponent("ai")),
		telegram:      httpHandlers.NewTelegramHandler(db, appLogger.WithComponent("telegram")),
	})

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			log := s.logger.WithRequestID(values.RequestID)
			if values.Error != nil {
				log.Errorw("HTTP request failed",
					"method", values.Method,
					"uri", values.URI,
					"status", values.Status,
					"error", values.Error.Error(),
				)
				return nil
			}
			log.LogHTTPRequest(values.Method, values.URI, values.UserAgent, values.RemoteIP, values.Status,
				float64(values.Latency.Nanoseconds())/1000000)
			return nil
		},
	}))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
	}))

	if s.config.Security.RateLimitRequests > 0 {
		window := s.config.Security.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(float64(s.config.Security.RateLimitRequests) / window.Seconds()),
				Burst:     s.config.Security.RateLimitRequests,
				ExpiresIn: window,
			}),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return context.JSON(http.StatusForbidden, httpHandlers.MessageResponse{Message: "rate limit exceeded"})
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				s.logger.LogSecurityEvent("rate_limited", "", identifier, nil)
				return context.JSON(http.StatusTooManyRequests, httpHandlers.MessageResponse{Message: "rate limit exceeded"})
			},
		}))
	}

	s.echo.Use(Latency(s.config.Server.LatencyMin, s.config.Server.LatencyMax))
}

type routes struct {
	collections   *httpHandlers.CollectionHandler
	auth          *httpHandlers.AuthHandler
	tasks         *httpHandlers.TaskHandler
	notifications *httpHandlers.NotificationHandler
	ai            *httpHandlers.AIHandler
	telegram      *httpHandlers.TelegramHandler
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(r routes) {
	s.echo.GET("/", s.healthCheck)
	s.echo.GET("/api", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	api := s.echo.Group("/api")
	api.GET("/", s.healthCheck)
	api.GET("/health/detailed", s.detailedHealthCheck)

	api.POST("/login", r.auth.Login)
	api.GET("/user", r.auth.CurrentUser)
	api.PATCH("/user", r.auth.PatchUser)

	stats := httpHandlers.Resource(repository.ResourceStats)
	api.GET("/stats", r.collections.GetObject, stats)
	api.PATCH("/stats", r.collections.PatchObject, stats)

	api.POST("/notifications/email", r.notifications.SendEmail)
	api.PATCH("/notifications/mark-all/:userId", r.notifications.MarkAllAsRead)

	api.POST("/ai/suggestions", r.ai.Suggestions)
	api.POST("/ai/apply-recommendations", r.ai.ApplyRecommendations)

	telegram := api.Group("/telegram")
	telegram.GET("/config/:userId", r.telegram.Config)
	telegram.POST("/connect", r.telegram.Connect)
	telegram.POST("/disconnect", r.telegram.Disconnect)
	telegram.PATCH("/settings/:userId", r.telegram.Settings)
	telegram.POST("/send", r.telegram.Send)

	for _, name := range repository.Collections {
		patch := r.collections.Patch
		if name == repository.ResourceTasks {
			patch = r.tasks.Patch
		}
		s.collection(api.Group("/"+name, httpHandlers.Resource(name)), r.collections, patch)
	}
	s.collection(api.Group("/ai/recommendations", httpHandlers.Resource(repository.ResourceAIRecommendations)), r.collections, r.collections.Patch)
	s.collection(api.Group("/ai/chat", httpHandlers.Resource(repository.ResourceAIChat)), r.collections, r.collections.Patch)

	// Any other top-level resource of the document
	s.collection(api.Group("/:collection"), r.collections, r.collections.Patch)
}

func (s *Server) collection(g *echo.Group, h *httpHandlers.CollectionHandler, patch echo.HandlerFunc) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", patch)
	g.PUT("/:id", h.Replace)
	g.DELETE("/:id", h.Delete)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	resources := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "planner_document_resources",
			Help: "Number of top-level resources in the mock API document",
		},
		func() float64 { return float64(len(s.db.Resources())) },
	)

	registry.MustRegister(requestsTotal, requestDuration, resources)

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"time":      time.Now().UTC().Format(time.RFC3339),
		"resources": s.db.Resources(),
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	})
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address, "api", "http://"+address+"/api")
	if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		var he *echo.HTTPError
		var ve validator.ValidationErrors
		switch {
		case errors.As(err, &he):
			code = he.Code
			msg = httpHandlers.MessageResponse{Message: fmt.Sprint(he.Message)}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		case errors.As(err, &ve):
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": ve.Error()}
		default:
			msg = httpHandlers.MessageResponse{Message: http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
