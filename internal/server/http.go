package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	authservice "github.com/sightline-ai/people-search-backend/internal/auth/service"
	"github.com/sightline-ai/people-search-backend/internal/auth/middleware"
	"github.com/sightline-ai/people-search-backend/internal/conf"
	emailservice "github.com/sightline-ai/people-search-backend/internal/email/service"
	enrichservice "github.com/sightline-ai/people-search-backend/internal/enrich/service"
	"github.com/sightline-ai/people-search-backend/internal/pkg/logger"
	"github.com/sightline-ai/people-search-backend/internal/pkg/redis"
	searchservice "github.com/sightline-ai/people-search-backend/internal/search/service"
	userservice "github.com/sightline-ai/people-search-backend/internal/user/service"
	"go.uber.org/zap"
)

const serviceVersion = "1.0.0"

// Services collects the HTTP services mounted on the router
type Services struct {
	Auth   *authservice.AuthService
	User   *userservice.UserService
	Search *searchservice.SearchService
	Email  *emailservice.EmailService
	Enrich *enrichservice.EnrichService
}

// HTTPServer wraps the gin router and its http.Server
type HTTPServer struct {
	server *http.Server
	logger *logger.Logger
}

// NewHTTPServer builds the router and mounts all services
func NewHTTPServer(
	config *conf.Config,
	log *logger.Logger,
	redisClient *redis.Client,
	services *Services,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(logger.GinRecovery(log))
	router.Use(logger.GinLogger(log))
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "people-search-backend",
			"version": serviceVersion,
			"endpoints": []string{
				"GET /auth/login",
				"GET /auth/callback",
				"POST /auth/refresh",
				"GET /api/v1/me",
				"POST /api/v1/profile/complete",
				"POST /api/v1/logout",
				"POST /api/v1/search",
				"POST /api/v1/email/send",
				"POST /api/v1/email/thread",
				"POST /api/v1/enrich/email",
			},
		})
	})

	// public auth endpoints, throttled per IP
	public := router.Group("/")
	public.Use(middleware.LoginRateLimiter(redisClient, log))
	services.Auth.RegisterRoutes(public)

	// authenticated API
	api := router.Group("/api/v1")
	api.Use(middleware.JWTAuth(config.Auth.JWTSecret, config.Auth.AccessTokenTTL, log))
	api.Use(middleware.APIRateLimiter(redisClient, log))

	services.User.RegisterRoutes(api)
	services.Search.RegisterRoutes(api)
	services.Email.RegisterRoutes(api)
	services.Enrich.RegisterRoutes(api)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)

	return &HTTPServer{
		server: &http.Server{
			Addr:    addr,
			Handler: router,
		},
		logger: log,
	}
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}
