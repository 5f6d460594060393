package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sightline-ai/people-search-backend/internal/auth"
	authservice "github.com/sightline-ai/people-search-backend/internal/auth/service"
	"github.com/sightline-ai/people-search-backend/internal/conf"
	"github.com/sightline-ai/people-search-backend/internal/data"
	emailbiz "github.com/sightline-ai/people-search-backend/internal/email/biz"
	emailservice "github.com/sightline-ai/people-search-backend/internal/email/service"
	enrichbiz "github.com/sightline-ai/people-search-backend/internal/enrich/biz"
	enrichservice "github.com/sightline-ai/people-search-backend/internal/enrich/service"
	"github.com/sightline-ai/people-search-backend/internal/ai"
	"github.com/sightline-ai/people-search-backend/internal/pkg/logger"
	"github.com/sightline-ai/people-search-backend/internal/pkg/oauth2"
	"github.com/sightline-ai/people-search-backend/internal/pkg/workerpool"
	searchbiz "github.com/sightline-ai/people-search-backend/internal/search/biz"
	"github.com/sightline-ai/people-search-backend/internal/search/provider"
	searchservice "github.com/sightline-ai/people-search-backend/internal/search/service"
	"github.com/sightline-ai/people-search-backend/internal/search/synthesizer"
	"github.com/sightline-ai/people-search-backend/internal/search/types"
	"github.com/sightline-ai/people-search-backend/internal/server"
	userbiz "github.com/sightline-ai/people-search-backend/internal/user/biz"
	userdata "github.com/sightline-ai/people-search-backend/internal/user/data"
	userservice "github.com/sightline-ai/people-search-backend/internal/user/service"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if err := config.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}

	logConfig := &logger.Config{
		Level:            config.Log.Level,
		Format:           config.Log.Format,
		Output:           config.Log.Output,
		EnableCaller:     config.Log.EnableCaller,
		EnableStacktrace: config.Log.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   config.Log.File.Filename,
			MaxSize:    config.Log.File.MaxSize,
			MaxAge:     config.Log.File.MaxAge,
			MaxBackups: config.Log.File.MaxBackups,
			Compress:   config.Log.File.Compress,
		},
	}

	log, err := logger.New(logConfig)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := logger.InitGlobal(logConfig); err != nil {
		log.Fatal("failed to initialize global logger", zap.Error(err))
	}

	log.Info("config loaded successfully")

	d, cleanup, err := data.NewData(config, log)
	if err != nil {
		log.Fatal("failed to initialize data layer", zap.Error(err))
	}
	defer cleanup()

	// repositories
	userRepo := userdata.NewUserRepo(d.DB)
	tokenStore, err := oauth2.NewDatabaseTokenStore(d.DB)
	if err != nil {
		log.Fatal("failed to create token store", zap.Error(err))
	}

	// google oauth
	authenticator, err := oauth2.NewGoogleAuthenticator(&oauth2.Config{
		ClientID:     config.OAuth.GoogleClientID,
		ClientSecret: config.OAuth.GoogleClientSecret,
		RedirectURL:  config.OAuth.RedirectURL,
		Scopes:       config.OAuth.Scopes,
	}, tokenStore)
	if err != nil {
		log.Fatal("failed to create google authenticator", zap.Error(err))
	}

	// search pipeline
	aiConfig := &ai.Config{
		APIKey:  config.AI.Anthropic.APIKey,
		BaseURL: config.AI.Anthropic.BaseURL,
		Model:   config.AI.Anthropic.Model,
		Timeout: config.AI.Anthropic.Timeout,
	}
	if config.AI.Provider == "openai" {
		aiConfig = &ai.Config{
			APIKey:  config.AI.OpenAI.APIKey,
			BaseURL: config.AI.OpenAI.BaseURL,
			Model:   config.AI.OpenAI.Model,
			Timeout: config.AI.OpenAI.Timeout,
		}
	}
	completer, err := ai.NewCompleter(config.AI.Provider, aiConfig)
	if err != nil {
		log.Fatal("failed to create completion provider", zap.Error(err))
	}

	searchProvider, err := provider.NewFactory().Create(&types.ProviderConfig{
		ID:       types.ProviderID(config.Search.Provider),
		APIKey:   config.Search.APIKey,
		EngineID: config.Search.EngineID,
		APIHost:  config.Search.SearXNGURL,
		Timeout:  int(config.Search.Timeout.Seconds()),
	})
	if err != nil {
		log.Fatal("failed to create search provider", zap.Error(err))
	}

	pool, err := workerpool.New(&workerpool.Config{Workers: config.Search.Concurrency}, log.Logger)
	if err != nil {
		log.Fatal("failed to create worker pool", zap.Error(err))
	}
	defer pool.Release()

	// use cases
	userUseCase := userbiz.NewUserUseCase(userRepo)
	searchUseCase := searchbiz.NewSearchUseCase(
		synthesizer.New(completer, log),
		searchProvider,
		userRepo,
		pool,
		searchbiz.Config{BestEffort: config.Search.BestEffort},
		log,
	)

	jwtManager := auth.NewJWTManager(config.Auth.JWTSecret, config.Auth.AccessTokenTTL)

	// services
	services := &server.Services{
		Auth: authservice.NewAuthService(
			authenticator,
			userUseCase,
			jwtManager,
			d.RedisClient,
			config.Frontend.BaseURL,
			config.Auth.RefreshTokenTTL,
			log.Logger,
		),
		User:   userservice.NewUserService(userUseCase, log.Logger),
		Search: searchservice.NewSearchService(searchUseCase, log.Logger),
		Email: emailservice.NewEmailService(
			emailbiz.NewSender(emailbiz.SenderConfig{
				SMTPHost: config.Email.SMTPHost,
				SMTPPort: config.Email.SMTPPort,
			}),
			emailbiz.NewReader(),
			authenticator,
			log.Logger,
		),
		Enrich: enrichservice.NewEnrichService(
			enrichbiz.NewApolloClient(config.Apollo.APIKey, config.Apollo.BaseURL),
			log.Logger,
		),
	}

	httpServer := server.NewHTTPServer(config, log, d.RedisClient, services)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
