package data

import (
	"fmt"
	"time"

	"github.com/sightline-ai/people-search-backend/internal/conf"
	"github.com/sightline-ai/people-search-backend/internal/pkg/logger"
	"github.com/sightline-ai/people-search-backend/internal/pkg/oauth2"
	"github.com/sightline-ai/people-search-backend/internal/pkg/redis"
	userdata "github.com/sightline-ai/people-search-backend/internal/user/data"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Data bundles the shared storage clients
type Data struct {
	DB          *gorm.DB
	RedisClient *redis.Client
	Logger      *logger.Logger
}

// NewData opens postgres and redis and migrates the schema
func NewData(config *conf.Config, log *logger.Logger) (*Data, func(), error) {
	db, err := initDB(config, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init database: %w", err)
	}

	redisConfig := redis.DefaultConfig()
	redisConfig.Addr = config.Redis.Addr()
	redisConfig.Password = config.Redis.Password
	redisConfig.DB = config.Redis.DB

	redisClient, err := redis.New(redisConfig, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	d := &Data{
		DB:          db,
		RedisClient: redisClient,
		Logger:      log,
	}

	cleanup := func() {
		log.Info("cleaning up data resources")

		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		redisClient.Close()
	}

	return d, cleanup, nil
}

func initDB(config *conf.Config, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&userdata.UserPO{}, &oauth2.UserToken{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	log.Info("database initialized successfully")
	return db, nil
}
