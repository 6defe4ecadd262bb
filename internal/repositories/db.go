// Package repositories provides the data access layer. It owns all
// database operations, the transactional-access contract the services
// rely on, and the redis read cache.
package repositories

import (
	"log"
	"time"

	"aileana/internal/config"
	"aileana/internal/models"
	"aileana/internal/repositories/cache"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// CacheService is the shared redis cache, nil when redis is disabled.
var CacheService *cache.CacheService

// InitDB initializes the PostgreSQL connection and the redis cache,
// then migrates the schema. TranslateError is required: duplicate-key
// violations on wallet_transactions.reference must surface as
// gorm.ErrDuplicatedKey so the ledger can treat them as idempotent
// replays.
func InitDB() error {
	dsn := "host=" + config.GetEnv("DB_HOST", "localhost") +
		" user=" + config.GetEnv("DB_USER", "postgres") +
		" password=" + config.GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + config.GetEnv("DB_NAME", "aileana") +
		" port=" + config.GetEnv("DB_PORT", "5432") +
		" sslmode=" + config.GetEnv("DB_SSLMODE", "disable")

	logLevel := logger.Silent
	if !config.IsProduction() {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return err
	}
	DB = db

	redisCfg := &cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	}
	CacheService = cache.NewCacheService(cache.NewRedisClient(redisCfg), 24*time.Hour)

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.PaymentIntent{},
		&models.CallSession{},
	); err != nil {
		return err
	}

	log.Println("database initialized")
	return nil
}
