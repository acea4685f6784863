package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connections
type DB struct {
	SQL   *gorm.DB
	Mongo *mongo.Client
	log   *zap.Logger
}

// InitDB opens the relational database and, when posts live in MongoDB,
// the Mongo client.
func InitDB(cfg *Config, log *zap.Logger) (*DB, error) {
	sqlDB, err := initSQL(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}
	log.Info("Connected to relational database", zap.String("driver", cfg.DBDriver))

	db := &DB{SQL: sqlDB, log: log}
	if cfg.PostStore == PostStoreMongo {
		if cfg.MongoURI == "" {
			db.Close()
			return nil, fmt.Errorf("MONGO_URI environment variable not set")
		}
		client, err := initMongo(cfg.MongoURI)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		db.Mongo = client
		log.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))
	}
	return db, nil
}

func initSQL(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		if cfg.PostgresUrl == "" {
			return nil, fmt.Errorf("POSTGRES_URL environment variable not set")
		}
		dialector = postgres.Open(cfg.PostgresUrl)
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// Close closes the database connections
func (db *DB) Close() {
	if db.SQL != nil {
		if sqlDB, err := db.SQL.DB(); err != nil {
			db.log.Warn("Error getting SQL DB from GORM", zap.Error(err))
		} else if err := sqlDB.Close(); err != nil {
			db.log.Warn("Error closing relational database", zap.Error(err))
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.log.Warn("Error closing MongoDB connection", zap.Error(err))
		}
	}
	db.log.Info("Database connections closed")
}
