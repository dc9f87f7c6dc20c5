package app

import (
	"fmt"
	"time"

	"github.com/talkincode/auctiontrack/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getDatabase(cfg config.DBConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name, time.Local.String())

	loglevel := logger.Silent
	if cfg.Debug {
		loglevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(loglevel),
	})
	if err != nil {
		zap.S().Panicf("database connection failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Panicf("database handle failed: %v", err)
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}
