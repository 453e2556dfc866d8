package config

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB connects to MySQL and returns the handle the controllers and
// services receive through their constructors. TranslateError is enabled so
// duplicate-key inserts surface as gorm.ErrDuplicatedKey instead of
// driver-specific errors.
func InitDB(cfg *Config) *gorm.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DB.Username,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Database,
	)

	// In production, suppress SQL logs unless debug mode is re-enabled.
	logLevel := logger.Info
	if cfg.GinMode == "release" && !cfg.DebugMode {
		logLevel = logger.Warn
	}

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
	}

	db, err := gorm.Open(mysql.Open(dsn), gormCfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connected successfully")
	return db
}
