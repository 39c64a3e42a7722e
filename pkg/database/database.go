package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/dazzlr/config"
	"github.com/d60-Lab/dazzlr/internal/model"
)

// InitDB 按配置打开数据库并设置连接池
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dc := cfg.Database

	var dialector gorm.Dialector
	switch dc.Driver {
	case "postgres":
		dialector = postgres.Open(dc.DSN)
	case "sqlite":
		dialector = sqlite.Open(dc.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dc.Driver)
	}

	// 唯一索引冲突统一翻译为 gorm.ErrDuplicatedKey
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent), TranslateError: true}
	if dc.LogSQL {
		gcfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dc.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if dc.Driver == "sqlite" {
		// sqlite 单写者
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(dc.MaxOpenConns)
		sqlDB.SetMaxIdleConns(dc.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(dc.ConnMaxLifetime)
	}

	if dc.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// OpenMemory 打开独立的内存 sqlite 库并迁移，供测试与基准使用
func OpenMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate 建表与索引
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
