package db

import (
	"fmt"
	"time"

	"farmmall/internal/config"
	"farmmall/internal/domain/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
// 接続はpgxのdatabase/sqlドライバで開き、gormに渡す
func Connect(cfg config.Config, log gormlogger.Interface) (*gorm.DB, error) {
	pgxCfg, err := pgx.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	sqlDB := stdlib.OpenDB(*pgxCfg)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), GormConfig(log))
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// DATABASE_URL があれば最優先で使う
func DSN(cfg config.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
	)
}

// 一意制約違反を gorm.ErrDuplicatedKey に寄せる
func GormConfig(log gormlogger.Interface) *gorm.Config {
	return &gorm.Config{
		Logger:         log,
		TranslateError: true,
	}
}

// マイグレーション対象
func Models() []any {
	return []any{
		&model.User{},
		&model.Admin{},
		&model.Category{},
		&model.Product{},
		&model.Cart{},
		&model.Order{},
		&model.OrderItem{},
		&model.Favorite{},
		&model.Comment{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
