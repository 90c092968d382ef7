package db

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
	"liyu1981.xyz/eldercare-telemetry/pkg/config"
	"liyu1981.xyz/eldercare-telemetry/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

type PoolOpts struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

var DefaultPoolOpts = PoolOpts{
	MaxOpenConns:    20,
	MaxIdleConns:    5,
	ConnMaxLifetime: time.Hour,
}

var (
	instance *DB
	once     sync.Once
)

// GetInstance returns the process wide connection, the dialector of the first
// call wins.
func GetInstance(dialector gorm.Dialector) *DB {
	once.Do(func() {
		var err error
		instance, err = New(dialector, DefaultPoolOpts)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
	})
	return instance
}

// New opens a connection, configures the pool and migrates every table.
func New(dialector gorm.Dialector, pool PoolOpts) (*DB, error) {
	logger := common.GetLoggerWith(common.LoggerNameDB)

	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zap.NewStdLog(logger), gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialector.Name(), err)
	}

	logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	instance := &DB{Conn: conn}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	if instance.IsSqlite() {
		// pragmas are per connection
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign key support: %w", err)
		}
		if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			return nil, fmt.Errorf("set sqlite journal mode: %w", err)
		}
	}

	if err := instance.Migrate(); err != nil {
		return nil, err
	}

	logger.Info("Database migration completed")
	return instance, nil
}

func (d *DB) Migrate() error {
	if err := d.Conn.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (d *DB) IsSqlite() bool {
	return d.Conn.Dialector.Name() == "sqlite"
}

// Health pings the pool within five seconds.
func (d *DB) Health(ctx context.Context) error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func (d *DB) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// FromConfig picks the dialector named by DB_TYPE.
func FromConfig(cfg config.DatabaseConfig) (*DB, error) {
	pool := DefaultPoolOpts
	pool.MaxOpenConns = cfg.MaxOpenConns
	pool.MaxIdleConns = cfg.MaxIdleConns

	switch cfg.Type {
	case "postgres":
		return New(UsePostgresDialector(cfg), pool)
	case "sqlite":
		return New(UseSqliteDialector(cfg.Path), pool)
	case "memory":
		return New(UseMemorySqliteDialector(), pool)
	default:
		return nil, fmt.Errorf("unknown %s: %s", common.EnvKeyDBType, cfg.Type)
	}
}

func UsePostgresDialector(cfg config.DatabaseConfig) gorm.Dialector {
	return postgres.New(postgres.Config{DSN: cfg.DSN()})
}

func UseSqliteDialector(path string) gorm.Dialector {
	if path == "" {
		path = "eldercare.db"
	}
	return sqlite.Open(path)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

// UseIsolatedMemorySqliteDialector opens a private in-memory database, tests
// use it so they never see each other's rows.
func UseIsolatedMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}
