package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"liyu1981.xyz/eldercare-telemetry/pkg/common"
)

type DatabaseConfig struct {
	Type         string
	Path         string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// DSN is the libpq key/value form understood by gorm.io/driver/postgres.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type SnapshotConfig struct {
	BatchSize     int
	AckDelayMin   time.Duration
	AckDelayMax   time.Duration
	AlertDebounce time.Duration
	// Seed is nil when SNAPSHOT_SEED is unset.
	Seed *int64
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type MQTTConfig struct {
	Broker    string
	ClientID  string
	TopicRoot string
}

func (c MQTTConfig) Enabled() bool { return c.Broker != "" }

type Config struct {
	Database       DatabaseConfig
	ServerPort     int
	GrpcPort       int
	RequestTimeout time.Duration
	IngestRate     float64
	IngestBurst    int
	Snapshot       SnapshotConfig
	Redis          RedisConfig
	MQTT           MQTTConfig
}

func (c Config) HTTPAddr() string { return fmt.Sprintf(":%d", c.ServerPort) }

func (c Config) GrpcAddr() string {
	if c.GrpcPort == 0 {
		return ""
	}
	return fmt.Sprintf(":%d", c.GrpcPort)
}

func (c Config) LimiterEnabled() bool { return c.IngestRate > 0 && c.IngestBurst > 0 }

// Load reads an optional .env file then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	r := &reader{}

	cfg := &Config{
		Database: DatabaseConfig{
			Type:         strings.ToLower(r.str(common.EnvKeyDBType, "postgres")),
			Path:         r.str(common.EnvKeyDBPath, "eldercare.db"),
			Host:         r.str(common.EnvKeyDBHost, "localhost"),
			Port:         r.int(common.EnvKeyDBPort, 5432),
			User:         r.str(common.EnvKeyDBUser, "postgres"),
			Password:     r.str(common.EnvKeyDBPassword, ""),
			Name:         r.str(common.EnvKeyDBName, "eldercare"),
			SSLMode:      r.str(common.EnvKeyDBSSLMode, "disable"),
			MaxOpenConns: r.int(common.EnvKeyDBMaxOpenConns, 20),
			MaxIdleConns: r.int(common.EnvKeyDBMaxIdleConns, 5),
		},
		ServerPort:     r.int(common.EnvKeyServerPort, 8000),
		GrpcPort:       r.int(common.EnvKeyGrpcPort, 0),
		RequestTimeout: r.seconds(common.EnvKeyRequestTimeout, 30),
		IngestRate:     r.float(common.EnvKeyIngestRate, 0),
		IngestBurst:    r.int(common.EnvKeyIngestBurst, 0),
		Snapshot: SnapshotConfig{
			BatchSize:     r.int(common.EnvKeySnapshotBatchSize, 5000),
			AckDelayMin:   r.seconds(common.EnvKeyAckDelayMinSeconds, 10),
			AckDelayMax:   r.seconds(common.EnvKeyAckDelayMaxSeconds, 300),
			AlertDebounce: r.seconds(common.EnvKeyAlertDebounceSeconds, 600),
			Seed:          r.optionalInt64(common.EnvKeySnapshotSeed),
		},
		Redis: RedisConfig{
			Addr:     r.str(common.EnvKeyRedisAddr, ""),
			Password: r.str(common.EnvKeyRedisPassword, ""),
			DB:       r.int(common.EnvKeyRedisDB, 0),
		},
		MQTT: MQTTConfig{
			Broker:    r.str(common.EnvKeyMQTTBroker, ""),
			ClientID:  r.str(common.EnvKeyMQTTClientID, "eldercare-telemetry"),
			TopicRoot: strings.Trim(r.str(common.EnvKeyMQTTTopicRoot, "eldercare"), "/"),
		},
	}

	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Type {
	case "postgres", "sqlite", "memory":
	default:
		errs = append(errs, fmt.Errorf("%s must be one of postgres, sqlite, memory, got %q", common.EnvKeyDBType, c.Database.Type))
	}
	if c.Snapshot.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("%s must be >= 1", common.EnvKeySnapshotBatchSize))
	}
	// the press must land after buzzer on, snapshot keys are unique per second
	if c.Snapshot.AckDelayMin < time.Second || c.Snapshot.AckDelayMin > c.Snapshot.AckDelayMax {
		errs = append(errs, fmt.Errorf("%s must be between 1 and %s", common.EnvKeyAckDelayMinSeconds, common.EnvKeyAckDelayMaxSeconds))
	}
	if c.Snapshot.AlertDebounce < 0 {
		errs = append(errs, fmt.Errorf("%s must be >= 0", common.EnvKeyAlertDebounceSeconds))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be > 0", common.EnvKeyRequestTimeout))
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("%s out of range", common.EnvKeyServerPort))
	}
	return errors.Join(errs...)
}

type reader struct {
	errs []error
}

func (r *reader) str(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (r *reader) int(key string, fallback int) int {
	v := r.str(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s, should be an int value: %w", key, err))
		return fallback
	}
	return n
}

func (r *reader) optionalInt64(key string) *int64 {
	v := r.str(key, "")
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s, should be an int64 value: %w", key, err))
		return nil
	}
	return &n
}

func (r *reader) float(key string, fallback float64) float64 {
	v := r.str(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s, should be a float64 value: %w", key, err))
		return fallback
	}
	return f
}

func (r *reader) seconds(key string, fallback int) time.Duration {
	return time.Duration(r.int(key, fallback)) * time.Second
}
