package config

import (
	"fmt"
	"strings"
	"time"

	"storefront/pkg/cache"
	"storefront/pkg/database"
)

// DatabaseConfig holds the MongoDB connection settings.
type DatabaseConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	MaxPoolSize    int           `yaml:"max_pool_size"`
	MinPoolSize    int           `yaml:"min_pool_size"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	SocketTimeout  time.Duration `yaml:"socket_timeout"`
	RunMigrations  bool          `yaml:"run_migrations"`
}

// RedisConfig holds the promo cache settings. Caching is skipped when disabled.
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

func (d *DatabaseConfig) Validate() error {
	if !strings.HasPrefix(d.URI, "mongodb://") && !strings.HasPrefix(d.URI, "mongodb+srv://") {
		return fmt.Errorf("MONGODB_URI must use the mongodb:// or mongodb+srv:// scheme")
	}
	if d.Database == "" {
		return fmt.Errorf("MONGODB_DATABASE is required")
	}
	if d.MinPoolSize > d.MaxPoolSize {
		return fmt.Errorf("MONGODB_MIN_POOL_SIZE %d exceeds MONGODB_MAX_POOL_SIZE %d", d.MinPoolSize, d.MaxPoolSize)
	}
	return nil
}

// MongoConfig converts to the connection options of pkg/database.
func (d *DatabaseConfig) MongoConfig() *database.DatabaseConfig {
	return &database.DatabaseConfig{
		URI:            d.URI,
		Database:       d.Database,
		MaxPoolSize:    d.MaxPoolSize,
		MinPoolSize:    d.MinPoolSize,
		ConnectTimeout: d.ConnectTimeout,
		SocketTimeout:  d.SocketTimeout,
	}
}

func (r *RedisConfig) CacheConfig() *cache.RedisConfig {
	return &cache.RedisConfig{
		Host:         r.Host,
		Port:         r.Port,
		Password:     r.Password,
		DB:           r.DB,
		PoolSize:     r.PoolSize,
		MinIdleConns: r.MinIdleConns,
		DialTimeout:  r.DialTimeout,
		ReadTimeout:  r.ReadTimeout,
		WriteTimeout: r.WriteTimeout,
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database:       getEnv("MONGODB_DATABASE", "storefront"),
		MaxPoolSize:    getEnvAsInt("MONGODB_MAX_POOL_SIZE", 50),
		MinPoolSize:    getEnvAsInt("MONGODB_MIN_POOL_SIZE", 2),
		ConnectTimeout: getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		SocketTimeout:  getEnvAsDuration("MONGODB_SOCKET_TIMEOUT", 30*time.Second),
		RunMigrations:  getEnvAsBool("MONGODB_RUN_MIGRATIONS", true),
	}
}

func loadRedisConfig() *RedisConfig {
	return &RedisConfig{
		Enabled:      getEnvAsBool("REDIS_ENABLED", false),
		Host:         getEnv("REDIS_HOST", "localhost"),
		Port:         getEnvAsInt("REDIS_PORT", 6379),
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           getEnvAsInt("REDIS_DB", 0),
		PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
		MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  getEnvAsDuration("REDIS_DIAL_TIMEOUT", 2*time.Second),
		ReadTimeout:  getEnvAsDuration("REDIS_READ_TIMEOUT", time.Second),
		WriteTimeout: getEnvAsDuration("REDIS_WRITE_TIMEOUT", time.Second),
	}
}
