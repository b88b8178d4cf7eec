package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Sentinel errors the API layer maps to HTTP status codes.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// Database holds the connection pool and is passed explicitly to every
// component that needs durable state. There is no package-level handle.
type Database struct {
	Pool *pgxpool.Pool
	dsn  string
	log  *zap.Logger
}

// Config holds database configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewDatabase creates a new database connection with retry logic.
func NewDatabase(logger *zap.Logger) (*Database, error) {
	return NewDatabaseWithRetry(logger, 5, time.Second)
}

// NewDatabaseWithRetry creates a new database connection, retrying with
// exponential backoff so a slow-starting database does not kill the process.
func NewDatabaseWithRetry(logger *zap.Logger, maxRetries int, initialDelay time.Duration) (*Database, error) {
	dsn := buildDSN()

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	var pool *pgxpool.Pool
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		logger.Info("connecting to database",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.String("host", poolConfig.ConnConfig.Host),
			zap.Uint16("port", poolConfig.ConnConfig.Port))

		pool, err = pgxpool.NewWithConfig(context.Background(), poolConfig)
		if err != nil {
			lastErr = fmt.Errorf("create connection pool: %w", err)
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err = pool.Ping(ctx)
			cancel()
			if err == nil {
				logger.Info("database connection established", zap.Int("attempt", attempt))
				return &Database{Pool: pool, dsn: dsn, log: logger}, nil
			}
			lastErr = fmt.Errorf("ping database: %w", err)
			pool.Close()
			pool = nil
		}

		logger.Warn("database connection failed", zap.Int("attempt", attempt), zap.Error(lastErr))
		if attempt < maxRetries {
			delay := initialDelay * time.Duration(1<<(attempt-1))
			time.Sleep(delay)
		}
	}

	return nil, fmt.Errorf("connect to database after %d attempts: %w", maxRetries, lastErr)
}

// Close closes the database connection pool
func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
		db.log.Info("database connection pool closed")
	}
}

// Health checks if the database is reachable. It tolerates a nil receiver so
// the health endpoint can report a failed startup instead of panicking.
func (db *Database) Health(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return errors.New("database not initialized")
	}
	return db.Pool.Ping(ctx)
}

// buildDSN prefers DATABASE_URL when provided, otherwise assembles a DSN from
// the individual DB_* variables.
func buildDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	config := getConfigFromEnv()
	if config.Password == "" {
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
			config.Host, config.Port, config.User, config.DBName, config.SSLMode)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)
}

// getConfigFromEnv reads database configuration from environment variables
func getConfigFromEnv() Config {
	config := Config{
		Host:     getEnv("DB_HOST", "localhost"),
		User:     getEnv("DB_USER", "planner"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "planner_db"),
		SSLMode:  getEnv("DB_SSLMODE", "prefer"),
	}

	portStr := getEnv("DB_PORT", "5432")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 5432
	}
	config.Port = port

	return config
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// isUniqueViolation reports whether err is a unique-constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isNoRows reports whether err means the query matched nothing.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
