package bootstrap

import (
	"log"

	"github.com/aihub/storescan-go/internal/config"
	"github.com/aihub/storescan-go/internal/database"
	"github.com/aihub/storescan-go/internal/di"
	"github.com/aihub/storescan-go/internal/kafka"
	"github.com/aihub/storescan-go/internal/logger"
	"github.com/aihub/storescan-go/internal/scanner"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// App encapsulates lifecycle resources that need to be cleaned up on shutdown.
type App struct {
	scanner      *scanner.Scanner
	cleanupTasks []func() error
}

// Global app instance for controllers to access
var globalApp *App

// GetApp returns the global app instance
func GetApp() *App {
	return globalApp
}

// Scanner 返回进程级扫描器实例
func (a *App) Scanner() *scanner.Scanner {
	return a.scanner
}

// Shutdown 逆序执行清理任务
func (a *App) Shutdown() {
	for i := len(a.cleanupTasks) - 1; i >= 0; i-- {
		if err := a.cleanupTasks[i](); err != nil {
			logger.Warn("Cleanup task failed", zap.Error(err))
		}
	}
	logger.Sync()
}

// Init bootstraps configuration, logger, database connections and the
// scanner dependency graph required by the Beego application.
func Init() (*App, error) {
	// Load environment variables from .env if present (non-fatal if missing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize structured logger.
	if err := logger.InitLogger(); err != nil {
		return nil, err
	}

	// Load dynamic configuration.
	if err := config.LoadConfig(); err != nil {
		return nil, err
	}

	app := &App{}

	// Initialize content repository connection.
	if _, err := database.InitDB(); err != nil {
		return nil, err
	}
	app.cleanupTasks = append(app.cleanupTasks, database.CloseDB)

	// Initialize Redis (optional, scanner falls back to in-memory cache).
	if config.AppConfig.Redis.Enabled {
		if _, err := database.InitRedis(); err != nil {
			logger.Warn("Failed to connect to Redis, chunk cache degrades to in-memory", zap.Error(err))
		} else {
			app.cleanupTasks = append(app.cleanupTasks, database.CloseRedis)
		}
	}

	// Initialize Kafka producer (optional).
	if config.AppConfig.Kafka.Enabled {
		if err := kafka.InitProducer(config.AppConfig.Kafka.Brokers, config.AppConfig.Kafka.Topic); err != nil {
			logger.Warn("Failed to initialize Kafka producer, scan reports will not be published", zap.Error(err))
		} else {
			app.cleanupTasks = append(app.cleanupTasks, func() error {
				return kafka.GetProducer().Close()
			})
		}
	}

	// Build the scanner dependency graph.
	container := di.InitContainer()
	if err := di.RegisterProviders(container); err != nil {
		return nil, err
	}
	if err := container.Invoke(func(s *scanner.Scanner) {
		app.scanner = s
	}); err != nil {
		return nil, err
	}

	SetGlobalApp(app)
	logger.Info("Bootstrap completed",
		zap.Int("batch_size", config.AppConfig.Scanner.BatchSize),
		zap.Int("cache_ttl_seconds", config.AppConfig.Scanner.CacheTTLSeconds))
	return app, nil
}

// SetGlobalApp sets the global app instance
func SetGlobalApp(app *App) {
	globalApp = app
}
