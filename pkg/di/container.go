package di

import (
	"todo-api/application/serviceimpl"
	"todo-api/domain/models"
	"todo-api/domain/ports"
	"todo-api/domain/repositories"
	"todo-api/domain/services"
	"todo-api/infrastructure/messaging"
	natspkg "todo-api/infrastructure/nats"
	"todo-api/infrastructure/postgres"
	redispkg "todo-api/infrastructure/redis"
	"todo-api/interfaces/api/handlers"
	"todo-api/pkg/config"
	"todo-api/pkg/logger"

	"gorm.io/gorm"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redispkg.Client // optional, nil when REDIS_URL is unset or unreachable
	NATSClient  *natspkg.Client  // optional, nil when NATS_URL is unset or unreachable
	Transactor  repositories.Transactor

	// Ports
	TaskListCache ports.TaskListCachePort
	TaskEvents    ports.TaskEventPublisherPort

	// Repositories
	UserRepository repositories.UserRepository
	TaskRepository repositories.TaskRepository

	// Services
	UserService services.UserService
	TaskService services.TaskService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	c.initRepositories()
	c.initServices()

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	dbConfig := postgres.DatabaseConfig{
		URL:      c.Config.Database.URL,
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		LogLevel: c.Config.Log.Level,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	c.Transactor = postgres.NewTransactor(db)
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Redis and NATS degrade gracefully: the API works without either
	if c.Config.Redis.Enabled() {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
			c.TaskListCache = redispkg.NewTaskListCache(redisClient, c.Config.Redis.TaskTTL)
		}
	}

	c.TaskEvents = messaging.NewNoopTaskEventPublisher()
	if c.Config.NATS.Enabled() {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{
			URL:           c.Config.NATS.URL,
			SubjectPrefix: c.Config.NATS.SubjectPrefix,
		})
		if err != nil {
			logger.Warn("NATS client initialization failed (task events disabled)", "error", err)
		} else {
			c.NATSClient = natsClient
			c.TaskEvents = messaging.NewNATSTaskEventPublisher(natspkg.NewPublisher(natsClient))
		}
	}

	return nil
}

func (c *Container) initRepositories() {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	logger.Info("Repositories initialized")
}

func (c *Container) initServices() {
	c.UserService = serviceimpl.NewUserService(
		c.UserRepository,
		c.TaskRepository,
		c.Transactor,
		c.TaskListCache,
		c.Config.JWT.Secret,
		c.Config.JWT.TokenTTL,
	)
	c.TaskService = serviceimpl.NewTaskService(
		c.TaskRepository,
		c.Transactor,
		c.TaskListCache,
		c.TaskEvents,
		models.OrderNewestFirst,
	)
	logger.Info("Services initialized")
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.NATSClient != nil {
		c.NATSClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return logger.Close()
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService: c.UserService,
		TaskService: c.TaskService,
		App:         c.Config.App,
	}
}
