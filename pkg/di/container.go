package di

import (
	"fmt"

	"gorm.io/gorm"

	"couplesync/application/serviceimpl"
	"couplesync/domain/ports"
	"couplesync/domain/repositories"
	"couplesync/domain/services"
	"couplesync/infrastructure/messaging"
	natspkg "couplesync/infrastructure/nats"
	"couplesync/infrastructure/postgres"
	redispkg "couplesync/infrastructure/redis"
	"couplesync/infrastructure/storage"
	"couplesync/infrastructure/telegram"
	"couplesync/infrastructure/websocket"
	"couplesync/interfaces/api/handlers"
	"couplesync/pkg/config"
	"couplesync/pkg/logger"
	"couplesync/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client // Redis client สำหรับ cache (optional)
	NATSClient     *natspkg.Client  // NATS connection สำหรับ change events
	NATSPublisher  *natspkg.Publisher
	NATSSubscriber *natspkg.Subscriber
	Storage        ports.StoragePort // Port/Adapter pattern
	EventScheduler scheduler.EventScheduler

	// Repositories
	UserRepository   repositories.UserRepository
	CoupleRepository repositories.CoupleRepository
	TaskRepository   repositories.TaskRepository

	// Services
	UserService   services.UserService
	CoupleService services.CoupleService
	TaskService   services.TaskService

	// Messaging Ports (Clean Architecture interfaces)
	ChangePublisher  ports.ChangePublisherPort
	ChangeSubscriber ports.ChangeSubscriberPort

	// WebSocket & Broadcasting
	ChangeBroadcaster *websocket.ChangeBroadcaster // Change events → WebSocket

	// Notifications
	Notifier        ports.NotifierPort
	ReminderService *serviceimpl.ReminderService
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

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initChangeBroadcaster(); err != nil {
		return err
	}

	if err := c.initReminder(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
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
	// Initialize Database
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	// Run migrations
	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Initialize Redis Client (optional - graceful degradation)
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
			logger.Info("Redis client initialized", "url", c.Config.Redis.URL)
		}
	}

	// Initialize NATS Client (change-event pub/sub)
	natsConfig := natspkg.ClientConfig{
		URL: c.Config.NATS.URL,
	}
	natsClient, err := natspkg.NewClient(natsConfig)
	if err != nil {
		// Realtime เป็น hint เท่านั้น - API ยังใช้งานได้ถ้า NATS ล่ม
		logger.Warn("NATS client initialization failed (realtime disabled)", "error", err)
	} else {
		c.NATSClient = natsClient
		c.NATSPublisher = natspkg.NewPublisher(natsClient)
		logger.Info("NATS client initialized", "url", c.Config.NATS.URL)

		c.initMessagingPorts()
	}

	// Initialize Storage (Port/Adapter pattern)
	if err := c.initStorage(); err != nil {
		return err
	}

	return nil
}

// initStorage สร้าง storage adapter ตาม config
func (c *Container) initStorage() error {
	switch c.Config.Storage.Type {
	case "s3":
		// S3-Compatible Storage (MinIO / Cloudflare R2)
		s3Config := storage.S3StorageConfig{
			Endpoint:  c.Config.Storage.S3.Endpoint,
			AccessKey: c.Config.Storage.S3.AccessKey,
			SecretKey: c.Config.Storage.S3.SecretKey,
			Bucket:    c.Config.Storage.S3.Bucket,
			UseSSL:    c.Config.Storage.S3.UseSSL,
			Region:    c.Config.Storage.S3.Region,
			PublicURL: c.Config.Storage.S3.PublicURL,
		}
		s3Storage, err := storage.NewS3Storage(s3Config)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		c.Storage = s3Storage
		logger.Info("S3 Storage initialized",
			"endpoint", c.Config.Storage.S3.Endpoint,
			"bucket", c.Config.Storage.S3.Bucket,
		)

	default:
		localConfig := storage.LocalStorageConfig{
			BasePath: c.Config.Storage.BasePath,
			BaseURL:  c.Config.Storage.BaseURL,
		}
		localStorage, err := storage.NewLocalStorage(localConfig)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		c.Storage = localStorage
		logger.Info("Local Storage initialized", "path", c.Config.Storage.BasePath)
	}

	return nil
}

// initMessagingPorts สร้าง messaging adapters (Clean Architecture)
func (c *Container) initMessagingPorts() {
	if c.NATSClient == nil {
		logger.Warn("Skipping messaging ports initialization (NATS not available)")
		return
	}

	c.ChangePublisher = messaging.NewNATSChangePublisher(c.NATSPublisher)

	natsSubscriber := natspkg.NewSubscriber(c.NATSClient.Conn())
	c.NATSSubscriber = natsSubscriber // เก็บ concrete type สำหรับ cleanup
	c.ChangeSubscriber = messaging.NewNATSChangeSubscriber(natsSubscriber)

	logger.Info("Messaging ports initialized")
}

func (c *Container) initRepositories() error {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.CoupleRepository = postgres.NewCoupleRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	logger.Info("Repositories initialized")
	return nil
}

func (c *Container) initServices() error {
	c.UserService = serviceimpl.NewUserService(
		c.UserRepository,
		c.Storage,
		c.Config.JWT.Secret,
	)

	// Couple Service (with optional Redis cache)
	if c.RedisClient != nil {
		c.CoupleService = serviceimpl.NewCoupleServiceWithCache(
			c.CoupleRepository,
			c.ChangePublisher,
			c.RedisClient,
		)
		logger.Info("Couple service initialized with Redis cache")
	} else {
		c.CoupleService = serviceimpl.NewCoupleService(c.CoupleRepository, c.ChangePublisher)
		logger.Info("Couple service initialized without cache")
	}

	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, c.CoupleRepository, c.ChangePublisher)

	logger.Info("Services initialized")
	return nil
}

func (c *Container) initChangeBroadcaster() error {
	if c.ChangeSubscriber == nil {
		logger.Warn("ChangeSubscriber not available, realtime broadcasting disabled")
		return nil
	}

	c.ChangeBroadcaster = websocket.NewChangeBroadcaster(c.ChangeSubscriber)

	if err := c.ChangeBroadcaster.Start(); err != nil {
		logger.Warn("Failed to start change broadcaster", "error", err)
		return nil
	}

	logger.Info("Change broadcaster started (Messaging → WebSocket)")
	return nil
}

func (c *Container) initReminder() error {
	if !c.Config.Reminder.Enabled {
		logger.Info("Task reminder disabled by config")
		return nil
	}

	c.Notifier = telegram.NewTelegramNotifier(c.Config.Telegram)

	c.EventScheduler = scheduler.NewEventScheduler()

	c.ReminderService = serviceimpl.NewReminderService(
		c.CoupleRepository,
		c.TaskRepository,
		c.Notifier,
		c.EventScheduler,
		c.Config.Reminder.CronExpr,
	)

	if err := c.ReminderService.Schedule(); err != nil {
		logger.Warn("Failed to schedule task reminder", "error", err)
		return nil
	}

	c.EventScheduler.Start()
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	// Stop change broadcaster
	if c.ChangeBroadcaster != nil {
		c.ChangeBroadcaster.Stop()
		logger.Info("Change broadcaster stopped")
	}

	// Stop NATS subscriber
	if c.NATSSubscriber != nil {
		if err := c.NATSSubscriber.UnsubscribeAll(); err != nil {
			logger.Warn("Failed to unsubscribe NATS subjects", "error", err)
		}
		logger.Info("NATS subscriber stopped")
	}

	// Stop scheduler
	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
		logger.Info("Event scheduler stopped")
	}

	// Close NATS connection
	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	// Close database connection
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
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:   c.UserService,
		CoupleService: c.CoupleService,
		TaskService:   c.TaskService,
	}
}
