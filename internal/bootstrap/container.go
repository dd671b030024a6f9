package bootstrap

import (
	"context"
	"log"
	"time"

	"aurora-fiscalizacao-be/internal/config"
	"aurora-fiscalizacao-be/internal/controller"
	"aurora-fiscalizacao-be/internal/handler"
	"aurora-fiscalizacao-be/internal/pkg/logger"
	"aurora-fiscalizacao-be/internal/pkg/mailer"
	"aurora-fiscalizacao-be/internal/repository/contract"
	"aurora-fiscalizacao-be/internal/repository/implementation"
	"aurora-fiscalizacao-be/internal/repository/memory"
	"aurora-fiscalizacao-be/internal/repository/redisrepo"
	"aurora-fiscalizacao-be/internal/service"
	"aurora-fiscalizacao-be/internal/websocket"
	"aurora-fiscalizacao-be/pkg/dialogue"
	"aurora-fiscalizacao-be/pkg/protocol"
	"aurora-fiscalizacao-be/pkg/transport"
	"aurora-fiscalizacao-be/pkg/webhook"

	pktNats "aurora-fiscalizacao-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WebhookController  controller.IWebhookController
	ProtocolController controller.IProtocolController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Console
	ConsoleHandler *handler.ConsoleHandler
	WebSocketHub   *websocket.Hub
}

// NewContainer builds the whole object graph. db may be nil; the bot then runs
// on the in-memory status and audit stores.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" && cfg.SMTP.OperatorTo != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.OperatorTo,
		)
	}

	// 2. Intake Queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	redisUp := true
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		redisUp = false
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/console.log")
	var hubRedis *redis.Client
	if redisUp {
		hubRedis = rdb
	}
	wsHub := websocket.NewHub(hubRedis, wsLogger)
	go wsHub.Run()

	// 3. Repositories
	sessionTTL := time.Duration(cfg.Bot.SessionTTLHours) * time.Hour
	var sessionRepo contract.ISessionRepository
	if cfg.Bot.SessionStore == "redis" && redisUp {
		sessionRepo = redisrepo.NewSessionRepository(rdb, sessionTTL)
		log.Printf("[INFO] Using Redis session store")
	} else {
		sessionRepo = memory.NewSessionRepository(sessionTTL)
		log.Printf("[INFO] Using in-memory session store")
	}

	var statusRepo contract.IProtocolStatusRepository
	var auditRepo contract.IAuditRepository
	if db != nil {
		statusRepo = implementation.NewProtocolStatusRepository(db)
		auditRepo = implementation.NewAuditRepository(db)
	} else {
		statusRepo = memory.NewProtocolStatusRepository()
		log.Printf("[INFO] No database configured, using seeded in-memory protocol statuses")
	}

	// 4. Core Domain
	sequenceStore := protocol.NewFileSequenceStore(cfg.Bot.SequenceFilePath)
	generator := protocol.NewGenerator(sequenceStore, sysLogger)

	dispatcher := webhook.NewDispatcher(cfg.Webhook.AlertURL, cfg.Webhook.MetricsURL, sysLogger)

	var sender transport.Sender
	if cfg.Gateway.URL != "" {
		sender = transport.NewHTTPSender(cfg.Gateway.URL, cfg.Gateway.Token, sysLogger)
	} else {
		sender = transport.NewNoopSender(sysLogger)
		log.Printf("[INFO] No gateway configured, outbound messages are logged only")
	}

	protocolService := service.NewProtocolService(statusRepo, sysLogger)
	engine := dialogue.NewEngine(generator, protocolService)

	// 5. Services
	dialogueService := service.NewDialogueService(
		engine,
		sessionRepo,
		sender,
		dispatcher,
		natsPub,
		emailService,
		cfg.Bot.DocumentPath,
		sysLogger,
	)

	publisherService := service.NewPublisherService(cfg.App.IntakeTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.IntakeTopic, dialogueService)

	auditService := service.NewAuditService(natsSub, auditRepo, wsHub, wsLogger)
	if natsSub != nil {
		if err := auditService.Start(); err != nil {
			log.Printf("[WARN] Failed to start audit consumer: %v", err)
		}
	}

	consoleService := service.NewConsoleService(
		cfg.Console.Username,
		cfg.Console.PasswordHash,
		cfg.Console.JWTSecret,
		time.Duration(cfg.Console.TokenTTL)*time.Hour,
	)

	// 6. Controllers & Handlers
	return &Container{
		WebhookController:  controller.NewWebhookController(publisherService, dialogueService),
		ProtocolController: controller.NewProtocolController(protocolService),
		ConsoleHandler:     handler.NewConsoleHandler(consoleService, auditService, wsHub, wsLogger),
		WebSocketHub:       wsHub,
		ConsumerService:    consumerService,
	}
}
