package bootstrap

import (
	"context"
	"log"
	"time"

	"birthplan-agent-be/internal/config"
	"birthplan-agent-be/internal/controller"
	"birthplan-agent-be/internal/pkg/logger"
	"birthplan-agent-be/internal/pkg/mailer"
	"birthplan-agent-be/internal/repository/contract"
	"birthplan-agent-be/internal/repository/implementation"
	"birthplan-agent-be/internal/repository/memory"
	"birthplan-agent-be/internal/repository/redisstore"
	"birthplan-agent-be/internal/service"
	"birthplan-agent-be/pkg/generator"
	"birthplan-agent-be/pkg/llm/factory"
	"birthplan-agent-be/pkg/plan"

	pktNats "birthplan-agent-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const planExportTopic = "PLAN_EXPORT_DELIVERY"

type Container struct {
	// Controllers
	ConversationController controller.IConversationController
	AdminController        controller.IAdminController

	// Background Services (Exposed for main.go to run)
	DeliveryService service.IDeliveryService
}

// NewContainer wires the dependency graph. The db handle may be nil when the
// session store is memory or redis.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Session Store
	sessionStore := newSessionStore(db, cfg)

	// 4. LLM Provider + Question Generator
	var questionGenerator generator.QuestionGenerator
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Printf("[WARN] Failed to initialize LLM Provider: %v (fallback questions only)", err)
	} else {
		questionGenerator = generator.NewLLMGenerator(llmProvider)
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// 5. Services
	engine := plan.NewEngine(plan.DefaultCatalog())
	publisherService := service.NewPublisherService(planExportTopic, pubSub)
	deliveryService := service.NewDeliveryService(pubSub, planExportTopic, emailService, sysLogger)

	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	conversationService := service.NewConversationService(
		sessionStore,
		engine,
		questionGenerator,
		time.Duration(cfg.Ai.GeneratorTimeout)*time.Second,
		eventPublisher,
		publisherService,
		sysLogger,
	)
	adminService := service.NewAdminService(cfg, sessionStore, sysLogger)

	// 6. Controllers
	return &Container{
		ConversationController: controller.NewConversationController(conversationService),
		AdminController:        controller.NewAdminController(adminService),

		DeliveryService: deliveryService,
	}
}

func newSessionStore(db *gorm.DB, cfg *config.Config) contract.PlanSessionStore {
	switch cfg.App.SessionStore {
	case "gorm":
		if db == nil {
			log.Fatalf("[FATAL] SESSION_STORE=gorm requires a database connection")
		}
		log.Printf("[INFO] Using Session Store: GORM (postgres)")
		return implementation.NewPlanSessionStore(db)
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		log.Printf("[INFO] Using Session Store: REDIS")
		return redisstore.NewPlanSessionStore(rdb)
	default:
		log.Printf("[INFO] Using Session Store: MEMORY")
		return memory.NewPlanSessionStore()
	}
}
