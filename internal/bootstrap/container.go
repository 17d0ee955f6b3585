package bootstrap

import (
	"context"
	"log"

	"homerun-be/internal/config"
	"homerun-be/internal/controller"
	"homerun-be/internal/handler"
	"homerun-be/internal/pkg/logger"
	"homerun-be/internal/pkg/mailer"
	"homerun-be/internal/repository/implementation"
	"homerun-be/internal/repository/memory"
	"homerun-be/internal/repository/unitofwork"
	"homerun-be/internal/service"
	"homerun-be/internal/websocket"
	"homerun-be/pkg/coach/stage"
	"homerun-be/pkg/llm/factory"
	"homerun-be/pkg/tts"

	pktNats "homerun-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	UserController       controller.IUserController
	AuthController       controller.IAuthController
	OAuthController      controller.IOAuthController
	AssessmentController controller.IAssessmentController
	JourneyController    controller.IJourneyController
	CoachController      controller.ICoachController
	NarrationController  controller.INarrationController

	// Background Services (Exposed for main.go to run)
	SummaryWorkerService service.ISummaryWorkerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
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

	// Initialize the text generator based on Config
	generator, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.AnthropicAPIKey,
		providerModel(cfg),
		providerBaseURL(cfg),
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	synthesizer := tts.NewGoogleSynthesizer(tts.Config{
		APIKey:       cfg.TTS.GoogleAPIKey,
		VoiceName:    cfg.TTS.VoiceName,
		VoiceGender:  cfg.TTS.VoiceGender,
		SpeakingRate: cfg.TTS.SpeakingRate,
		Pitch:        cfg.TTS.Pitch,
		VolumeGainDb: cfg.TTS.Volume,
	})

	// Anonymous pre-assessment intakes live in memory until claimed
	intakeRepo := memory.NewIntakeRepository()

	// 2.5 Infrastructure (Moved up for dependency injection)
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
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.SummaryTopic, pubSub)
	summaryWorkerService := service.NewSummaryWorkerService(
		pubSub,
		cfg.App.SummaryTopic,
		uowFactory,
		generator,
		natsPub,
	)

	userService := service.NewUserService(uowFactory, natsPub)
	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory)

	assessmentService := service.NewAssessmentService(uowFactory, generator, intakeRepo, sysLogger)
	journeyService := service.NewJourneyService(uowFactory, natsPub)
	coachService := service.NewCoachService(
		uowFactory,
		generator,
		stage.NewEngine(nil),
		publisherService,
		natsPub,
		sysLogger,
	)
	reportService := service.NewReportService(uowFactory, generator, sysLogger)
	narrationService := service.NewNarrationService(synthesizer, sysLogger)

	// 3.5 Notification System Infrastructure
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	// Handler
	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 4. Controllers
	// Note: We return the container with public fields for the server to register
	return &Container{
		NotificationHandler:  notifHandler,
		WebSocketHub:         wsHub,
		UserController:       controller.NewUserController(userService),
		AuthController:       controller.NewAuthController(authService),
		OAuthController:      controller.NewOAuthController(oauthService),
		AssessmentController: controller.NewAssessmentController(assessmentService),
		JourneyController:    controller.NewJourneyController(journeyService, reportService),
		CoachController:      controller.NewCoachController(coachService),
		NarrationController:  controller.NewNarrationController(narrationService),

		SummaryWorkerService: summaryWorkerService,
	}
}

func providerBaseURL(cfg *config.Config) string {
	if cfg.Ai.Provider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.AnthropicURL
}

func providerModel(cfg *config.Config) string {
	if cfg.Ai.Provider == "ollama" && cfg.Ai.Model == "" {
		return cfg.Ai.OllamaModel
	}
	return cfg.Ai.Model
}
