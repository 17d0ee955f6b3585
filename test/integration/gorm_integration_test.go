package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"homerun-be/internal/entity"
	"homerun-be/internal/repository/specification"
	"homerun-be/internal/repository/unitofwork"
	"homerun-be/pkg/coach/stage"
	"homerun-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ConversationRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Conversation Repository", func(t *testing.T) {
		count, err := uow.ConversationRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Conversation count: %d", count)
	})

	t.Run("Check Transactional Journey Write", func(t *testing.T) {
		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Role:     "user",
			Status:   "active",
		}

		err := uow.UserRepository().Create(context.Background(), user)
		assert.NoError(t, err)

		// Transaction Test
		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		conversationId := uuid.New()
		conversation := &entity.Conversation{
			Id:          conversationId,
			UserId:      userId,
			JourneyType: "personal",
			CurrentBase: stage.AtBat,
			IsActive:    true,
		}
		err = uow.ConversationRepository().Create(ctx, conversation)
		assert.NoError(t, err)

		message := &entity.Message{
			Id:             uuid.New(),
			ConversationId: conversationId,
			Role:           stage.RoleAssistant,
			Content:        "What brings you to the plate today?",
			BaseStage:      stage.AtBat,
			WhyLevel:       1,
		}
		err = uow.MessageRepository().Create(ctx, message)
		assert.NoError(t, err)

		progress := &entity.BaseProgress{
			Id:             uuid.New(),
			ConversationId: conversationId,
			BaseStage:      stage.AtBat,
		}
		err = uow.BaseProgressRepository().Upsert(ctx, progress)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		// Read back through the specification layer
		found, err := uow.ConversationRepository().FindOne(context.Background(),
			specification.ByID{ID: conversationId},
			specification.ActiveOnly{},
		)
		assert.NoError(t, err)
		assert.NotNil(t, found)

		messages, err := uow.MessageRepository().FindAll(context.Background(),
			specification.ByConversationID{ConversationID: conversationId},
			specification.ByBaseStage{BaseStage: string(stage.AtBat)},
		)
		assert.NoError(t, err)
		assert.Len(t, messages, 1)

		t.Log("Successfully created Conversation with Message and Progress in Transaction")
	})
}
