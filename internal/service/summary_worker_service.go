package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"homerun-be/internal/dto"
	"homerun-be/internal/entity"
	"homerun-be/internal/repository/specification"
	"homerun-be/internal/repository/unitofwork"
	"homerun-be/pkg/coach/prompt"
	"homerun-be/pkg/coach/stage"
	"homerun-be/pkg/events"
	"homerun-be/pkg/llm"
	pktNats "homerun-be/pkg/nats"
)

type ISummaryWorkerService interface {
	Consume(ctx context.Context) error
}

// summaryWorkerService drains the summary job queue. Breakthrough summaries
// take a full generator round trip, so they are produced off the request
// path and written back to the conversation when ready.
type summaryWorkerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	generator      llm.LLMProvider
	eventPublisher *pktNats.Publisher
}

func NewSummaryWorkerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	generator llm.LLMProvider,
	eventPublisher *pktNats.Publisher,
) ISummaryWorkerService {
	return &summaryWorkerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		generator:      generator,
		eventPublisher: eventPublisher,
	}
}

func (ws *summaryWorkerService) Consume(ctx context.Context) error {
	messages, err := ws.pubSub.Subscribe(ctx, ws.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ws.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ws *summaryWorkerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishSummaryJobMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal summary job: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	base, err := stage.Parse(payload.BaseStage)
	if err != nil {
		log.Printf("[ERROR] Summary job for unknown stage %q: %v", payload.BaseStage, err)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Generating %s summary for conversation %s", base, payload.ConversationId)

	uow := ws.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: payload.ConversationId})
	if err != nil {
		log.Printf("[ERROR] Failed to get conversation %s: %v", payload.ConversationId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if conversation == nil {
		log.Printf("[ERROR] Conversation not found: %s", payload.ConversationId)
		msg.Ack() // Conversation deleted? Ack.
		return
	}

	records, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: payload.ConversationId},
		specification.ByBaseStage{BaseStage: payload.BaseStage},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to load messages for conversation %s: %v", payload.ConversationId, err)
		msg.Nack()
		return
	}

	turns := make([]stage.Turn, 0, len(records))
	for _, m := range records {
		turns = append(turns, stage.Turn{Role: m.Role, Content: m.Content, Depth: m.WhyLevel})
	}

	history := make([]llm.Message, 0, len(turns)+2)
	history = append(history, llm.Message{Role: stage.RoleSystem, Content: prompt.SummarySystem(base, payload.RootInsight)})
	history = append(history, prompt.SummaryMessages(turns)...)

	completion, err := ws.generator.Chat(ctx, history)
	if err != nil {
		log.Printf("[ERROR] Summary generation failed for conversation %s: %v", payload.ConversationId, err)
		msg.Nack()
		return
	}

	setSummary(conversation, base, completion.Text)

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		log.Printf("[ERROR] Failed to store %s summary: %v", base, err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	if ws.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "SUMMARY_READY",
			Data: map[string]interface{}{
				"conversation_id": conversation.Id,
				"user_id":         conversation.UserId,
				"base_stage":      string(base),
			},
			OccurredAt: time.Now(),
		}
		if err := ws.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish SUMMARY_READY event: %v\n", err)
		}
	}

	log.Printf("[SUCCESS] %s summary stored for conversation %s", base, payload.ConversationId)
	msg.Ack()
}

func setSummary(conversation *entity.Conversation, base stage.Stage, summary string) {
	switch base {
	case stage.AtBat:
		conversation.AtBatSummary = summary
	case stage.FirstBase:
		conversation.FirstBaseSummary = summary
	case stage.SecondBase:
		conversation.SecondBaseSummary = summary
	case stage.ThirdBase:
		conversation.ThirdBaseSummary = summary
	case stage.HomePlate:
		conversation.HomePlateSummary = summary
	}
}
