package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homerun-be/internal/dto"
	"homerun-be/internal/entity"
	"homerun-be/internal/repository/specification"
	"homerun-be/internal/repository/unitofwork"
	"homerun-be/pkg/coach/stage"
	"homerun-be/pkg/events"
	pktNats "homerun-be/pkg/nats"
)

var (
	ErrActiveJourneyExists = errors.New("an active journey already exists")
	ErrNoActiveJourney     = errors.New("no active journey")
	ErrStageNotCompleted   = errors.New("current stage is not completed yet")
)

type IJourneyService interface {
	StartJourney(ctx context.Context, userId uuid.UUID, req *dto.StartJourneyRequest) (*dto.JourneyResponse, error)
	GetActiveJourney(ctx context.Context, userId uuid.UUID) (*dto.JourneyResponse, error)
	Proceed(ctx context.Context, userId uuid.UUID, req *dto.ProceedRequest) (*dto.ProceedResponse, error)
	GetProgress(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) ([]*dto.BaseProgressResponse, error)
}

type journeyService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewJourneyService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IJourneyService {
	return &journeyService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *journeyService) StartJourney(ctx context.Context, userId uuid.UUID, req *dto.StartJourneyRequest) (*dto.JourneyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ConversationRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrActiveJourneyExists
	}

	conversation := &entity.Conversation{
		Id:          uuid.New(),
		UserId:      userId,
		JourneyType: req.JourneyType,
		CurrentBase: stage.AtBat,
		IsActive:    true,
		StartedAt:   time.Now(),
		CreatedAt:   time.Now(),
	}
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "JOURNEY_STARTED",
			Data: map[string]interface{}{
				"conversation_id": conversation.Id,
				"user_id":         userId,
				"journey_type":    conversation.JourneyType,
			},
			OccurredAt: time.Now(),
		}
		// We log error but don't fail the request as notification is auxiliary
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish JOURNEY_STARTED event: %v\n", err)
		}
	}

	return s.toJourneyResponse(ctx, uow, conversation), nil
}

func (s *journeyService) GetActiveJourney(ctx context.Context, userId uuid.UUID) (*dto.JourneyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrNoActiveJourney
	}
	return s.toJourneyResponse(ctx, uow, conversation), nil
}

// Proceed advances to the next base. The stage engine only suggests
// completion; the user decides when to actually move. Advancing requires
// the current base's why sequence to be finished, and the confirmation
// timestamp is stamped here, on the user's explicit move.
func (s *journeyService) Proceed(ctx context.Context, userId uuid.UUID, req *dto.ProceedRequest) (*dto.ProceedResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: req.ConversationId},
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	previous := conversation.CurrentBase
	if previous.Terminal() {
		return nil, ErrJourneyCompleted
	}

	progress, err := uow.BaseProgressRepository().FindOne(ctx,
		specification.ByConversationID{ConversationID: conversation.Id},
		specification.ByBaseStage{BaseStage: string(previous)},
	)
	if err != nil {
		return nil, err
	}
	if progress == nil || !progress.WhySequenceComplete {
		return nil, ErrStageNotCompleted
	}

	if progress.CompletedAt == nil {
		now := time.Now()
		progress.CompletedAt = &now
		progress.ConfirmationReceived = true
		if err := uow.BaseProgressRepository().Upsert(ctx, progress); err != nil {
			return nil, err
		}
	}

	conversation.CurrentBase = previous.Next()
	conversation.CompletionPercentage = previous.Progress()

	journeyCompleted := conversation.CurrentBase.Terminal()
	if journeyCompleted {
		now := time.Now()
		conversation.CompletedAt = &now
	}

	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}

	if journeyCompleted && s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "JOURNEY_COMPLETED",
			Data: map[string]interface{}{
				"conversation_id": conversation.Id,
				"user_id":         userId,
				"journey_type":    conversation.JourneyType,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish JOURNEY_COMPLETED event: %v\n", err)
		}
	}

	return &dto.ProceedResponse{
		ConversationId:       conversation.Id,
		PreviousBase:         string(previous),
		CurrentBase:          string(conversation.CurrentBase),
		CurrentBaseLabel:     conversation.CurrentBase.Label(),
		CompletionPercentage: conversation.CompletionPercentage,
		JourneyCompleted:     journeyCompleted,
	}, nil
}

func (s *journeyService) GetProgress(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) ([]*dto.BaseProgressResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	records, err := uow.BaseProgressRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
	)
	if err != nil {
		return nil, err
	}

	byStage := make(map[stage.Stage]*entity.BaseProgress, len(records))
	for _, r := range records {
		byStage[r.BaseStage] = r
	}

	// Always report all five bases in journey order, touched or not.
	out := make([]*dto.BaseProgressResponse, 0, len(stage.Order))
	for _, base := range stage.Order {
		resp := &dto.BaseProgressResponse{BaseStage: string(base)}
		if r, ok := byStage[base]; ok {
			resp.StartedAt = r.StartedAt
			resp.CompletedAt = r.CompletedAt
			resp.WhySequenceComplete = r.WhySequenceComplete
			resp.ConfirmationReceived = r.ConfirmationReceived
			resp.ActionAssigned = r.ActionAssigned
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *journeyService) toJourneyResponse(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation) *dto.JourneyResponse {
	resp := &dto.JourneyResponse{
		Id:                   conversation.Id,
		JourneyType:          conversation.JourneyType,
		CurrentBase:          string(conversation.CurrentBase),
		CurrentBaseLabel:     conversation.CurrentBase.Label(),
		CompletionPercentage: conversation.CompletionPercentage,
		TotalMessages:        conversation.TotalMessages,
		IsActive:             conversation.IsActive,
		StartedAt:            conversation.StartedAt,
		CompletedAt:          conversation.CompletedAt,
	}

	assessment, err := uow.PreAssessmentRepository().FindOne(ctx,
		specification.Filter("user_id", conversation.UserId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err == nil && assessment != nil {
		resp.FocusStatement = assessment.FocusStatement
	}
	return resp
}
