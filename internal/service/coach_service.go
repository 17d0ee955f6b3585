package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"homerun-be/internal/constant"
	"homerun-be/internal/dto"
	"homerun-be/internal/entity"
	"homerun-be/internal/pkg/logger"
	"homerun-be/internal/repository/specification"
	"homerun-be/internal/repository/unitofwork"
	"homerun-be/pkg/coach/prompt"
	"homerun-be/pkg/coach/stage"
	"homerun-be/pkg/coach/vague"
	"homerun-be/pkg/events"
	"homerun-be/pkg/llm"
	pktNats "homerun-be/pkg/nats"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrJourneyCompleted     = errors.New("journey already completed")
	ErrConversationBusy     = errors.New("a message is already being processed for this conversation")
)

type ICoachService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendCoachMessageRequest) (*dto.SendCoachMessageResponse, error)
	GetMessages(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID, baseStage string) (*dto.GetMessagesResponse, error)
	GetSummary(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID, baseStage string) (*dto.StageSummaryResponse, error)
}

type coachService struct {
	uowFactory       unitofwork.RepositoryFactory
	generator        llm.LLMProvider
	engine           *stage.Engine
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger

	// One in-flight exchange per conversation. Concurrent sends would race
	// on depth, so the loser is rejected instead of queued.
	inflight sync.Map
}

func NewCoachService(
	uowFactory unitofwork.RepositoryFactory,
	generator llm.LLMProvider,
	engine *stage.Engine,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	logger logger.ILogger,
) ICoachService {
	return &coachService{
		uowFactory:       uowFactory,
		generator:        generator,
		engine:           engine,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           logger,
	}
}

func (c *coachService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendCoachMessageRequest) (*dto.SendCoachMessageResponse, error) {
	if _, busy := c.inflight.LoadOrStore(req.ConversationId, struct{}{}); busy {
		return nil, ErrConversationBusy
	}
	defer c.inflight.Delete(req.ConversationId)

	uow := c.uowFactory.NewUnitOfWork(ctx)
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

	currentBase := conversation.CurrentBase
	if currentBase.Terminal() {
		return nil, ErrJourneyCompleted
	}

	turns, err := c.loadStageTurns(ctx, uow, conversation.Id, currentBase)
	if err != nil {
		return nil, err
	}
	currentDepth := stage.CurrentDepth(turns)

	if verdict := vague.Classify(req.Content); verdict.IsVague {
		return c.challengeVagueAnswer(ctx, uow, conversation, currentDepth, req.Content, verdict)
	}

	userMsg := c.newMessage(conversation.Id, stage.RoleUser, req.Content, currentBase, currentDepth)

	history := c.buildHistory(ctx, uow, conversation, currentDepth, turns, req.Content)
	completion, genErr := c.generator.Chat(ctx, history, llm.WithTemperature(0.7))
	if genErr != nil {
		c.logger.Error("coach_service", "generator call failed", map[string]interface{}{
			"conversation_id": conversation.Id,
			"base_stage":      currentBase,
			"error":           genErr.Error(),
		})
		return c.persistFallback(ctx, uow, conversation, userMsg, currentDepth)
	}

	reply := completion.Text
	outcome := c.engine.Evaluate(currentBase, currentDepth, reply)
	assistantMsg := c.newMessage(conversation.Id, stage.RoleAssistant, reply, currentBase, outcome.Depth)
	assistantMsg.TokensUsed = completion.Tokens

	stageComplete := outcome.Complete
	var transitionMsg *entity.Message
	if outcome.Complete && currentBase == stage.SecondBase && stage.CurrentSequence(turns) == stage.SequenceDesire {
		// The desire sequence finishing is not the stage finishing: pivot
		// to the fear sequence and reset the depth counter.
		stageComplete = false
		transitionMsg = c.newMessage(conversation.Id, stage.RoleAssistant, constant.SecondBaseTransitionMessage, currentBase, stage.MinDepth)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, userMsg); err != nil {
		return nil, err
	}
	if err := uow.MessageRepository().Create(ctx, assistantMsg); err != nil {
		return nil, err
	}
	written := 2

	if transitionMsg != nil {
		if err := uow.MessageRepository().Create(ctx, transitionMsg); err != nil {
			return nil, err
		}
		written++
		captureInsight(conversation, currentBase, stage.SequenceDesire, reply)
		if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
			return nil, err
		}
		if err := c.upsertProgress(ctx, uow, conversation.Id, currentBase, false); err != nil {
			return nil, err
		}
	}

	if stageComplete {
		captureInsight(conversation, currentBase, stage.CurrentSequence(turns), reply)
		if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
			return nil, err
		}
		if err := c.upsertProgress(ctx, uow, conversation.Id, currentBase, true); err != nil {
			return nil, err
		}
	}

	if err := uow.ConversationRepository().IncrementTotalMessages(ctx, conversation.Id, written); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if stageComplete {
		c.enqueueSummaryJob(ctx, conversation.Id, currentBase, reply)
		c.publishEvent(ctx, "STAGE_COMPLETED", map[string]interface{}{
			"conversation_id": conversation.Id,
			"user_id":         userId,
			"base_stage":      string(currentBase),
			"why_level":       outcome.Depth,
		})
	}

	return &dto.SendCoachMessageResponse{
		ConversationId: conversation.Id,
		Sent:           toCoachMessage(userMsg),
		Reply:          toCoachMessage(assistantMsg),
		WhyLevel:       outcome.Depth,
		BaseStage:      string(currentBase),
		StageComplete:  stageComplete,
	}, nil
}

func (c *coachService) GetMessages(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID, baseStage string) (*dto.GetMessagesResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
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

	target := conversation.CurrentBase
	if baseStage != "" {
		target, err = stage.Parse(baseStage)
		if err != nil {
			return nil, err
		}
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.ByBaseStage{BaseStage: string(target)},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	// A stage the user just arrived at has no turns yet: seed it with the
	// coach's opening so the client always has something to render.
	if len(messages) == 0 && target == conversation.CurrentBase && !target.Terminal() {
		opening := c.newMessage(conversationId, stage.RoleAssistant, openingFor(conversation, target), target, stage.MinDepth)
		if err := uow.MessageRepository().Create(ctx, opening); err != nil {
			return nil, err
		}
		if err := uow.ConversationRepository().IncrementTotalMessages(ctx, conversationId, 1); err != nil {
			return nil, err
		}
		messages = append(messages, opening)
	}

	out := make([]*dto.CoachMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, toCoachMessage(m))
	}
	return &dto.GetMessagesResponse{
		ConversationId: conversationId,
		BaseStage:      string(target),
		Messages:       out,
	}, nil
}

// GetSummary returns the breakthrough summary for a stage. Summaries are
// written by the background worker; if the worker's attempt failed the
// summary is regenerated here, on demand, once the stage's why sequence
// has finished.
func (c *coachService) GetSummary(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID, baseStage string) (*dto.StageSummaryResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
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

	target := conversation.CurrentBase
	if baseStage != "" {
		target, err = stage.Parse(baseStage)
		if err != nil {
			return nil, err
		}
	}

	res := &dto.StageSummaryResponse{
		ConversationId: conversationId,
		BaseStage:      string(target),
		Summary:        summaryOf(conversation, target),
	}
	if res.Summary != "" {
		return res, nil
	}

	progress, err := uow.BaseProgressRepository().FindOne(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.ByBaseStage{BaseStage: string(target)},
	)
	if err != nil {
		return nil, err
	}
	if progress == nil || !progress.WhySequenceComplete {
		// Nothing to summarize yet
		return res, nil
	}

	turns, err := c.loadStageTurns(ctx, uow, conversationId, target)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(turns)+1)
	history = append(history, llm.Message{Role: stage.RoleSystem, Content: prompt.SummarySystem(target, rootInsightOf(conversation, target))})
	history = append(history, prompt.SummaryMessages(turns)...)

	completion, err := c.generator.Chat(ctx, history)
	if err != nil {
		c.logger.Warn("coach_service", "summary retry failed", map[string]interface{}{
			"conversation_id": conversationId,
			"base_stage":      string(target),
			"error":           err.Error(),
		})
		return res, nil
	}

	setSummary(conversation, target, completion.Text)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	res.Summary = completion.Text
	res.Regenerated = true
	return res, nil
}

// challengeVagueAnswer short-circuits the exchange: the canned pushback is
// persisted instead of calling the generator, and depth stays where it was.
// The vague/challenged flags go on the coach's pushback message.
func (c *coachService) challengeVagueAnswer(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation, depth int, content string, verdict vague.Result) (*dto.SendCoachMessageResponse, error) {
	userMsg := c.newMessage(conversation.Id, stage.RoleUser, content, conversation.CurrentBase, depth)

	challengeMsg := c.newMessage(conversation.Id, stage.RoleAssistant, verdict.Challenge, conversation.CurrentBase, depth)
	challengeMsg.IsVague = true
	challengeMsg.Challenged = true

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, userMsg); err != nil {
		return nil, err
	}
	if err := uow.MessageRepository().Create(ctx, challengeMsg); err != nil {
		return nil, err
	}
	if err := uow.ConversationRepository().IncrementTotalMessages(ctx, conversation.Id, 2); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.SendCoachMessageResponse{
		ConversationId: conversation.Id,
		Sent:           toCoachMessage(userMsg),
		Reply:          toCoachMessage(challengeMsg),
		WhyLevel:       depth,
		BaseStage:      string(conversation.CurrentBase),
		VagueReason:    verdict.Reason,
	}, nil
}

// persistFallback keeps the exchange recorded when the generator is down.
// Depth does not advance and completion is never evaluated.
func (c *coachService) persistFallback(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation, userMsg *entity.Message, depth int) (*dto.SendCoachMessageResponse, error) {
	fallbackMsg := c.newMessage(conversation.Id, stage.RoleAssistant, constant.GeneratorFallbackMessage, conversation.CurrentBase, depth)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, userMsg); err != nil {
		return nil, err
	}
	if err := uow.MessageRepository().Create(ctx, fallbackMsg); err != nil {
		return nil, err
	}
	if err := uow.ConversationRepository().IncrementTotalMessages(ctx, conversation.Id, 2); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.SendCoachMessageResponse{
		ConversationId: conversation.Id,
		Sent:           toCoachMessage(userMsg),
		Reply:          toCoachMessage(fallbackMsg),
		WhyLevel:       depth,
		BaseStage:      string(conversation.CurrentBase),
	}, nil
}

func (c *coachService) loadStageTurns(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID, base stage.Stage) ([]stage.Turn, error) {
	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.ByBaseStage{BaseStage: string(base)},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	turns := make([]stage.Turn, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, stage.Turn{Role: m.Role, Content: m.Content, Depth: m.WhyLevel})
	}
	return turns, nil
}

func (c *coachService) buildHistory(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation, depth int, turns []stage.Turn, content string) []llm.Message {
	coachCtx := prompt.CoachContext{
		Stage: conversation.CurrentBase,
		Depth: depth,
		Insights: prompt.Insights{
			RootWhy:                  conversation.RootWhy,
			RootIdentity:             conversation.RootIdentity,
			RootDesire:               conversation.RootDesire,
			RootFear:                 conversation.RootFear,
			RootObstacle:             conversation.RootObstacle,
			RootLegacy:               conversation.RootLegacy,
			RootSustainabilityThreat: conversation.RootSustainabilityThreat,
		},
	}

	if user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: conversation.UserId}); err == nil && user != nil {
		coachCtx.UserName = user.FullName
	}

	// The pre-assessment grounds the WHY discovery; later stages lean on
	// the captured insights instead.
	if conversation.CurrentBase == stage.AtBat {
		assessment, err := uow.PreAssessmentRepository().FindOne(ctx,
			specification.Filter("user_id", conversation.UserId),
			specification.OrderBy{Field: "created_at", Desc: true},
		)
		if err == nil && assessment != nil {
			coachCtx.Intake = &prompt.Intake{
				BiggestChallenge: assessment.BiggestChallenge,
				WhyMatters:       assessment.WhyMatters,
				WhatWouldChange:  assessment.WhatWouldChange,
			}
		}
	}

	history := make([]llm.Message, 0, len(turns)+2)
	history = append(history, llm.Message{Role: stage.RoleSystem, Content: prompt.CoachSystem(coachCtx)})
	history = append(history, prompt.Window(turns, prompt.ContextWindowSize)...)
	history = append(history, llm.Message{Role: stage.RoleUser, Content: content})
	return history
}

// upsertProgress records that the stage's why sequence finished. The
// completion timestamp is not stamped here: that happens when the user
// explicitly proceeds to the next base.
func (c *coachService) upsertProgress(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID, base stage.Stage, sequenceComplete bool) error {
	progress := &entity.BaseProgress{
		Id:                  uuid.New(),
		ConversationId:      conversationId,
		BaseStage:           base,
		StartedAt:           time.Now(),
		WhySequenceComplete: sequenceComplete,
	}
	return uow.BaseProgressRepository().Upsert(ctx, progress)
}

func (c *coachService) enqueueSummaryJob(ctx context.Context, conversationId uuid.UUID, base stage.Stage, rootInsight string) {
	payload := dto.PublishSummaryJobMessage{
		ConversationId: conversationId,
		BaseStage:      string(base),
		RootInsight:    rootInsight,
	}
	msgJson, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("[WARN] Failed to marshal summary job: %v\n", err)
		return
	}
	if err := c.publisherService.Publish(ctx, msgJson); err != nil {
		fmt.Printf("[WARN] Failed to enqueue summary job: %v\n", err)
	}
}

func (c *coachService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if c.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	// We log error but don't fail the request as notification is auxiliary
	if err := c.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}

func (c *coachService) newMessage(conversationId uuid.UUID, role, content string, base stage.Stage, depth int) *entity.Message {
	return &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversationId,
		Role:           role,
		Content:        content,
		BaseStage:      base,
		WhyLevel:       depth,
		CreatedAt:      time.Now(),
	}
}

// captureInsight writes the generator's closing summary into the matching
// root field. First write wins: a stage replayed after completion never
// overwrites the original discovery.
func captureInsight(conversation *entity.Conversation, base stage.Stage, seq stage.Sequence, insight string) {
	switch base {
	case stage.AtBat:
		if conversation.RootWhy == "" {
			conversation.RootWhy = insight
		}
	case stage.FirstBase:
		if conversation.RootIdentity == "" {
			conversation.RootIdentity = insight
		}
	case stage.SecondBase:
		if seq == stage.SequenceDesire {
			if conversation.RootDesire == "" {
				conversation.RootDesire = insight
			}
		} else if conversation.RootFear == "" {
			conversation.RootFear = insight
		}
	case stage.ThirdBase:
		if conversation.RootObstacle == "" {
			conversation.RootObstacle = insight
		}
	case stage.HomePlate:
		if conversation.RootLegacy == "" {
			conversation.RootLegacy = insight
		}
		if conversation.RootSustainabilityThreat == "" {
			conversation.RootSustainabilityThreat = insight
		}
	}
}

func summaryOf(conversation *entity.Conversation, base stage.Stage) string {
	switch base {
	case stage.AtBat:
		return conversation.AtBatSummary
	case stage.FirstBase:
		return conversation.FirstBaseSummary
	case stage.SecondBase:
		return conversation.SecondBaseSummary
	case stage.ThirdBase:
		return conversation.ThirdBaseSummary
	case stage.HomePlate:
		return conversation.HomePlateSummary
	}
	return ""
}

// rootInsightOf mirrors captureInsight: it reads back the insight that
// closed the stage, which for SecondBase is the fear half.
func rootInsightOf(conversation *entity.Conversation, base stage.Stage) string {
	switch base {
	case stage.AtBat:
		return conversation.RootWhy
	case stage.FirstBase:
		return conversation.RootIdentity
	case stage.SecondBase:
		return conversation.RootFear
	case stage.ThirdBase:
		return conversation.RootObstacle
	case stage.HomePlate:
		return conversation.RootLegacy
	}
	return ""
}

// openingFor picks the stage opening. ThirdBase gets a recap of the WHY,
// WHO and WHAT insights spliced in, each clipped to 100 characters.
func openingFor(conversation *entity.Conversation, base stage.Stage) string {
	switch base {
	case stage.AtBat:
		return constant.OpeningAtBat
	case stage.FirstBase:
		return constant.OpeningFirstBase
	case stage.SecondBase:
		return constant.OpeningSecondBase
	case stage.ThirdBase:
		var recap string
		for _, item := range []struct {
			label string
			value string
		}{
			{"Your WHY", conversation.RootWhy},
			{"Your WHO", conversation.RootIdentity},
			{"Your WHAT", conversation.RootDesire},
		} {
			if item.value == "" {
				continue
			}
			recap += fmt.Sprintf("%s: %s...\n\n", item.label, clip(item.value, 100))
		}
		return fmt.Sprintf(constant.OpeningThirdBase, recap)
	case stage.HomePlate:
		return constant.OpeningHomePlate
	}
	return ""
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func toCoachMessage(m *entity.Message) *dto.CoachMessage {
	return &dto.CoachMessage{
		Id:         m.Id,
		Role:       m.Role,
		Content:    m.Content,
		BaseStage:  string(m.BaseStage),
		WhyLevel:   m.WhyLevel,
		IsVague:    m.IsVague,
		Challenged: m.Challenged,
		CreatedAt:  m.CreatedAt,
	}
}
