package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"homerun-be/internal/constant"
	"homerun-be/internal/dto"
	"homerun-be/internal/entity"
	"homerun-be/internal/repository/contract"
	"homerun-be/internal/repository/specification"
	"homerun-be/internal/repository/unitofwork"
	"homerun-be/pkg/coach/stage"
	"homerun-be/pkg/llm"
)

type fakeConversationRepo struct {
	contract.ConversationRepository
	conversation *entity.Conversation
	updated      bool
	messageDelta int
}

func (f *fakeConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	return f.conversation, nil
}

func (f *fakeConversationRepo) Update(ctx context.Context, conversation *entity.Conversation) error {
	f.conversation = conversation
	f.updated = true
	return nil
}

func (f *fakeConversationRepo) IncrementTotalMessages(ctx context.Context, id uuid.UUID, delta int) error {
	f.messageDelta += delta
	return nil
}

type fakeMessageRepo struct {
	contract.MessageRepository
	messages []*entity.Message
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	return f.messages, nil
}

type fakeProgressRepo struct {
	contract.BaseProgressRepository
	upserts []*entity.BaseProgress
	record  *entity.BaseProgress
	records []*entity.BaseProgress
}

func (f *fakeProgressRepo) Upsert(ctx context.Context, progress *entity.BaseProgress) error {
	f.upserts = append(f.upserts, progress)
	return nil
}

type fakeUserRepo struct {
	contract.UserRepository
	user *entity.User
}

func (f *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return f.user, nil
}

type fakePreAssessmentRepo struct {
	contract.PreAssessmentRepository
	assessment *entity.PreAssessment
	created    *entity.PreAssessment
}

func (f *fakePreAssessmentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PreAssessment, error) {
	return f.assessment, nil
}

type fakeUnitOfWork struct {
	conversations *fakeConversationRepo
	messages      *fakeMessageRepo
	progress      *fakeProgressRepo
	users         *fakeUserRepo
	assessments   *fakePreAssessmentRepo
	committed     bool
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                   { f.committed = true; return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }

func (f *fakeUnitOfWork) UserRepository() contract.UserRepository { return f.users }
func (f *fakeUnitOfWork) ConversationRepository() contract.ConversationRepository {
	return f.conversations
}
func (f *fakeUnitOfWork) MessageRepository() contract.MessageRepository { return f.messages }
func (f *fakeUnitOfWork) BaseProgressRepository() contract.BaseProgressRepository {
	return f.progress
}
func (f *fakeUnitOfWork) PreAssessmentRepository() contract.PreAssessmentRepository {
	return f.assessments
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeGenerator struct {
	reply  string
	tokens int
	err    error
	calls  int
}

func (f *fakeGenerator) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Completion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Completion{Text: f.reply, Tokens: f.tokens}, nil
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, options ...llm.Option) (*llm.Completion, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type fakePublisher struct {
	payloads [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type coachFixture struct {
	service   ICoachService
	uow       *fakeUnitOfWork
	generator *fakeGenerator
	publisher *fakePublisher
	userId    uuid.UUID
}

func newCoachFixture(base stage.Stage, seed []*entity.Message) *coachFixture {
	userId := uuid.New()
	conversation := &entity.Conversation{
		Id:          uuid.New(),
		UserId:      userId,
		JourneyType: constant.JourneyTypePersonal,
		CurrentBase: base,
		IsActive:    true,
		StartedAt:   time.Now(),
	}
	uow := &fakeUnitOfWork{
		conversations: &fakeConversationRepo{conversation: conversation},
		messages:      &fakeMessageRepo{messages: seed},
		progress:      &fakeProgressRepo{},
		users:         &fakeUserRepo{user: &entity.User{Id: userId, FullName: "Alex"}},
		assessments:   &fakePreAssessmentRepo{},
	}
	generator := &fakeGenerator{reply: "What is underneath that feeling?"}
	publisher := &fakePublisher{}
	svc := NewCoachService(&fakeUowFactory{uow: uow}, generator, stage.NewEngine(nil), publisher, nil, noopLogger{})
	return &coachFixture{service: svc, uow: uow, generator: generator, publisher: publisher, userId: userId}
}

func seedMessage(conversationId uuid.UUID, role, content string, base stage.Stage, depth int) *entity.Message {
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

func TestSendMessage_VagueAnswerIsChallenged(t *testing.T) {
	f := newCoachFixture(stage.AtBat, nil)

	resp, err := f.service.SendMessage(context.Background(), f.userId, &dto.SendCoachMessageRequest{
		ConversationId: f.uow.conversations.conversation.Id,
		Content:        "I don't know, maybe I just want to be happy",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.VagueReason)
	assert.False(t, resp.StageComplete)
	assert.Equal(t, stage.MinDepth, resp.WhyLevel)
	assert.Equal(t, 0, f.generator.calls)

	assert.Len(t, f.uow.messages.messages, 2)
	assert.True(t, resp.Reply.IsVague)
	assert.True(t, resp.Reply.Challenged)
	assert.False(t, resp.Sent.IsVague, "the pushback carries the flags, not the user's message")
	assert.False(t, resp.Sent.Challenged)
	assert.Equal(t, 2, f.uow.conversations.messageDelta)
}

func TestSendMessage_AdvancesDepth(t *testing.T) {
	f := newCoachFixture(stage.AtBat, nil)
	conv := f.uow.conversations.conversation
	f.uow.messages.messages = []*entity.Message{
		seedMessage(conv.Id, stage.RoleAssistant, constant.OpeningAtBat, stage.AtBat, 1),
		seedMessage(conv.Id, stage.RoleUser, "I left my job to build something that outlives me", stage.AtBat, 1),
		seedMessage(conv.Id, stage.RoleAssistant, "What would outliving you actually look like?", stage.AtBat, 2),
	}

	resp, err := f.service.SendMessage(context.Background(), f.userId, &dto.SendCoachMessageRequest{
		ConversationId: conv.Id,
		Content:        "A school my daughter walks past and points at",
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, resp.WhyLevel)
	assert.False(t, resp.StageComplete)
	assert.Empty(t, resp.VagueReason)
	assert.Equal(t, 1, f.generator.calls)
	assert.Equal(t, f.generator.reply, resp.Reply.Content)
	assert.True(t, f.uow.committed)
	assert.Empty(t, f.publisher.payloads)
}

func TestSendMessage_DepthClampCompletesStage(t *testing.T) {
	f := newCoachFixture(stage.AtBat, nil)
	conv := f.uow.conversations.conversation
	f.uow.messages.messages = []*entity.Message{
		seedMessage(conv.Id, stage.RoleAssistant, "Go deeper. What is really driving this?", stage.AtBat, 4),
	}
	f.generator.reply = "Your why is proving your own voice matters after years of silence."

	resp, err := f.service.SendMessage(context.Background(), f.userId, &dto.SendCoachMessageRequest{
		ConversationId: conv.Id,
		Content:        "Because nobody listened to me growing up and silence became my normal",
	})

	assert.NoError(t, err)
	assert.Empty(t, resp.VagueReason)
	assert.Equal(t, stage.MaxDepth, resp.WhyLevel)
	assert.True(t, resp.StageComplete)

	assert.Equal(t, f.generator.reply, f.uow.conversations.conversation.RootWhy)
	if assert.Len(t, f.uow.progress.upserts, 1) {
		up := f.uow.progress.upserts[0]
		assert.Equal(t, stage.AtBat, up.BaseStage)
		assert.True(t, up.WhySequenceComplete)
		assert.Nil(t, up.CompletedAt, "the timestamp is stamped on proceed, not on detection")
		assert.False(t, up.ConfirmationReceived)
	}

	if assert.Len(t, f.publisher.payloads, 1) {
		assert.Contains(t, string(f.publisher.payloads[0]), "at_bat")
	}
}

func TestSendMessage_PhraseSignalCompletesEarly(t *testing.T) {
	f := newCoachFixture(stage.AtBat, nil)
	conv := f.uow.conversations.conversation
	f.uow.messages.messages = []*entity.Message{
		seedMessage(conv.Id, stage.RoleAssistant, constant.OpeningAtBat, stage.AtBat, 1),
	}
	f.generator.reply = "You've discovered your WHY. Ready to move forward? First Base? Or would you like to explore this deeper?"

	resp, err := f.service.SendMessage(context.Background(), f.userId, &dto.SendCoachMessageRequest{
		ConversationId: conv.Id,
		Content:        "It all comes back to earning my father's respect",
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.WhyLevel)
	assert.True(t, resp.StageComplete)
	assert.Equal(t, f.generator.reply, f.uow.conversations.conversation.RootWhy)
}

func TestSendMessage_RecordsTokenUsage(t *testing.T) {
	f := newCoachFixture(stage.AtBat, nil)
	conv := f.uow.conversations.conversation
	f.uow.messages.messages = []*entity.Message{
		seedMessage(conv.Id, stage.RoleAssistant, constant.OpeningAtBat, stage.AtBat, 1),
	}
	f.generator.tokens = 245

	_, err := f.service.SendMessage(context.Background(), f.userId, &dto.SendCoachMessageRequest{
		ConversationId: conv.Id,
		Content:        "Because the work stopped meaning anything around my fortieth birthday",
	})

	assert.NoError(t, err)
	if assert.Len(t, f.uow.messages.messages, 3) {
		userMsg := f.uow.messages.messages[1]
		assistantMsg := f.uow.messages.messages[2]
		assert.Equal(t, stage.RoleUser, userMsg.Role)
		assert.Zero(t, userMsg.TokensUsed)
		assert.Equal(t, stage.RoleAssistant, assistantMsg.Role)
		assert.Equal(t, 245, assistantMsg.TokensUsed)
	}
}

func TestSendMessage_GeneratorFailureKeepsDepth(t *testing.T) {
	f := newCoachFixture(stage.AtBat, nil)
	conv := f.uow.conversations.conversation
	f.uow.messages.messages = []*entity.Message{
		seedMessage(conv.Id, stage.RoleAssistant, "What matters most about that?", stage.AtBat, 3),
	}
	f.generator.err = errors.New("upstream timeout")

	resp, err := f.service.SendMessage(context.Background(), f.userId, &dto.SendCoachMessageRequest{
		ConversationId: conv.Id,
		Content:        "The feeling that my work finally counts for something",
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, resp.WhyLevel)
	assert.False(t, resp.StageComplete)
	assert.Equal(t, constant.GeneratorFallbackMessage, resp.Reply.Content)
	assert.Len(t, f.uow.messages.messages, 3)
	assert.Empty(t, f.publisher.payloads)
}

func TestSendMessage_SecondBaseDesireSequencePivots(t *testing.T) {
	f := newCoachFixture(stage.SecondBase, nil)
	conv := f.uow.conversations.conversation
	f.uow.messages.messages = []*entity.Message{
		seedMessage(conv.Id, stage.RoleAssistant, "What would having that actually change?", stage.SecondBase, 4),
	}
	f.generator.reply = "You've discovered your WHAT. Ready to move forward? Third Base? Or would you like to explore this deeper?"

	resp, err := f.service.SendMessage(context.Background(), f.userId, &dto.SendCoachMessageRequest{
		ConversationId: conv.Id,
		Content:        "I want a business that runs without me so I can be present at home",
	})

	assert.NoError(t, err)
	assert.False(t, resp.StageComplete, "desire sequence finishing must not finish the stage")

	assert.Equal(t, f.generator.reply, f.uow.conversations.conversation.RootDesire)
	assert.Empty(t, f.uow.conversations.conversation.RootFear)

	// user + reply + injected pivot
	assert.Len(t, f.uow.messages.messages, 4)
	pivot := f.uow.messages.messages[3]
	assert.Equal(t, constant.SecondBaseTransitionMessage, pivot.Content)
	assert.Equal(t, stage.MinDepth, pivot.WhyLevel)

	if assert.Len(t, f.uow.progress.upserts, 1) {
		assert.False(t, f.uow.progress.upserts[0].WhySequenceComplete, "pivoting to the fear sequence is not sequence completion")
		assert.Nil(t, f.uow.progress.upserts[0].CompletedAt)
	}
	assert.Empty(t, f.publisher.payloads)
}

func TestSendMessage_SecondBaseFearSequenceCompletesStage(t *testing.T) {
	f := newCoachFixture(stage.SecondBase, nil)
	conv := f.uow.conversations.conversation
	conv.RootDesire = "A business that runs without me"
	f.uow.messages.messages = []*entity.Message{
		seedMessage(conv.Id, stage.RoleAssistant, constant.SecondBaseTransitionMessage, stage.SecondBase, 1),
		seedMessage(conv.Id, stage.RoleUser, "I'm terrified of letting go of control", stage.SecondBase, 1),
		seedMessage(conv.Id, stage.RoleAssistant, "What do you think control is protecting you from?", stage.SecondBase, 4),
	}
	f.generator.reply = "You've discovered your WHAT. Ready to move forward? Third Base? Or would you like to explore this deeper?"

	resp, err := f.service.SendMessage(context.Background(), f.userId, &dto.SendCoachMessageRequest{
		ConversationId: conv.Id,
		Content:        "From finding out the business was never actually good without me",
	})

	assert.NoError(t, err)
	assert.True(t, resp.StageComplete)
	assert.Equal(t, f.generator.reply, f.uow.conversations.conversation.RootFear)
	assert.Equal(t, "A business that runs without me", f.uow.conversations.conversation.RootDesire)
	if assert.Len(t, f.uow.progress.upserts, 1) {
		assert.True(t, f.uow.progress.upserts[0].WhySequenceComplete)
	}
	assert.Len(t, f.publisher.payloads, 1)
}

func TestSendMessage_CompletedJourneyRejected(t *testing.T) {
	f := newCoachFixture(stage.Completed, nil)

	_, err := f.service.SendMessage(context.Background(), f.userId, &dto.SendCoachMessageRequest{
		ConversationId: f.uow.conversations.conversation.Id,
		Content:        "Hello?",
	})

	assert.ErrorIs(t, err, ErrJourneyCompleted)
	assert.Empty(t, f.uow.messages.messages)
}

func TestSendMessage_HomePlateCapturesLegacyAndThreat(t *testing.T) {
	f := newCoachFixture(stage.HomePlate, nil)
	conv := f.uow.conversations.conversation
	f.uow.messages.messages = []*entity.Message{
		seedMessage(conv.Id, stage.RoleAssistant, "What happens to all of this if you burn out?", stage.HomePlate, 4),
	}
	f.generator.reply = "You've discovered why it MATTERS. Ready to see your complete journey report?"

	resp, err := f.service.SendMessage(context.Background(), f.userId, &dto.SendCoachMessageRequest{
		ConversationId: conv.Id,
		Content:        "My kids would watch me quit, and that undoes everything I built",
	})

	assert.NoError(t, err)
	assert.True(t, resp.StageComplete)
	assert.Equal(t, f.generator.reply, f.uow.conversations.conversation.RootLegacy)
	assert.Equal(t, f.generator.reply, f.uow.conversations.conversation.RootSustainabilityThreat)
}

func TestGetMessages_SeedsOpeningForEmptyStage(t *testing.T) {
	f := newCoachFixture(stage.AtBat, nil)
	conv := f.uow.conversations.conversation

	resp, err := f.service.GetMessages(context.Background(), f.userId, conv.Id, "")

	assert.NoError(t, err)
	assert.Len(t, resp.Messages, 1)
	assert.Equal(t, stage.RoleAssistant, resp.Messages[0].Role)
	assert.Equal(t, constant.OpeningAtBat, resp.Messages[0].Content)
	assert.Equal(t, 1, resp.Messages[0].WhyLevel)
	assert.Len(t, f.uow.messages.messages, 1, "opening should be persisted")
}

func TestGetMessages_ThirdBaseOpeningRecapsInsights(t *testing.T) {
	f := newCoachFixture(stage.ThirdBase, nil)
	conv := f.uow.conversations.conversation
	conv.RootWhy = strings.Repeat("w", 150)
	conv.RootIdentity = "A builder who refuses to coast"

	resp, err := f.service.GetMessages(context.Background(), f.userId, conv.Id, "")

	assert.NoError(t, err)
	assert.Len(t, resp.Messages, 1)
	opening := resp.Messages[0].Content
	assert.Contains(t, opening, "Your WHY: "+strings.Repeat("w", 100)+"...")
	assert.Contains(t, opening, "Your WHO: A builder who refuses to coast...")
	assert.NotContains(t, opening, "Your WHAT:")
	assert.Contains(t, opening, "biggest obstacle")
}

func TestGetMessages_RejectsUnknownStageFilter(t *testing.T) {
	f := newCoachFixture(stage.AtBat, nil)

	_, err := f.service.GetMessages(context.Background(), f.userId, f.uow.conversations.conversation.Id, "dugout")

	assert.Error(t, err)
}

func TestGetSummary_ReturnsStoredSummary(t *testing.T) {
	f := newCoachFixture(stage.AtBat, nil)
	conv := f.uow.conversations.conversation
	conv.AtBatSummary = "The breakthrough: meaning beats momentum."

	resp, err := f.service.GetSummary(context.Background(), f.userId, conv.Id, "")

	assert.NoError(t, err)
	assert.Equal(t, conv.AtBatSummary, resp.Summary)
	assert.False(t, resp.Regenerated)
	assert.Equal(t, 0, f.generator.calls, "stored summary should not hit the generator")
}

func TestGetSummary_RegeneratesForCompletedStage(t *testing.T) {
	f := newCoachFixture(stage.AtBat, nil)
	conv := f.uow.conversations.conversation
	conv.RootWhy = "I want my days to mean something"
	f.uow.progress.record = &entity.BaseProgress{
		ConversationId:      conv.Id,
		BaseStage:           stage.AtBat,
		WhySequenceComplete: true,
	}
	f.uow.messages.messages = []*entity.Message{
		seedMessage(conv.Id, stage.RoleAssistant, "What drives you?", stage.AtBat, 1),
		seedMessage(conv.Id, stage.RoleUser, "I want my days to mean something", stage.AtBat, 1),
	}
	f.generator.reply = "A fresh breakthrough summary."

	resp, err := f.service.GetSummary(context.Background(), f.userId, conv.Id, "at_bat")

	assert.NoError(t, err)
	assert.True(t, resp.Regenerated)
	assert.Equal(t, "A fresh breakthrough summary.", resp.Summary)
	assert.Equal(t, "A fresh breakthrough summary.", conv.AtBatSummary)
	assert.True(t, f.uow.conversations.updated)
}

func TestGetSummary_EmptyForIncompleteStage(t *testing.T) {
	f := newCoachFixture(stage.AtBat, nil)

	resp, err := f.service.GetSummary(context.Background(), f.userId, f.uow.conversations.conversation.Id, "")

	assert.NoError(t, err)
	assert.Empty(t, resp.Summary)
	assert.Equal(t, 0, f.generator.calls)
}
