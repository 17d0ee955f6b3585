package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"homerun-be/internal/constant"
	"homerun-be/internal/dto"
	"homerun-be/internal/entity"
	"homerun-be/internal/repository/specification"
	"homerun-be/pkg/coach/stage"
)

func (f *fakeConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	f.conversation = conversation
	return nil
}

func (f *fakeProgressRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BaseProgress, error) {
	return f.record, nil
}

func (f *fakeProgressRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BaseProgress, error) {
	return f.records, nil
}

type journeyFixture struct {
	service IJourneyService
	uow     *fakeUnitOfWork
	userId  uuid.UUID
}

func newJourneyFixture(conversation *entity.Conversation) *journeyFixture {
	userId := uuid.New()
	if conversation != nil {
		conversation.UserId = userId
	}
	uow := &fakeUnitOfWork{
		conversations: &fakeConversationRepo{conversation: conversation},
		messages:      &fakeMessageRepo{},
		progress:      &fakeProgressRepo{},
		users:         &fakeUserRepo{},
		assessments:   &fakePreAssessmentRepo{},
	}
	return &journeyFixture{
		service: NewJourneyService(&fakeUowFactory{uow: uow}, nil),
		uow:     uow,
		userId:  userId,
	}
}

func activeConversation(base stage.Stage) *entity.Conversation {
	return &entity.Conversation{
		Id:          uuid.New(),
		JourneyType: constant.JourneyTypeBusiness,
		CurrentBase: base,
		IsActive:    true,
		StartedAt:   time.Now(),
	}
}

func TestStartJourney_CreatesAtBatConversation(t *testing.T) {
	f := newJourneyFixture(nil)
	f.uow.assessments.assessment = &entity.PreAssessment{
		Id:             uuid.New(),
		FocusStatement: "Build a business that funds your freedom",
	}

	resp, err := f.service.StartJourney(context.Background(), f.userId, &dto.StartJourneyRequest{
		JourneyType: constant.JourneyTypePersonal,
	})

	assert.NoError(t, err)
	assert.Equal(t, string(stage.AtBat), resp.CurrentBase)
	assert.Equal(t, "At Bat", resp.CurrentBaseLabel)
	assert.Equal(t, constant.JourneyTypePersonal, resp.JourneyType)
	assert.True(t, resp.IsActive)
	assert.Equal(t, 0, resp.CompletionPercentage)
	assert.Equal(t, "Build a business that funds your freedom", resp.FocusStatement)

	created := f.uow.conversations.conversation
	assert.NotNil(t, created)
	assert.Equal(t, f.userId, created.UserId)
}

func TestStartJourney_RejectsSecondActiveJourney(t *testing.T) {
	f := newJourneyFixture(activeConversation(stage.SecondBase))

	_, err := f.service.StartJourney(context.Background(), f.userId, &dto.StartJourneyRequest{
		JourneyType: constant.JourneyTypeBusiness,
	})

	assert.ErrorIs(t, err, ErrActiveJourneyExists)
}

func TestGetActiveJourney_NoneFound(t *testing.T) {
	f := newJourneyFixture(nil)

	_, err := f.service.GetActiveJourney(context.Background(), f.userId)

	assert.ErrorIs(t, err, ErrNoActiveJourney)
}

func TestProceed_RequiresCompletedStage(t *testing.T) {
	f := newJourneyFixture(activeConversation(stage.AtBat))

	_, err := f.service.Proceed(context.Background(), f.userId, &dto.ProceedRequest{
		ConversationId: f.uow.conversations.conversation.Id,
	})

	assert.ErrorIs(t, err, ErrStageNotCompleted)
}

func TestProceed_RequiresFinishedWhySequence(t *testing.T) {
	f := newJourneyFixture(activeConversation(stage.AtBat))
	f.uow.progress.record = &entity.BaseProgress{BaseStage: stage.AtBat, StartedAt: time.Now()}

	_, err := f.service.Proceed(context.Background(), f.userId, &dto.ProceedRequest{
		ConversationId: f.uow.conversations.conversation.Id,
	})

	assert.ErrorIs(t, err, ErrStageNotCompleted)
	assert.Empty(t, f.uow.progress.upserts)
}

func TestProceed_AdvancesToNextBase(t *testing.T) {
	f := newJourneyFixture(activeConversation(stage.AtBat))
	f.uow.progress.record = &entity.BaseProgress{BaseStage: stage.AtBat, WhySequenceComplete: true}

	resp, err := f.service.Proceed(context.Background(), f.userId, &dto.ProceedRequest{
		ConversationId: f.uow.conversations.conversation.Id,
	})

	assert.NoError(t, err)
	assert.Equal(t, string(stage.AtBat), resp.PreviousBase)
	assert.Equal(t, string(stage.FirstBase), resp.CurrentBase)
	assert.Equal(t, 20, resp.CompletionPercentage)
	assert.False(t, resp.JourneyCompleted)
	assert.Nil(t, f.uow.conversations.conversation.CompletedAt)
}

func TestProceed_StampsCompletionOnMove(t *testing.T) {
	f := newJourneyFixture(activeConversation(stage.AtBat))
	f.uow.progress.record = &entity.BaseProgress{BaseStage: stage.AtBat, WhySequenceComplete: true}

	_, err := f.service.Proceed(context.Background(), f.userId, &dto.ProceedRequest{
		ConversationId: f.uow.conversations.conversation.Id,
	})

	assert.NoError(t, err)
	if assert.Len(t, f.uow.progress.upserts, 1) {
		stamped := f.uow.progress.upserts[0]
		assert.Equal(t, stage.AtBat, stamped.BaseStage)
		assert.NotNil(t, stamped.CompletedAt)
		assert.True(t, stamped.ConfirmationReceived)
	}
}

func TestProceed_DoesNotRestampCompletion(t *testing.T) {
	f := newJourneyFixture(activeConversation(stage.AtBat))
	earlier := time.Now().Add(-time.Hour)
	f.uow.progress.record = &entity.BaseProgress{
		BaseStage:            stage.AtBat,
		WhySequenceComplete:  true,
		ConfirmationReceived: true,
		CompletedAt:          &earlier,
	}

	_, err := f.service.Proceed(context.Background(), f.userId, &dto.ProceedRequest{
		ConversationId: f.uow.conversations.conversation.Id,
	})

	assert.NoError(t, err)
	assert.Empty(t, f.uow.progress.upserts, "an already stamped stage keeps its original timestamp")
}

func TestProceed_HomePlateCompletesJourney(t *testing.T) {
	f := newJourneyFixture(activeConversation(stage.HomePlate))
	f.uow.progress.record = &entity.BaseProgress{BaseStage: stage.HomePlate, WhySequenceComplete: true}

	resp, err := f.service.Proceed(context.Background(), f.userId, &dto.ProceedRequest{
		ConversationId: f.uow.conversations.conversation.Id,
	})

	assert.NoError(t, err)
	assert.True(t, resp.JourneyCompleted)
	assert.Equal(t, string(stage.Completed), resp.CurrentBase)
	assert.Equal(t, 100, resp.CompletionPercentage)
	assert.NotNil(t, f.uow.conversations.conversation.CompletedAt)
}

func TestGetProgress_ReportsAllBasesInOrder(t *testing.T) {
	f := newJourneyFixture(activeConversation(stage.SecondBase))
	now := time.Now()
	f.uow.progress.records = []*entity.BaseProgress{
		{BaseStage: stage.SecondBase, StartedAt: now, WhySequenceComplete: true},
		{BaseStage: stage.AtBat, StartedAt: now, CompletedAt: &now},
	}

	out, err := f.service.GetProgress(context.Background(), f.userId, f.uow.conversations.conversation.Id)

	assert.NoError(t, err)
	assert.Len(t, out, 5)
	assert.Equal(t, string(stage.AtBat), out[0].BaseStage)
	assert.NotNil(t, out[0].CompletedAt)
	assert.Equal(t, string(stage.SecondBase), out[2].BaseStage)
	assert.True(t, out[2].WhySequenceComplete)
	assert.Nil(t, out[2].CompletedAt)
	assert.Equal(t, string(stage.HomePlate), out[4].BaseStage)
	assert.True(t, out[4].StartedAt.IsZero())
}
