package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"homerun-be/internal/entity"
	"homerun-be/pkg/coach/stage"
)

func newReportFixture(conversation *entity.Conversation) (IReportService, *fakeUnitOfWork, *fakeGenerator) {
	uow := &fakeUnitOfWork{
		conversations: &fakeConversationRepo{conversation: conversation},
		messages:      &fakeMessageRepo{},
		progress:      &fakeProgressRepo{},
		users:         &fakeUserRepo{},
		assessments:   &fakePreAssessmentRepo{},
	}
	generator := &fakeGenerator{}
	return NewReportService(&fakeUowFactory{uow: uow}, generator, noopLogger{}), uow, generator
}

func completedConversation() *entity.Conversation {
	now := time.Now()
	return &entity.Conversation{
		Id:                uuid.New(),
		UserId:            uuid.New(),
		JourneyType:       "personal",
		CurrentBase:       stage.Completed,
		RootWhy:           "Proving my voice matters",
		RootIdentity:      "A builder",
		RootDesire:        "A business that runs without me",
		RootFear:          "Being found replaceable",
		RootObstacle:      "Refusing to delegate",
		RootLegacy:        "Kids who saw it done",
		AtBatSummary:      "You traced the drive back to being unheard.",
		HomePlateSummary:  "You connected the work to your children.",
		TotalMessages:     42,
		StartedAt:         now.Add(-72 * time.Hour),
		CompletedAt:       &now,
		IsActive:          true,
	}
}

func TestGetReport_CompletedJourneyIncludesConclusion(t *testing.T) {
	conv := completedConversation()
	svc, uow, generator := newReportFixture(conv)
	uow.assessments.assessment = &entity.PreAssessment{FocusStatement: "Stop running on fumes"}
	generator.reply = "You came in exhausted.\n---SECTION---\nYour WHY fuels your WHO.\n---SECTION---\n1. Delegate one task this week\n---SECTION---\nCarry this forward."

	resp, err := svc.GetReport(context.Background(), conv.UserId, conv.Id)

	assert.NoError(t, err)
	assert.Equal(t, "Stop running on fumes", resp.FocusStatement)
	assert.Equal(t, "Proving my voice matters", resp.Insights.RootWhy)
	assert.Equal(t, "You traced the drive back to being unheard.", resp.Summaries.AtBat)
	assert.NotNil(t, resp.Conclusion)
	assert.Equal(t, "You came in exhausted.", resp.Conclusion.Restatement)
	assert.Equal(t, "Your WHY fuels your WHO.", resp.Conclusion.Synthesis)
	assert.Equal(t, "1. Delegate one task this week", resp.Conclusion.Plan)
	assert.Equal(t, "Carry this forward.", resp.Conclusion.OverallSummary)
}

func TestGetReport_InProgressJourneySkipsConclusion(t *testing.T) {
	conv := completedConversation()
	conv.CurrentBase = stage.SecondBase
	conv.CompletedAt = nil
	svc, _, generator := newReportFixture(conv)

	resp, err := svc.GetReport(context.Background(), conv.UserId, conv.Id)

	assert.NoError(t, err)
	assert.Nil(t, resp.Conclusion)
	assert.Equal(t, 0, generator.calls)
}

func TestGetReport_ConclusionFailureDegrades(t *testing.T) {
	conv := completedConversation()
	svc, _, generator := newReportFixture(conv)
	generator.err = errors.New("upstream timeout")

	resp, err := svc.GetReport(context.Background(), conv.UserId, conv.Id)

	assert.NoError(t, err)
	assert.Nil(t, resp.Conclusion)
	assert.Equal(t, 42, resp.TotalMessages)
}
