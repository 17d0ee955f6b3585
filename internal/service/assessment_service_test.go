package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"homerun-be/internal/constant"
	"homerun-be/internal/dto"
	"homerun-be/internal/entity"
	"homerun-be/internal/repository/memory"
)

func (f *fakePreAssessmentRepo) Create(ctx context.Context, assessment *entity.PreAssessment) error {
	f.created = assessment
	return nil
}

type assessmentFixture struct {
	service   IAssessmentService
	uow       *fakeUnitOfWork
	generator *fakeGenerator
	intakes   *memory.IntakeRepository
}

func newAssessmentFixture() *assessmentFixture {
	uow := &fakeUnitOfWork{
		conversations: &fakeConversationRepo{},
		messages:      &fakeMessageRepo{},
		progress:      &fakeProgressRepo{},
		users:         &fakeUserRepo{},
		assessments:   &fakePreAssessmentRepo{},
	}
	generator := &fakeGenerator{reply: "Reclaim your mornings to rebuild the business you stopped believing in."}
	intakes := memory.NewIntakeRepository()
	return &assessmentFixture{
		service:   NewAssessmentService(&fakeUowFactory{uow: uow}, generator, intakes, noopLogger{}),
		uow:       uow,
		generator: generator,
		intakes:   intakes,
	}
}

func submitRequest(happiness, clarity, readiness int) *dto.SubmitAssessmentRequest {
	return &dto.SubmitAssessmentRequest{
		Email:            "sam@example.com",
		HappinessScore:   happiness,
		ClarityScore:     clarity,
		ReadinessScore:   readiness,
		BiggestChallenge: "I lost the spark for the business I spent ten years building",
		WhyMatters:       "My family's stability depends on it",
		WhatWouldChange:  "I would wake up wanting to work again",
	}
}

func TestSubmit_AnonymousLowScoresGetBusinessPath(t *testing.T) {
	f := newAssessmentFixture()

	resp, err := f.service.Submit(context.Background(), nil, submitRequest(3, 4, 5))

	assert.NoError(t, err)
	assert.Equal(t, constant.JourneyTypeBusiness, resp.RecommendedPath)
	assert.Equal(t, 12, resp.TotalScore)
	assert.NotEmpty(t, resp.ClaimToken)
	assert.Equal(t, f.generator.reply, resp.FocusStatement)

	stored, found := f.intakes.Get(resp.ClaimToken)
	assert.True(t, found)
	assert.Equal(t, "sam@example.com", stored.Email)
	assert.Nil(t, f.uow.assessments.created, "anonymous submission must not hit the database")
}

func TestSubmit_AuthedHighScoresGetPersonalPath(t *testing.T) {
	f := newAssessmentFixture()
	userId := uuid.New()

	resp, err := f.service.Submit(context.Background(), &userId, submitRequest(6, 5, 7))

	assert.NoError(t, err)
	assert.Equal(t, constant.JourneyTypePersonal, resp.RecommendedPath)
	assert.Empty(t, resp.ClaimToken)

	created := f.uow.assessments.created
	assert.NotNil(t, created)
	assert.Equal(t, &userId, created.UserId)
	assert.Equal(t, constant.JourneyTypePersonal, created.RecommendedPath)
}

func TestSubmit_FocusStatementFallsBackOnGeneratorError(t *testing.T) {
	f := newAssessmentFixture()
	f.generator.err = errors.New("upstream timeout")

	long := strings.Repeat("I keep going in circles about what I actually want from all of this work ", 5)
	req := submitRequest(3, 3, 3)
	req.BiggestChallenge = long

	resp, err := f.service.Submit(context.Background(), nil, req)

	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(resp.FocusStatement, "..."))
	assert.LessOrEqual(t, len(resp.FocusStatement), 123)
	assert.Empty(t, resp.Snapshot)
}

func TestClaim_MovesIntakeToDatabaseOnce(t *testing.T) {
	f := newAssessmentFixture()
	userId := uuid.New()

	submitted, err := f.service.Submit(context.Background(), nil, submitRequest(2, 3, 4))
	assert.NoError(t, err)

	claimed, err := f.service.Claim(context.Background(), userId, &dto.ClaimAssessmentRequest{
		ClaimToken: submitted.ClaimToken,
	})
	assert.NoError(t, err)
	assert.Equal(t, submitted.FocusStatement, claimed.FocusStatement)
	assert.NotNil(t, f.uow.assessments.created)
	assert.Equal(t, &userId, f.uow.assessments.created.UserId)

	_, err = f.service.Claim(context.Background(), userId, &dto.ClaimAssessmentRequest{
		ClaimToken: submitted.ClaimToken,
	})
	assert.ErrorIs(t, err, ErrIntakeNotFound)
}

func TestGetLatest_NoneFound(t *testing.T) {
	f := newAssessmentFixture()

	_, err := f.service.GetLatest(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrNoAssessment)
}
