package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"homerun-be/internal/constant"
	"homerun-be/internal/dto"
	"homerun-be/internal/entity"
	"homerun-be/internal/pkg/logger"
	"homerun-be/internal/repository/memory"
	"homerun-be/internal/repository/specification"
	"homerun-be/internal/repository/unitofwork"
	"homerun-be/pkg/coach/prompt"
	"homerun-be/pkg/llm"
	"homerun-be/pkg/store"
)

var (
	ErrIntakeNotFound = errors.New("intake not found or expired")
	ErrNoAssessment   = errors.New("no assessment found")
)

// Combined scores below this threshold steer the visitor to the business
// path; at or above it the personal path fits better.
const recommendThreshold = 15

type IAssessmentService interface {
	// Submit stores a pre-assessment. With a user it goes straight to the
	// database; anonymous submissions are parked in memory under a claim
	// token until the visitor registers.
	Submit(ctx context.Context, userId *uuid.UUID, req *dto.SubmitAssessmentRequest) (*dto.AssessmentResponse, error)
	Claim(ctx context.Context, userId uuid.UUID, req *dto.ClaimAssessmentRequest) (*dto.AssessmentResponse, error)
	GetLatest(ctx context.Context, userId uuid.UUID) (*dto.AssessmentResponse, error)
}

type assessmentService struct {
	uowFactory unitofwork.RepositoryFactory
	generator  llm.LLMProvider
	intakeRepo *memory.IntakeRepository
	logger     logger.ILogger
}

func NewAssessmentService(
	uowFactory unitofwork.RepositoryFactory,
	generator llm.LLMProvider,
	intakeRepo *memory.IntakeRepository,
	logger logger.ILogger,
) IAssessmentService {
	return &assessmentService{
		uowFactory: uowFactory,
		generator:  generator,
		intakeRepo: intakeRepo,
		logger:     logger,
	}
}

func (s *assessmentService) Submit(ctx context.Context, userId *uuid.UUID, req *dto.SubmitAssessmentRequest) (*dto.AssessmentResponse, error) {
	total := req.HappinessScore + req.ClarityScore + req.ReadinessScore
	recommendedPath := constant.JourneyTypePersonal
	if total < recommendThreshold {
		recommendedPath = constant.JourneyTypeBusiness
	}

	focus := s.generateFocusStatement(ctx, req.BiggestChallenge)
	snapshot := s.generateSnapshot(ctx, req, recommendedPath)

	if userId == nil {
		intake := &store.Intake{
			ClaimToken:       uuid.NewString(),
			Email:            req.Email,
			HappinessScore:   req.HappinessScore,
			ClarityScore:     req.ClarityScore,
			ReadinessScore:   req.ReadinessScore,
			BiggestChallenge: req.BiggestChallenge,
			WhyMatters:       req.WhyMatters,
			WhatWouldChange:  req.WhatWouldChange,
			FocusStatement:   focus,
			Snapshot:         snapshot,
			RecommendedPath:  recommendedPath,
		}
		s.intakeRepo.Save(intake)
		return intakeToResponse(intake), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	assessment := &entity.PreAssessment{
		Id:               uuid.New(),
		UserId:           userId,
		Email:            req.Email,
		HappinessScore:   req.HappinessScore,
		ClarityScore:     req.ClarityScore,
		ReadinessScore:   req.ReadinessScore,
		BiggestChallenge: req.BiggestChallenge,
		WhyMatters:       req.WhyMatters,
		WhatWouldChange:  req.WhatWouldChange,
		FocusStatement:   focus,
		Snapshot:         snapshot,
		RecommendedPath:  recommendedPath,
		CreatedAt:        time.Now(),
	}
	if err := uow.PreAssessmentRepository().Create(ctx, assessment); err != nil {
		return nil, err
	}
	return assessmentToResponse(assessment), nil
}

// Claim moves an anonymous intake into the database once the visitor has an
// account. The in-memory copy is dropped so a token cannot be claimed twice.
func (s *assessmentService) Claim(ctx context.Context, userId uuid.UUID, req *dto.ClaimAssessmentRequest) (*dto.AssessmentResponse, error) {
	intake, found := s.intakeRepo.Get(req.ClaimToken)
	if !found {
		return nil, ErrIntakeNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	assessment := &entity.PreAssessment{
		Id:               uuid.New(),
		UserId:           &userId,
		Email:            intake.Email,
		HappinessScore:   intake.HappinessScore,
		ClarityScore:     intake.ClarityScore,
		ReadinessScore:   intake.ReadinessScore,
		BiggestChallenge: intake.BiggestChallenge,
		WhyMatters:       intake.WhyMatters,
		WhatWouldChange:  intake.WhatWouldChange,
		FocusStatement:   intake.FocusStatement,
		Snapshot:         intake.Snapshot,
		RecommendedPath:  intake.RecommendedPath,
		CreatedAt:        time.Now(),
	}
	if err := uow.PreAssessmentRepository().Create(ctx, assessment); err != nil {
		return nil, err
	}
	s.intakeRepo.Delete(req.ClaimToken)
	return assessmentToResponse(assessment), nil
}

func (s *assessmentService) GetLatest(ctx context.Context, userId uuid.UUID) (*dto.AssessmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	assessment, err := uow.PreAssessmentRepository().FindOne(ctx,
		specification.Filter("user_id", userId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, ErrNoAssessment
	}
	return assessmentToResponse(assessment), nil
}

// generateFocusStatement condenses the raw challenge text. A generator
// failure falls back to clipping the raw text rather than failing the submit.
func (s *assessmentService) generateFocusStatement(ctx context.Context, rawChallenge string) string {
	history := []llm.Message{
		{Role: "system", Content: prompt.FocusStatementSystem},
		{Role: "user", Content: prompt.FocusStatementUser(rawChallenge)},
	}
	out, err := s.generator.Chat(ctx, history, llm.WithMaxTokens(150))
	if err != nil || strings.TrimSpace(out.Text) == "" {
		if err != nil {
			s.logger.Warn("assessment_service", "focus statement generation failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return prompt.FallbackFocus(rawChallenge)
	}
	return strings.TrimSpace(out.Text)
}

// generateSnapshot is best effort: the snapshot enriches the response but a
// submission without one is still valid.
func (s *assessmentService) generateSnapshot(ctx context.Context, req *dto.SubmitAssessmentRequest, recommendedPath string) string {
	params := prompt.SnapshotParams{
		HappinessScore:   req.HappinessScore,
		ClarityScore:     req.ClarityScore,
		ReadinessScore:   req.ReadinessScore,
		BiggestChallenge: req.BiggestChallenge,
		WhyMatters:       req.WhyMatters,
		WhatWouldChange:  req.WhatWouldChange,
		RecommendedPath:  recommendedPath,
	}
	history := []llm.Message{
		{Role: "system", Content: prompt.SnapshotSystem},
		{Role: "user", Content: prompt.SnapshotUser(params)},
	}
	out, err := s.generator.Chat(ctx, history)
	if err != nil {
		s.logger.Warn("assessment_service", "snapshot generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}
	return strings.TrimSpace(out.Text)
}

func intakeToResponse(intake *store.Intake) *dto.AssessmentResponse {
	return &dto.AssessmentResponse{
		ClaimToken:       intake.ClaimToken,
		Email:            intake.Email,
		HappinessScore:   intake.HappinessScore,
		ClarityScore:     intake.ClarityScore,
		ReadinessScore:   intake.ReadinessScore,
		TotalScore:       intake.HappinessScore + intake.ClarityScore + intake.ReadinessScore,
		BiggestChallenge: intake.BiggestChallenge,
		WhyMatters:       intake.WhyMatters,
		WhatWouldChange:  intake.WhatWouldChange,
		FocusStatement:   intake.FocusStatement,
		Snapshot:         intake.Snapshot,
		RecommendedPath:  intake.RecommendedPath,
	}
}

func assessmentToResponse(a *entity.PreAssessment) *dto.AssessmentResponse {
	return &dto.AssessmentResponse{
		Id:               a.Id,
		Email:            a.Email,
		HappinessScore:   a.HappinessScore,
		ClarityScore:     a.ClarityScore,
		ReadinessScore:   a.ReadinessScore,
		TotalScore:       a.HappinessScore + a.ClarityScore + a.ReadinessScore,
		BiggestChallenge: a.BiggestChallenge,
		WhyMatters:       a.WhyMatters,
		WhatWouldChange:  a.WhatWouldChange,
		FocusStatement:   a.FocusStatement,
		Snapshot:         a.Snapshot,
		RecommendedPath:  a.RecommendedPath,
		CreatedAt:        a.CreatedAt,
	}
}
