package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"homerun-be/internal/dto"
	"homerun-be/internal/entity"
	"homerun-be/internal/pkg/logger"
	"homerun-be/internal/repository/specification"
	"homerun-be/internal/repository/unitofwork"
	"homerun-be/pkg/coach/prompt"
	"homerun-be/pkg/llm"
)

type IReportService interface {
	GetReport(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) (*dto.JourneyReportResponse, error)
}

type reportService struct {
	uowFactory unitofwork.RepositoryFactory
	generator  llm.LLMProvider
	logger     logger.ILogger
}

func NewReportService(uowFactory unitofwork.RepositoryFactory, generator llm.LLMProvider, logger logger.ILogger) IReportService {
	return &reportService{
		uowFactory: uowFactory,
		generator:  generator,
		logger:     logger,
	}
}

func (s *reportService) GetReport(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) (*dto.JourneyReportResponse, error) {
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

	resp := &dto.JourneyReportResponse{
		ConversationId: conversation.Id,
		JourneyType:    conversation.JourneyType,
		Insights: dto.ReportInsights{
			RootWhy:                  conversation.RootWhy,
			RootIdentity:             conversation.RootIdentity,
			RootDesire:               conversation.RootDesire,
			RootFear:                 conversation.RootFear,
			RootObstacle:             conversation.RootObstacle,
			RootLegacy:               conversation.RootLegacy,
			RootSustainabilityThreat: conversation.RootSustainabilityThreat,
		},
		Summaries: dto.ReportSummaries{
			AtBat:      conversation.AtBatSummary,
			FirstBase:  conversation.FirstBaseSummary,
			SecondBase: conversation.SecondBaseSummary,
			ThirdBase:  conversation.ThirdBaseSummary,
			HomePlate:  conversation.HomePlateSummary,
		},
		TotalMessages: conversation.TotalMessages,
		StartedAt:     conversation.StartedAt,
		CompletedAt:   conversation.CompletedAt,
	}

	assessment, err := uow.PreAssessmentRepository().FindOne(ctx,
		specification.Filter("user_id", userId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err == nil && assessment != nil {
		resp.FocusStatement = assessment.FocusStatement
	}

	// The closing sections only make sense once the journey has ended.
	// Generation is best effort: the report without a conclusion is still
	// useful, so failures degrade rather than error.
	if conversation.CompletedAt != nil {
		resp.Conclusion = s.generateConclusion(ctx, conversation, resp.FocusStatement)
	}

	return resp, nil
}

func (s *reportService) generateConclusion(ctx context.Context, conversation *entity.Conversation, focusStatement string) *dto.ReportConclusion {
	params := prompt.ConclusionParams{
		FocusStatement:    focusStatement,
		AtBatSummary:      conversation.AtBatSummary,
		FirstBaseSummary:  conversation.FirstBaseSummary,
		SecondBaseSummary: conversation.SecondBaseSummary,
		ThirdBaseSummary:  conversation.ThirdBaseSummary,
		HomePlateSummary:  conversation.HomePlateSummary,
		RootWhy:           conversation.RootWhy,
		RootIdentity:      conversation.RootIdentity,
		RootDesire:        conversation.RootDesire,
		RootFear:          conversation.RootFear,
		RootObstacle:      conversation.RootObstacle,
		RootLegacy:        conversation.RootLegacy,
	}
	history := []llm.Message{
		{Role: "system", Content: prompt.ConclusionSystem},
		{Role: "user", Content: prompt.ConclusionUser(params)},
	}
	out, err := s.generator.Chat(ctx, history, llm.WithMaxTokens(2000))
	if err != nil || strings.TrimSpace(out.Text) == "" {
		if err != nil {
			s.logger.Warn("report_service", "conclusion generation failed", map[string]interface{}{
				"conversation_id": conversation.Id,
				"error":           err.Error(),
			})
		}
		return nil
	}
	parsed := prompt.ParseConclusion(out.Text)
	return &dto.ReportConclusion{
		Restatement:    parsed.Restatement,
		Synthesis:      parsed.Synthesis,
		Plan:           parsed.Plan,
		OverallSummary: parsed.OverallSummary,
	}
}
