package mapper

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"homerun-be/internal/entity"
	"homerun-be/internal/model"
	"homerun-be/pkg/coach/stage"
)

type JourneyMapper struct{}

func NewJourneyMapper() *JourneyMapper {
	return &JourneyMapper{}
}

func jsonToMap(data datatypes.JSON) map[string]interface{} {
	if len(data) == 0 {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func mapToJSON(m map[string]interface{}) datatypes.JSON {
	if m == nil {
		return nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}

// Conversation Mappers

func (m *JourneyMapper) ConversationToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Conversation{
		Id:          c.Id,
		UserId:      c.UserId,
		JourneyType: c.JourneyType,
		CurrentBase: stage.Stage(c.CurrentBase),
		StartedAt:   c.StartedAt,
		CompletedAt: c.CompletedAt,
		PausedAt:    c.PausedAt,
		IsActive:    c.IsActive,

		RootWhy:                  c.RootWhy,
		RootIdentity:             c.RootIdentity,
		RootDesire:               c.RootDesire,
		RootFear:                 c.RootFear,
		RootObstacle:             c.RootObstacle,
		RootLegacy:               c.RootLegacy,
		RootSustainabilityThreat: c.RootSustainabilityThreat,

		AtBatSummary:      c.AtBatSummary,
		FirstBaseSummary:  c.FirstBaseSummary,
		SecondBaseSummary: c.SecondBaseSummary,
		ThirdBaseSummary:  c.ThirdBaseSummary,
		HomePlateSummary:  c.HomePlateSummary,

		WhyStatement:      c.WhyStatement,
		IdentityStatement: c.IdentityStatement,
		VisionStatement:   c.VisionStatement,
		OpportunityMap:    jsonToMap(c.OpportunityMap),
		ActionPlan:        jsonToMap(c.ActionPlan),
		RippleStatement:   c.RippleStatement,

		TotalMessages:        c.TotalMessages,
		CompletionPercentage: c.CompletionPercentage,

		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: c.DeletedAt.Valid,
	}
}

func (m *JourneyMapper) ConversationToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Conversation{
		Id:          c.Id,
		UserId:      c.UserId,
		JourneyType: c.JourneyType,
		CurrentBase: string(c.CurrentBase),
		StartedAt:   c.StartedAt,
		CompletedAt: c.CompletedAt,
		PausedAt:    c.PausedAt,
		IsActive:    c.IsActive,

		RootWhy:                  c.RootWhy,
		RootIdentity:             c.RootIdentity,
		RootDesire:               c.RootDesire,
		RootFear:                 c.RootFear,
		RootObstacle:             c.RootObstacle,
		RootLegacy:               c.RootLegacy,
		RootSustainabilityThreat: c.RootSustainabilityThreat,

		AtBatSummary:      c.AtBatSummary,
		FirstBaseSummary:  c.FirstBaseSummary,
		SecondBaseSummary: c.SecondBaseSummary,
		ThirdBaseSummary:  c.ThirdBaseSummary,
		HomePlateSummary:  c.HomePlateSummary,

		WhyStatement:      c.WhyStatement,
		IdentityStatement: c.IdentityStatement,
		VisionStatement:   c.VisionStatement,
		OpportunityMap:    mapToJSON(c.OpportunityMap),
		ActionPlan:        mapToJSON(c.ActionPlan),
		RippleStatement:   c.RippleStatement,

		TotalMessages:        c.TotalMessages,
		CompletionPercentage: c.CompletionPercentage,

		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

// Message Mappers

func (m *JourneyMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		BaseStage:      stage.Stage(msg.BaseStage),
		WhyLevel:       msg.WhyLevel,
		IsVague:        msg.IsVague,
		Challenged:     msg.Challenged,
		TokensUsed:     msg.TokensUsed,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *JourneyMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		BaseStage:      string(msg.BaseStage),
		WhyLevel:       msg.WhyLevel,
		IsVague:        msg.IsVague,
		Challenged:     msg.Challenged,
		TokensUsed:     msg.TokensUsed,
		CreatedAt:      msg.CreatedAt,
	}
}

// Base Progress Mappers

func (m *JourneyMapper) BaseProgressToEntity(p *model.BaseProgress) *entity.BaseProgress {
	if p == nil {
		return nil
	}

	return &entity.BaseProgress{
		Id:             p.Id,
		ConversationId: p.ConversationId,
		BaseStage:      stage.Stage(p.BaseStage),
		StartedAt:      p.StartedAt,
		CompletedAt:    p.CompletedAt,

		WhySequenceComplete:  p.WhySequenceComplete,
		ConfirmationReceived: p.ConfirmationReceived,
		ActionAssigned:       p.ActionAssigned,

		Responses: jsonToMap(p.Responses),
	}
}

func (m *JourneyMapper) BaseProgressToModel(p *entity.BaseProgress) *model.BaseProgress {
	if p == nil {
		return nil
	}

	return &model.BaseProgress{
		Id:             p.Id,
		ConversationId: p.ConversationId,
		BaseStage:      string(p.BaseStage),
		StartedAt:      p.StartedAt,
		CompletedAt:    p.CompletedAt,

		WhySequenceComplete:  p.WhySequenceComplete,
		ConfirmationReceived: p.ConfirmationReceived,
		ActionAssigned:       p.ActionAssigned,

		Responses: mapToJSON(p.Responses),
	}
}

// Pre-Assessment Mappers

func (m *JourneyMapper) PreAssessmentToEntity(a *model.PreAssessment) *entity.PreAssessment {
	if a == nil {
		return nil
	}

	return &entity.PreAssessment{
		Id:               a.Id,
		UserId:           a.UserId,
		Email:            a.Email,
		HappinessScore:   a.HappinessScore,
		ClarityScore:     a.ClarityScore,
		ReadinessScore:   a.ReadinessScore,
		BiggestChallenge: a.BiggestChallenge,
		WhyMatters:       a.WhyMatters,
		WhatWouldChange:  a.WhatWouldChange,
		FocusStatement:   a.FocusStatement,
		Snapshot:         a.Snapshot,
		RecommendedPath:  a.RecommendedPath,
		CreatedAt:        a.CreatedAt,
	}
}

func (m *JourneyMapper) PreAssessmentToModel(a *entity.PreAssessment) *model.PreAssessment {
	if a == nil {
		return nil
	}

	return &model.PreAssessment{
		Id:               a.Id,
		UserId:           a.UserId,
		Email:            a.Email,
		HappinessScore:   a.HappinessScore,
		ClarityScore:     a.ClarityScore,
		ReadinessScore:   a.ReadinessScore,
		BiggestChallenge: a.BiggestChallenge,
		WhyMatters:       a.WhyMatters,
		WhatWouldChange:  a.WhatWouldChange,
		FocusStatement:   a.FocusStatement,
		Snapshot:         a.Snapshot,
		RecommendedPath:  a.RecommendedPath,
		CreatedAt:        a.CreatedAt,
	}
}
