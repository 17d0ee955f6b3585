package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendCoachMessageRequest struct {
	ConversationId uuid.UUID `json:"conversation_id" validate:"required"`
	Content        string    `json:"content" validate:"required"`
}

type CoachMessage struct {
	Id         uuid.UUID `json:"id"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	BaseStage  string    `json:"base_stage"`
	WhyLevel   int       `json:"why_level"`
	IsVague    bool      `json:"is_vague,omitempty"`
	Challenged bool      `json:"challenged,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type SendCoachMessageResponse struct {
	ConversationId uuid.UUID     `json:"conversation_id"`
	Sent           *CoachMessage `json:"sent"`
	Reply          *CoachMessage `json:"reply"`
	WhyLevel       int           `json:"why_level"`
	BaseStage      string        `json:"base_stage"`
	StageComplete  bool          `json:"stage_complete"`
	VagueReason    string        `json:"vague_reason,omitempty"`
}

type StageSummaryResponse struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	BaseStage      string    `json:"base_stage"`
	Summary        string    `json:"summary"`
	Regenerated    bool      `json:"regenerated,omitempty"`
}

type GetMessagesResponse struct {
	ConversationId uuid.UUID       `json:"conversation_id"`
	BaseStage      string          `json:"base_stage"`
	Messages       []*CoachMessage `json:"messages"`
}

// PublishSummaryJobMessage is the queue payload for async breakthrough
// summary generation.
type PublishSummaryJobMessage struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	BaseStage      string    `json:"base_stage"`
	RootInsight    string    `json:"root_insight"`
}
