package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartJourneyRequest struct {
	JourneyType string `json:"journey_type" validate:"required,oneof=business personal"`
}

type JourneyResponse struct {
	Id                   uuid.UUID  `json:"id"`
	JourneyType          string     `json:"journey_type"`
	CurrentBase          string     `json:"current_base"`
	CurrentBaseLabel     string     `json:"current_base_label"`
	CompletionPercentage int        `json:"completion_percentage"`
	TotalMessages        int        `json:"total_messages"`
	IsActive             bool       `json:"is_active"`
	StartedAt            time.Time  `json:"started_at"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	FocusStatement       string     `json:"focus_statement,omitempty"`
}

type ProceedRequest struct {
	ConversationId uuid.UUID `json:"conversation_id" validate:"required"`
}

type ProceedResponse struct {
	ConversationId       uuid.UUID `json:"conversation_id"`
	PreviousBase         string    `json:"previous_base"`
	CurrentBase          string    `json:"current_base"`
	CurrentBaseLabel     string    `json:"current_base_label"`
	CompletionPercentage int       `json:"completion_percentage"`
	JourneyCompleted     bool      `json:"journey_completed"`
}

type BaseProgressResponse struct {
	BaseStage            string     `json:"base_stage"`
	StartedAt            time.Time  `json:"started_at"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	WhySequenceComplete  bool       `json:"why_sequence_complete"`
	ConfirmationReceived bool       `json:"confirmation_received"`
	ActionAssigned       bool       `json:"action_assigned"`
}
