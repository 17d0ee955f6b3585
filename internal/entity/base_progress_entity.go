package entity

import (
	"time"

	"github.com/google/uuid"

	"homerun-be/pkg/coach/stage"
)

type BaseProgress struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	BaseStage      stage.Stage
	StartedAt      time.Time
	CompletedAt    *time.Time

	WhySequenceComplete  bool
	ConfirmationReceived bool
	ActionAssigned       bool

	Responses map[string]interface{}
}
