package entity

import (
	"time"

	"github.com/google/uuid"

	"homerun-be/pkg/coach/stage"
)

// Message is append-only; rows are never updated after insert.
type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           string
	Content        string
	BaseStage      stage.Stage
	WhyLevel       int
	IsVague        bool
	Challenged     bool
	TokensUsed     int
	CreatedAt      time.Time
}
