package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BaseProgress struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_base_progress_conversation_stage,priority:1"`
	BaseStage      string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_base_progress_conversation_stage,priority:2"`
	StartedAt      time.Time  `gorm:"autoCreateTime"`
	CompletedAt    *time.Time `gorm:""`

	WhySequenceComplete  bool `gorm:"not null;default:false"`
	ConfirmationReceived bool `gorm:"not null;default:false"`
	ActionAssigned       bool `gorm:"not null;default:false"`

	Responses datatypes.JSON `gorm:"type:jsonb"`
}

func (BaseProgress) TableName() string {
	return "base_progress"
}
