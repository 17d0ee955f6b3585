package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_conversation_created,priority:1"`
	Role           string    `gorm:"type:varchar(20);not null"`
	Content        string    `gorm:"type:text;not null"`
	BaseStage      string    `gorm:"type:varchar(20);not null;index"`
	WhyLevel       int       `gorm:"not null;default:1"`
	IsVague        bool      `gorm:"not null;default:false"`
	Challenged     bool      `gorm:"not null;default:false"`
	TokensUsed     int       `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_messages_conversation_created,priority:2"`
}

func (Message) TableName() string {
	return "messages"
}
