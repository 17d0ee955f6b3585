package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

type ByBaseStage struct {
	BaseStage string
}

func (s ByBaseStage) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("base_stage = ?", s.BaseStage)
}

type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type CompletedOnly struct{}

func (s CompletedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("completed_at IS NOT NULL")
}
