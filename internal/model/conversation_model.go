package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Conversation struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	JourneyType string     `gorm:"type:varchar(20);not null"`
	CurrentBase string     `gorm:"type:varchar(20);not null;default:'at_bat'"`
	StartedAt   time.Time  `gorm:"autoCreateTime"`
	CompletedAt *time.Time `gorm:""`
	PausedAt    *time.Time `gorm:""`
	// Partial unique index keeps at most one active journey per user.
	IsActive bool `gorm:"not null;default:true;index:idx_conversations_user_active,where:is_active"`

	RootWhy                  string `gorm:"type:text"`
	RootIdentity             string `gorm:"type:text"`
	RootDesire               string `gorm:"type:text"`
	RootFear                 string `gorm:"type:text"`
	RootObstacle             string `gorm:"type:text"`
	RootLegacy               string `gorm:"type:text"`
	RootSustainabilityThreat string `gorm:"type:text"`

	AtBatSummary      string `gorm:"type:text"`
	FirstBaseSummary  string `gorm:"type:text"`
	SecondBaseSummary string `gorm:"type:text"`
	ThirdBaseSummary  string `gorm:"type:text"`
	HomePlateSummary  string `gorm:"type:text"`

	WhyStatement      string         `gorm:"type:text"`
	IdentityStatement string         `gorm:"type:text"`
	VisionStatement   string         `gorm:"type:text"`
	OpportunityMap    datatypes.JSON `gorm:"type:jsonb"`
	ActionPlan        datatypes.JSON `gorm:"type:jsonb"`
	RippleStatement   string         `gorm:"type:text"`

	TotalMessages        int `gorm:"not null;default:0"`
	CompletionPercentage int `gorm:"not null;default:0"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Conversation) TableName() string {
	return "conversations"
}
