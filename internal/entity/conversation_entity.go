package entity

import (
	"time"

	"github.com/google/uuid"

	"homerun-be/pkg/coach/stage"
)

type Conversation struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	JourneyType string
	CurrentBase stage.Stage
	StartedAt   time.Time
	CompletedAt *time.Time
	PausedAt    *time.Time
	IsActive    bool

	// Core insights extracted along the journey
	RootWhy                  string
	RootIdentity             string
	RootDesire               string
	RootFear                 string
	RootObstacle             string
	RootLegacy               string
	RootSustainabilityThreat string

	// Breakthrough summaries per stage
	AtBatSummary      string
	FirstBaseSummary  string
	SecondBaseSummary string
	ThirdBaseSummary  string
	HomePlateSummary  string

	// Final deliverables
	WhyStatement      string
	IdentityStatement string
	VisionStatement   string
	OpportunityMap    map[string]interface{}
	ActionPlan        map[string]interface{}
	RippleStatement   string

	TotalMessages        int
	CompletionPercentage int

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
