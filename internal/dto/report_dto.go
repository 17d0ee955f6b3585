package dto

import (
	"time"

	"github.com/google/uuid"
)

type ReportInsights struct {
	RootWhy                  string `json:"root_why,omitempty"`
	RootIdentity             string `json:"root_identity,omitempty"`
	RootDesire               string `json:"root_desire,omitempty"`
	RootFear                 string `json:"root_fear,omitempty"`
	RootObstacle             string `json:"root_obstacle,omitempty"`
	RootLegacy               string `json:"root_legacy,omitempty"`
	RootSustainabilityThreat string `json:"root_sustainability_threat,omitempty"`
}

type ReportSummaries struct {
	AtBat      string `json:"at_bat,omitempty"`
	FirstBase  string `json:"first_base,omitempty"`
	SecondBase string `json:"second_base,omitempty"`
	ThirdBase  string `json:"third_base,omitempty"`
	HomePlate  string `json:"home_plate,omitempty"`
}

type ReportConclusion struct {
	Restatement    string `json:"restatement"`
	Synthesis      string `json:"synthesis"`
	Plan           string `json:"plan"`
	OverallSummary string `json:"overall_summary"`
}

type JourneyReportResponse struct {
	ConversationId uuid.UUID         `json:"conversation_id"`
	JourneyType    string            `json:"journey_type"`
	FocusStatement string            `json:"focus_statement,omitempty"`
	Insights       ReportInsights    `json:"insights"`
	Summaries      ReportSummaries   `json:"summaries"`
	Conclusion     *ReportConclusion `json:"conclusion,omitempty"`
	TotalMessages  int               `json:"total_messages"`
	StartedAt      time.Time         `json:"started_at"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
}
