package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitAssessmentRequest struct {
	Email            string `json:"email" validate:"required,email"`
	HappinessScore   int    `json:"happiness_score" validate:"required,min=1,max=10"`
	ClarityScore     int    `json:"clarity_score" validate:"required,min=1,max=10"`
	ReadinessScore   int    `json:"readiness_score" validate:"required,min=1,max=10"`
	BiggestChallenge string `json:"biggest_challenge" validate:"required"`
	WhyMatters       string `json:"why_matters" validate:"required"`
	WhatWouldChange  string `json:"what_would_change"`
}

type AssessmentResponse struct {
	Id               uuid.UUID `json:"id,omitempty"`
	ClaimToken       string    `json:"claim_token,omitempty"`
	Email            string    `json:"email"`
	HappinessScore   int       `json:"happiness_score"`
	ClarityScore     int       `json:"clarity_score"`
	ReadinessScore   int       `json:"readiness_score"`
	TotalScore       int       `json:"total_score"`
	BiggestChallenge string    `json:"biggest_challenge"`
	WhyMatters       string    `json:"why_matters"`
	WhatWouldChange  string    `json:"what_would_change,omitempty"`
	FocusStatement   string    `json:"focus_statement"`
	Snapshot         string    `json:"snapshot,omitempty"`
	RecommendedPath  string    `json:"recommended_path"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
}

type ClaimAssessmentRequest struct {
	ClaimToken string `json:"claim_token" validate:"required"`
}
