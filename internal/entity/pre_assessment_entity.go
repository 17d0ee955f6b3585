package entity

import (
	"time"

	"github.com/google/uuid"
)

type PreAssessment struct {
	Id               uuid.UUID
	UserId           *uuid.UUID
	Email            string
	HappinessScore   int
	ClarityScore     int
	ReadinessScore   int
	BiggestChallenge string
	WhyMatters       string
	WhatWouldChange  string
	FocusStatement   string
	Snapshot         string
	RecommendedPath  string
	CreatedAt        time.Time
}
