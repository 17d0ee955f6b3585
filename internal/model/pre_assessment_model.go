package model

import (
	"time"

	"github.com/google/uuid"
)

type PreAssessment struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           *uuid.UUID `gorm:"type:uuid;index"`
	Email            string     `gorm:"type:varchar(255);not null;index"`
	HappinessScore   int        `gorm:"not null"`
	ClarityScore     int        `gorm:"not null"`
	ReadinessScore   int        `gorm:"not null"`
	BiggestChallenge string     `gorm:"type:text"`
	WhyMatters       string     `gorm:"type:text"`
	WhatWouldChange  string     `gorm:"type:text"`
	FocusStatement   string     `gorm:"type:text"`
	Snapshot         string     `gorm:"type:text"`
	RecommendedPath  string     `gorm:"type:varchar(20)"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
}

func (PreAssessment) TableName() string {
	return "pre_assessments"
}
