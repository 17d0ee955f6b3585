package store

// Intake holds a pre-assessment submitted before the visitor has an
// account. It lives in memory under a claim token until registration
// reconciles it into Postgres, or until it expires.
type Intake struct {
	ClaimToken string `json:"claim_token"`
	Email      string `json:"email"`

	HappinessScore int `json:"happiness_score"`
	ClarityScore   int `json:"clarity_score"`
	ReadinessScore int `json:"readiness_score"`

	BiggestChallenge string `json:"biggest_challenge"`
	WhyMatters       string `json:"why_matters"`
	WhatWouldChange  string `json:"what_would_change"`

	FocusStatement  string `json:"focus_statement"`
	Snapshot        string `json:"snapshot"`
	RecommendedPath string `json:"recommended_path"`
}
