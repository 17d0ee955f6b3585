package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"homerun-be/pkg/coach/stage"
)

func TestSummarySystemTruncatesInsight(t *testing.T) {
	long := strings.Repeat("a", 600)
	out := SummarySystem(stage.AtBat, long)

	assert.Contains(t, out, "Current Stage: At Bat")
	assert.Contains(t, out, strings.Repeat("a", 500)+"...")
	assert.NotContains(t, out, strings.Repeat("a", 501))

	short := SummarySystem(stage.HomePlate, "my legacy")
	assert.Contains(t, short, "Root Insight: my legacy\n")
}

func TestSummaryMessagesAppendsInstruction(t *testing.T) {
	turns := []stage.Turn{
		{Role: stage.RoleAssistant, Content: "Why does that matter?"},
		{Role: "system", Content: "dropped"},
		{Role: stage.RoleUser, Content: "Because I never felt enough"},
	}

	msgs := SummaryMessages(turns)
	assert.Len(t, msgs, 3)
	assert.Equal(t, stage.RoleUser, msgs[2].Role)
	assert.Contains(t, msgs[2].Content, "breakthrough discovery")
}

func TestFallbackFocus(t *testing.T) {
	short := "Grow my coaching practice."
	assert.Equal(t, short, FallbackFocus(short))

	long := strings.Repeat("b", 130)
	got := FallbackFocus(long)
	assert.Equal(t, strings.Repeat("b", 120)+"...", got)
}

func TestSnapshotUser(t *testing.T) {
	p := SnapshotParams{
		HappinessScore:   4,
		ClarityScore:     6,
		ReadinessScore:   8,
		BiggestChallenge: "burnout",
		WhyMatters:       "family",
		RecommendedPath:  "business",
	}
	out := SnapshotUser(p)
	assert.Contains(t, out, "- Happiness (1-10): 4")
	assert.Contains(t, out, "- Recommended path: Business Journey")
	assert.NotContains(t, out, "What would change")

	p.RecommendedPath = "personal"
	p.WhatWouldChange = "more energy"
	out = SnapshotUser(p)
	assert.Contains(t, out, "- Recommended path: Personal Life Journey")
	assert.Contains(t, out, "- What would change if they overcame it: more energy")
}

func TestConclusionUserSkipsEmptyParts(t *testing.T) {
	out := ConclusionUser(ConclusionParams{
		FocusStatement: "Stop drifting",
		RootWhy:        "freedom",
		AtBatSummary:   "found the why",
	})
	assert.Contains(t, out, "Original focus: Stop drifting")
	assert.Contains(t, out, "Root WHY (At Bat): freedom")
	assert.Contains(t, out, "At Bat breakthrough summary: found the why")
	assert.NotContains(t, out, "First Base breakthrough summary")
	assert.NotContains(t, out, "Root legacy")
}

func TestParseConclusion(t *testing.T) {
	text := "Restated.\n---SECTION---\nSynthesized.\n---SECTION---\n1. Do the thing\n---SECTION---\nYou made it."
	c := ParseConclusion(text)
	assert.Equal(t, "Restated.", c.Restatement)
	assert.Equal(t, "Synthesized.", c.Synthesis)
	assert.Equal(t, "1. Do the thing", c.Plan)
	assert.Equal(t, "You made it.", c.OverallSummary)

	partial := ParseConclusion("Only one section")
	assert.Equal(t, "Only one section", partial.Restatement)
	assert.Empty(t, partial.OverallSummary)
	assert.Empty(t, partial.Plan)
}
