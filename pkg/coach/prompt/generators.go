package prompt

import (
	"fmt"
	"strings"

	"homerun-be/pkg/coach/stage"
	"homerun-be/pkg/llm"
)

// SummarySystem builds the system prompt for the breakthrough summary that
// closes out a stage.
func SummarySystem(s stage.Stage, rootInsight string) string {
	insight := rootInsight
	if len(insight) > 500 {
		insight = insight[:500] + "..."
	}
	return fmt.Sprintf(`You are a thoughtful life coach who helps people recognize and celebrate their breakthroughs. Your task is to write a powerful, inspirational summary of a user's discovery journey.

Analyze the conversation and create a 2-3 paragraph summary that captures:
1. What the user discovered (the breakthrough/insight)
2. Why this discovery is significant and transformative
3. The shift or transformation that occurred in their thinking

The summary should:
- Be warm, celebratory, and inspiring
- Focus on the "aha moment" and personal growth
- Use second person ("you") to speak directly to the user
- Be concise but meaningful (approximately 200-300 words)
- Feel like a milestone achievement worth celebrating

Current Stage: %s - %s
Root Insight: %s

Write the summary now. Do not include any meta-commentary or instructions - just the summary itself.`, s.Label(), s.Description(), insight)
}

// SummaryMessages is the stage conversation plus a closing instruction.
func SummaryMessages(turns []stage.Turn) []llm.Message {
	msgs := make([]llm.Message, 0, len(turns)+1)
	for _, t := range turns {
		if t.Role != stage.RoleUser && t.Role != stage.RoleAssistant {
			continue
		}
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Content})
	}
	msgs = append(msgs, llm.Message{
		Role:    stage.RoleUser,
		Content: "Based on this entire conversation, write a powerful summary of my breakthrough discovery. Focus on what I learned about myself, why it matters, and how this represents a transformation in my understanding.",
	})
	return msgs
}

// FocusStatementSystem condenses a raw challenge description into a short
// focus statement shown in the conversation header.
const FocusStatementSystem = `Condense the user's challenge to 1-2 sentences for display as a focus statement.

Rules:
- Keep it to 1-2 sentences only. No more.
- Use their exact words where possible. Do NOT interpret, infer, or replace their phrasing with synonyms.
- If the input is already 1-2 clear sentences, return it as-is or with minimal editing.
- Strip rambling, repetition, and tangents only. Preserve their core meaning and tone.
- Do not add advice or questions. Output only the condensed focus statement.`

func FocusStatementUser(rawChallenge string) string {
	return fmt.Sprintf("User's description of their biggest challenge:\n\n%s\n\nWrite the 1-2 sentence focus statement now. No preamble.", rawChallenge)
}

// FallbackFocus is used when generation fails: the raw text, truncated.
func FallbackFocus(rawChallenge string) string {
	if len(rawChallenge) > 120 {
		return strings.TrimSpace(rawChallenge[:120]) + "..."
	}
	return rawChallenge
}

// SnapshotParams feed the pre-assessment snapshot prompt.
type SnapshotParams struct {
	HappinessScore   int
	ClarityScore     int
	ReadinessScore   int
	BiggestChallenge string
	WhyMatters       string
	WhatWouldChange  string
	RecommendedPath  string
}

const SnapshotSystem = `You are a thoughtful life coach using the HomeRun Method. Your task is to write a "HomeRun Snapshot" from a pre-assessment. Use the same reflective, WHY-focused style as the "at bat" breakthrough summary: warm, second person ("you"), interpretive, not a repeat of their answers.

Do NOT simply restate scores and answers. Instead:
1. Synthesize what they shared into themes (their challenge, what's at stake, the change they imagine).
2. Offer brief interpretation: what this suggests about their motivation, readiness, or what to work on first.
3. Give 1-2 concrete, helpful takeaways or focus areas for their next steps.
Use the HomeRun "at bat / why" lens: connection to motivation, values, and what truly matters.
Tone: warm, celebratory but grounded. Length: approximately 200-300 words, 2-3 paragraphs.
Output only the snapshot text. No meta-commentary, headers, or instructions.`

func SnapshotUser(p SnapshotParams) string {
	pathLabel := "Personal Life Journey"
	if p.RecommendedPath == "business" {
		pathLabel = "Business Journey"
	}
	var b strings.Builder
	b.WriteString("Pre-assessment inputs:\n")
	fmt.Fprintf(&b, "- Happiness (1-10): %d\n", p.HappinessScore)
	fmt.Fprintf(&b, "- Clarity on goals (1-10): %d\n", p.ClarityScore)
	fmt.Fprintf(&b, "- Readiness to change (1-10): %d\n", p.ReadinessScore)
	fmt.Fprintf(&b, "- Biggest challenge: %s\n", p.BiggestChallenge)
	fmt.Fprintf(&b, "- Why it matters to them: %s\n", p.WhyMatters)
	if p.WhatWouldChange != "" {
		fmt.Fprintf(&b, "- What would change if they overcame it: %s\n", p.WhatWouldChange)
	}
	fmt.Fprintf(&b, "- Recommended path: %s\n", pathLabel)
	b.WriteString("\nWrite the HomeRun Snapshot now.")
	return b.String()
}

// ConclusionParams carry the journey data for the report's closing sections.
type ConclusionParams struct {
	FocusStatement    string
	AtBatSummary      string
	FirstBaseSummary  string
	SecondBaseSummary string
	ThirdBaseSummary  string
	HomePlateSummary  string
	RootWhy           string
	RootIdentity      string
	RootDesire        string
	RootFear          string
	RootObstacle      string
	RootLegacy        string
}

// Conclusion is the parsed four-section closing of the journey report.
type Conclusion struct {
	Restatement    string `json:"restatement"`
	Synthesis      string `json:"synthesis"`
	Plan           string `json:"plan"`
	OverallSummary string `json:"overall_summary"`
}

// SectionSeparator delimits the four conclusion sections in model output.
const SectionSeparator = "---SECTION---"

const ConclusionSystem = `You are a life coach writing the concluding section of a client's HomeRun journey report.

You will receive:
1. The client's original focus (what they set out to work on)
2. Their breakthrough summaries and root insights from each base (At Bat = WHY, First Base = WHO, Second Base = WHAT, Third Base = HOW, Home Plate = why it MATTERS)

Your task is to output four distinct sections in the following format. Use the exact labels and separate each section with "---SECTION---".

1. RESTATEMENT (2-4 sentences)
Restate the client's original problem or focus in clear, compassionate language. Connect it to the journey they just completed.

2. SYNTHESIS (one short paragraph, 3-5 sentences)
Synthesize what they discovered across the modules: how their WHY fuels their WHO, how their WHO informs what they want (WHAT), how their HOW gets them there, and why it MATTERS. Tie it into one coherent narrative.

3. PLAN (3-5 bullet points or short numbered steps)
Give them a concrete, actionable plan. Each item should be a clear next step they can take. Use their actual insights (WHY, WHO, WHAT, HOW, legacy) so the plan feels personal. Format as short lines, e.g. "• Step one..." or "1. ..."

4. OVERALL SUMMARY (one short paragraph, 2-4 sentences)
Close with an overall summary of the whole process: what they did, what they discovered, and what they can carry forward. Warm and encouraging.`

func ConclusionUser(p ConclusionParams) string {
	add := func(parts []string, label, value string) []string {
		if value != "" {
			parts = append(parts, label+": "+value)
		}
		return parts
	}
	parts := []string{"Original focus: " + p.FocusStatement}
	parts = add(parts, "Root WHY (At Bat)", p.RootWhy)
	parts = add(parts, "At Bat breakthrough summary", p.AtBatSummary)
	parts = add(parts, "Root WHO (First Base)", p.RootIdentity)
	parts = add(parts, "First Base breakthrough summary", p.FirstBaseSummary)
	parts = add(parts, "Root WHAT - desire (Second Base)", p.RootDesire)
	parts = add(parts, "Root WHAT - fear (Second Base)", p.RootFear)
	parts = add(parts, "Second Base breakthrough summary", p.SecondBaseSummary)
	parts = add(parts, "Root HOW (Third Base)", p.RootObstacle)
	parts = add(parts, "Third Base breakthrough summary", p.ThirdBaseSummary)
	parts = add(parts, "Root legacy (Home Plate)", p.RootLegacy)
	parts = add(parts, "Home Plate breakthrough summary", p.HomePlateSummary)
	return fmt.Sprintf("Client's journey data:\n\n%s\n\nWrite the four sections now. Use \"---SECTION---\" between each section.", strings.Join(parts, "\n\n"))
}

// ParseConclusion splits model output on the section separator. Missing
// trailing sections come back empty.
func ParseConclusion(text string) Conclusion {
	raw := strings.Split(text, SectionSeparator)
	sections := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			sections = append(sections, s)
		}
	}
	var c Conclusion
	if len(sections) > 0 {
		c.Restatement = sections[0]
	}
	if len(sections) > 1 {
		c.Synthesis = sections[1]
	}
	if len(sections) > 2 {
		c.Plan = sections[2]
	}
	if len(sections) > 3 {
		c.OverallSummary = sections[3]
	}
	return c
}
