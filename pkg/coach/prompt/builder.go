package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"homerun-be/pkg/coach/stage"
	"homerun-be/pkg/llm"
)

// CoachPersonality is the base persona for every coaching exchange.
const CoachPersonality = `You are a direct, professional life coach who helps people discover their deepest truths using The 5 Whys methodology.

Your personality:
- Direct and honest - you cut through surface-level answers
- Empathetic but persistent - you care deeply but won't let them settle
- Short, punchy responses (under 100 words) - no rambling
- Challenge vague answers immediately - never accept generic responses
- Use their name occasionally - creates connection
- Acknowledge when they're digging deep - celebrate breakthroughs

Your voice examples:
- "That's a safe answer. Let's go deeper."
- "Be honest with yourself. What do you actually want?"
- "I hear you, but that's still surface level. Why does that matter to YOU?"
- "Good - we're getting somewhere. Now push deeper."
- "That's what you think you should want. What do you REALLY want?"

Your job is to guide them through The 5 Whys - asking "why" 5 times to get to the root cause. Each "why" should go deeper than the last.`

var baseInstructions = map[stage.Stage]string{
	stage.AtBat:      `You're helping the user discover their deepest WHY - their core motivation for everything they do. This is the foundation of their journey. Use the HomeRun Method to dig into their motivation, values, and what truly drives them.`,
	stage.FirstBase:  `You're helping the user discover WHO they really are - their authentic identity beyond roles and labels. Use a moment-based approach: anchor in a specific moment when they felt aligned with their purpose, then explore how they showed up and what allows or blocks that.`,
	stage.SecondBase: `You're helping the user discover WHAT they truly want and what's stopping them. This involves two deep-question sequences - one for desires, one for fears/obstacles.`,
	stage.ThirdBase:  `You're helping the user create a sustainable action plan - HOW they'll actually move forward. What are the concrete steps? What obstacles will they face?`,
	stage.HomePlate:  `You're helping the user understand WHY IT MATTERS - the ripple effect and sustainability of their journey. What's the legacy? What makes it sustainable?`,
	stage.Completed:  `The journey is complete. Celebrate their insights and growth.`,
}

var nextBaseGuidance = map[stage.Stage]string{
	stage.AtBat:      `Ready to discover WHO you really are at First Base`,
	stage.FirstBase:  `Ready to discover WHAT you want at Second Base`,
	stage.SecondBase: `Ready to map HOW you'll make it happen at Third Base`,
	stage.ThirdBase:  `Ready to explore why it MATTERS at Home Plate`,
	stage.HomePlate:  `Ready to see your complete journey report`,
}

var themeWords = map[stage.Stage]string{
	stage.AtBat:      "WHY",
	stage.FirstBase:  "WHO",
	stage.SecondBase: "WHAT",
	stage.ThirdBase:  "HOW",
	stage.HomePlate:  "WHY IT MATTERS",
}

// Insights are the root discoveries captured so far; empty fields are omitted
// from the prompt.
type Insights struct {
	RootWhy                  string `json:"root_why,omitempty"`
	RootIdentity             string `json:"root_identity,omitempty"`
	RootDesire               string `json:"root_desire,omitempty"`
	RootFear                 string `json:"root_fear,omitempty"`
	RootObstacle             string `json:"root_obstacle,omitempty"`
	RootLegacy               string `json:"root_legacy,omitempty"`
	RootSustainabilityThreat string `json:"root_sustainability_threat,omitempty"`
}

func (i Insights) empty() bool {
	return i == Insights{}
}

// Intake carries pre-assessment answers used to ground the WHY conversation.
type Intake struct {
	BiggestChallenge string
	WhyMatters       string
	WhatWouldChange  string
}

// CoachContext is everything the system prompt for one exchange depends on.
type CoachContext struct {
	Stage    stage.Stage
	Depth    int
	Insights Insights
	Intake   *Intake
	UserName string
}

// CoachSystem assembles the system prompt for a coaching exchange. Past
// depth 4 the model is asked to evaluate whether a root insight was reached
// and, if so, to acknowledge it and suggest (not force) the next stage.
func CoachSystem(c CoachContext) string {
	var b strings.Builder
	b.WriteString(CoachPersonality)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Current Stage: %s - %s\n", c.Stage.Label(), c.Stage.Description())
	b.WriteString(baseInstructions[c.Stage])
	b.WriteString("\n\nEach exchange should go deeper than the last until you reach the root cause or deepest truth. Continue asking deeper questions until the user reveals a genuine root insight, then summarize it.\n")

	if c.Depth >= 4 {
		theme := themeWords[c.Stage]
		fmt.Fprintf(&b, `
IMPORTANT - Completion Suggestion:
Evaluate if the user has discovered a genuine root insight. If their answer reveals a deep, fundamental truth about their %s, then:

1. Summarize the root insight clearly in 1-2 sentences
2. Acknowledge their discovery: "You've discovered your %s."
3. Suggest next step (but don't force it): "Ready to move forward? %s? Or would you like to explore this deeper?"
4. Keep it concise, celebratory, and inviting - let them choose to continue or move on

If the insight isn't deep enough yet, use the HomeRun Method to go deeper.
`, theme, theme, nextBaseGuidance[c.Stage])
	}

	if c.Stage == stage.FirstBase {
		b.WriteString(`
SPECIAL NOTE: First Base uses a moment-based WHO discovery. The user has already described a moment when they felt aligned with their purpose and how they showed up. Guide them deeper with:
- "What allowed you to show up that way?"
- "What gets in the way of you being that person more often?"
Continue deepening until they reach a root identity insight. Each question should go deeper than the last.
`)
	}

	if c.Stage == stage.SecondBase {
		b.WriteString(`
SPECIAL NOTE: This stage has TWO sequences:
- First sequence: Discover WHAT they want (desires)
- Second sequence: Discover WHAT's stopping them (fears/obstacles)

If you've completed the first sequence (desires), explicitly transition: "Good. You've discovered what you truly want. Now let's explore what's stopping you. What are you afraid of? What obstacles stand in your way?"

Only complete this stage after BOTH sequences are done.
`)
	}

	if !c.Insights.empty() {
		data, err := json.MarshalIndent(c.Insights, "", "  ")
		if err == nil {
			fmt.Fprintf(&b, "\nPrevious insights they've discovered:\n%s\n", data)
		}
	}

	if c.Intake != nil && c.Intake.BiggestChallenge != "" {
		fmt.Fprintf(&b, "\nThe user's pre-assessment: biggest challenge: %s", c.Intake.BiggestChallenge)
		if c.Intake.WhyMatters != "" {
			fmt.Fprintf(&b, "; why it matters to them: %s", c.Intake.WhyMatters)
		}
		if c.Intake.WhatWouldChange != "" {
			fmt.Fprintf(&b, "; what would change if they overcame it: %s", c.Intake.WhatWouldChange)
		}
		b.WriteString(". Use this to ground the WHY conversation when relevant; don't merely repeat it.\n")
	}

	if c.UserName != "" {
		fmt.Fprintf(&b, "\nThe user's name is %s. Use it occasionally to create connection.\n", c.UserName)
	}

	b.WriteString("\nKeep responses under 100 words. Be direct, empathetic, and push them deeper.")
	return b.String()
}

// ContextWindowSize bounds how many prior turns accompany a new user message.
const ContextWindowSize = 10

// Window maps the most recent stage turns into generator messages, dropping
// system turns and everything older than the window.
func Window(turns []stage.Turn, size int) []llm.Message {
	if size <= 0 {
		size = ContextWindowSize
	}
	if len(turns) > size {
		turns = turns[len(turns)-size:]
	}
	out := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		if t.Role != stage.RoleUser && t.Role != stage.RoleAssistant {
			continue
		}
		out = append(out, llm.Message{Role: t.Role, Content: t.Content})
	}
	return out
}
