package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"homerun-be/pkg/coach/stage"
)

func TestCoachSystemBase(t *testing.T) {
	out := CoachSystem(CoachContext{Stage: stage.AtBat, Depth: 1})

	assert.Contains(t, out, "The 5 Whys")
	assert.Contains(t, out, "Current Stage: At Bat")
	assert.Contains(t, out, "deepest WHY")
	assert.Contains(t, out, "Keep responses under 100 words")
	assert.NotContains(t, out, "Completion Suggestion")
	assert.NotContains(t, out, "Previous insights")
}

func TestCoachSystemCompletionBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		want  bool
	}{
		{"depth three stays open", 3, false},
		{"depth four suggests completion", 4, true},
		{"depth five suggests completion", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := CoachSystem(CoachContext{Stage: stage.FirstBase, Depth: tt.depth})
			assert.Equal(t, tt.want, strings.Contains(out, "Completion Suggestion"))
			if tt.want {
				assert.Contains(t, out, "You've discovered your WHO.")
				assert.Contains(t, out, "Ready to discover WHAT you want at Second Base")
			}
		})
	}
}

func TestCoachSystemStageNotes(t *testing.T) {
	first := CoachSystem(CoachContext{Stage: stage.FirstBase, Depth: 2})
	assert.Contains(t, first, "moment-based WHO discovery")

	second := CoachSystem(CoachContext{Stage: stage.SecondBase, Depth: 2})
	assert.Contains(t, second, "TWO sequences")
	assert.Contains(t, second, "What are you afraid of?")

	third := CoachSystem(CoachContext{Stage: stage.ThirdBase, Depth: 2})
	assert.NotContains(t, third, "TWO sequences")
	assert.NotContains(t, third, "moment-based WHO discovery")
}

func TestCoachSystemInsightsAndIntake(t *testing.T) {
	out := CoachSystem(CoachContext{
		Stage: stage.SecondBase,
		Depth: 1,
		Insights: Insights{
			RootWhy:      "I want my kids to see me finish something",
			RootIdentity: "I am a builder",
		},
		Intake: &Intake{
			BiggestChallenge: "I keep abandoning projects halfway",
			WhyMatters:       "It erodes my confidence",
		},
		UserName: "Dana",
	})

	assert.Contains(t, out, `"root_why": "I want my kids to see me finish something"`)
	assert.Contains(t, out, `"root_identity": "I am a builder"`)
	assert.NotContains(t, out, "root_fear")
	assert.Contains(t, out, "biggest challenge: I keep abandoning projects halfway")
	assert.Contains(t, out, "why it matters to them: It erodes my confidence")
	assert.Contains(t, out, "The user's name is Dana.")
}

func TestWindow(t *testing.T) {
	turns := make([]stage.Turn, 0, 12)
	for i := 0; i < 12; i++ {
		role := stage.RoleUser
		if i%2 == 1 {
			role = stage.RoleAssistant
		}
		turns = append(turns, stage.Turn{Role: role, Content: strings.Repeat("x", i+1)})
	}

	got := Window(turns, 10)
	assert.Len(t, got, 10)
	assert.Equal(t, strings.Repeat("x", 3), got[0].Content)
	assert.Equal(t, strings.Repeat("x", 12), got[9].Content)

	withSystem := []stage.Turn{
		{Role: "system", Content: "ignored"},
		{Role: stage.RoleUser, Content: "hello"},
	}
	got = Window(withSystem, 0)
	assert.Len(t, got, 1)
	assert.Equal(t, stage.RoleUser, got[0].Role)
}
