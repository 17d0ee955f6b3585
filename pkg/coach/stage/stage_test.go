package stage

import "testing"

func TestNextOrder(t *testing.T) {
	tests := []struct {
		from Stage
		want Stage
	}{
		{AtBat, FirstBase},
		{FirstBase, SecondBase},
		{SecondBase, ThirdBase},
		{ThirdBase, HomePlate},
		{HomePlate, Completed},
		{Completed, Completed},
	}
	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Errorf("%s.Next() = %s, want %s", tt.from, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse("second_base"); err != nil {
		t.Errorf("Parse(second_base) error: %v", err)
	}
	if _, err := Parse("fourth_base"); err == nil {
		t.Error("Parse(fourth_base) succeeded, want error")
	}
	if _, err := Parse("/second-base"); err == nil {
		t.Error("Parse accepted a route path, want error")
	}
}

func TestProgressSteps(t *testing.T) {
	want := map[Stage]int{
		AtBat:      20,
		FirstBase:  40,
		SecondBase: 60,
		ThirdBase:  80,
		HomePlate:  100,
		Completed:  100,
	}
	for s, p := range want {
		if got := s.Progress(); got != p {
			t.Errorf("%s.Progress() = %d, want %d", s, got, p)
		}
	}
}

func TestNextDepthClamp(t *testing.T) {
	depth := MinDepth
	for i := 0; i < 10; i++ {
		depth = NextDepth(depth)
		if depth > MaxDepth {
			t.Fatalf("depth exceeded cap: %d", depth)
		}
	}
	if depth != MaxDepth {
		t.Errorf("depth = %d after repeated increments, want %d", depth, MaxDepth)
	}
}

func TestCurrentDepth(t *testing.T) {
	turns := []Turn{
		{Role: RoleAssistant, Content: "opening", Depth: 1},
		{Role: RoleUser, Content: "answer", Depth: 1},
		{Role: RoleAssistant, Content: "press deeper", Depth: 2},
		{Role: RoleUser, Content: "deeper answer", Depth: 2},
	}
	if got := CurrentDepth(turns); got != 2 {
		t.Errorf("CurrentDepth = %d, want 2", got)
	}
	if got := CurrentDepth(nil); got != MinDepth {
		t.Errorf("CurrentDepth(empty) = %d, want %d", got, MinDepth)
	}
	if got := CurrentDepth([]Turn{{Role: RoleUser, Depth: 3}}); got != MinDepth {
		t.Errorf("CurrentDepth(user only) = %d, want %d", got, MinDepth)
	}
}

func TestSequenceSplit(t *testing.T) {
	desireOnly := []Turn{
		{Role: RoleAssistant, Content: "what do you want?", Depth: 1},
		{Role: RoleUser, Content: "to sail", Depth: 1},
	}
	if got := CurrentSequence(desireOnly); got != SequenceDesire {
		t.Errorf("CurrentSequence = %d, want desire", got)
	}
	d, f := SplitSequences(desireOnly)
	if len(d) != 2 || len(f) != 0 {
		t.Errorf("SplitSequences = (%d, %d), want (2, 0)", len(d), len(f))
	}

	full := append(append([]Turn{}, desireOnly...),
		Turn{Role: RoleAssistant, Content: "Good. You've discovered what you truly want. Now let's explore what's stopping you.\n\nWhat are you afraid of?", Depth: 1},
		Turn{Role: RoleUser, Content: "failing publicly", Depth: 1},
		Turn{Role: RoleAssistant, Content: "why does that scare you?", Depth: 2},
	)
	if got := CurrentSequence(full); got != SequenceFear {
		t.Errorf("CurrentSequence = %d, want fear", got)
	}
	d, f = SplitSequences(full)
	if len(d) != 2 || len(f) != 3 {
		t.Errorf("SplitSequences = (%d, %d), want (2, 3)", len(d), len(f))
	}
	// Depth restarts at the transition turn.
	if got := CurrentDepth(f); got != 2 {
		t.Errorf("fear-sequence depth = %d, want 2", got)
	}

	// A user merely quoting the marker must not flip the sequence.
	quoted := append(append([]Turn{}, desireOnly...),
		Turn{Role: RoleUser, Content: "you keep asking What are you afraid of", Depth: 1},
	)
	if got := CurrentSequence(quoted); got != SequenceDesire {
		t.Errorf("user-quoted marker flipped sequence to %d", got)
	}
}

func TestLastAssistantContent(t *testing.T) {
	turns := []Turn{
		{Role: RoleAssistant, Content: "first"},
		{Role: RoleUser, Content: "reply"},
		{Role: RoleAssistant, Content: "the root insight"},
		{Role: RoleUser, Content: "thanks"},
	}
	if got := LastAssistantContent(turns); got != "the root insight" {
		t.Errorf("LastAssistantContent = %q", got)
	}
	if got := LastAssistantContent(nil); got != "" {
		t.Errorf("LastAssistantContent(empty) = %q, want empty", got)
	}
}
