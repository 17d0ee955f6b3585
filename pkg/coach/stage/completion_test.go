package stage

import "testing"

func TestPhraseDetector(t *testing.T) {
	d := PhraseDetector{}

	tests := []struct {
		name  string
		stage Stage
		reply string
		want  bool
	}{
		{
			name:  "suggestion with next base phrase",
			stage: AtBat,
			reply: "You've discovered your WHY. Ready to move forward? Ready to discover WHO you really are at First Base? Or would you like to explore this deeper?",
			want:  true,
		},
		{
			name:  "suggestion phrase alone is not enough",
			stage: AtBat,
			reply: "Good - we're getting somewhere. Ready to explore that feeling some more?",
			want:  false,
		},
		{
			name:  "next base phrase alone is not enough",
			stage: AtBat,
			reply: "At first base we'll look at who you are. But first: why does that matter to YOU?",
			want:  false,
		},
		{
			name:  "discovery acknowledgement with next base phrase",
			stage: FirstBase,
			reply: "You have discovered your WHO - a builder who refuses to quit. Next we discover what you want.",
			want:  true,
		},
		{
			name:  "discovery acknowledgement without next base phrase",
			stage: FirstBase,
			reply: "You've discovered your WHO. Sit with that for a moment.",
			want:  false,
		},
		{
			name:  "phrases for a different stage do not fire",
			stage: ThirdBase,
			reply: "Ready to discover WHO you really are at First Base?",
			want:  false,
		},
		{
			name:  "third base completion",
			stage: ThirdBase,
			reply: "This is your root obstacle and your plan around it. Ready to explore why it MATTERS at Home Plate?",
			want:  true,
		},
		{
			name:  "home plate completion points at the report",
			stage: HomePlate,
			reply: "You've discovered your legacy. Ready to see your complete journey report?",
			want:  true,
		},
		{
			name:  "case insensitive",
			stage: SecondBase,
			reply: "READY TO MAP how you'll make it happen at THIRD BASE?",
			want:  true,
		},
		{
			name:  "completed stage never fires",
			stage: Completed,
			reply: "Ready to move on? You've discovered your WHY.",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.reply, tt.stage); got != tt.want {
				t.Errorf("Detect(%q, %s) = %v, want %v", tt.reply, tt.stage, got, tt.want)
			}
		})
	}
}

func TestEngineEvaluate(t *testing.T) {
	e := NewEngine(nil)

	// Depth signal: completion exactly when the incremented depth hits the cap.
	out := e.Evaluate(AtBat, 3, "keep going, why does that matter?")
	if out.Depth != 4 || out.Complete {
		t.Errorf("Evaluate depth 3 = %+v, want depth 4, incomplete", out)
	}
	out = e.Evaluate(AtBat, 4, "keep going, why does that matter?")
	if out.Depth != 5 || !out.Complete {
		t.Errorf("Evaluate depth 4 = %+v, want depth 5, complete", out)
	}

	// Depth stays clamped on turns after the cap, and stays complete.
	out = e.Evaluate(AtBat, 5, "still talking")
	if out.Depth != 5 || !out.Complete {
		t.Errorf("Evaluate depth 5 = %+v, want clamped and complete", out)
	}

	// Heuristic signal is sufficient on its own, at any depth.
	out = e.Evaluate(AtBat, 1, "You've discovered your WHY. Ready to discover WHO you really are at First Base?")
	if out.Depth != 2 || !out.Complete {
		t.Errorf("Evaluate heuristic = %+v, want depth 2, complete", out)
	}
}

type neverDetector struct{}

func (neverDetector) Detect(string, Stage) bool { return false }

func TestEngineCustomDetector(t *testing.T) {
	e := NewEngine(neverDetector{})
	out := e.Evaluate(AtBat, 1, "You've discovered your WHY. Ready to discover WHO you really are at First Base?")
	if out.Complete {
		t.Error("custom detector ignored")
	}
}
