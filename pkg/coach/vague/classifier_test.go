package vague

import (
	"strings"
	"testing"
)

func TestClassifyTooShort(t *testing.T) {
	tests := []struct {
		name   string
		answer string
	}{
		{name: "empty", answer: ""},
		{name: "single word", answer: "freedom"},
		{name: "four words", answer: "I want real freedom"},
		{name: "four words with pattern keyword", answer: "money money money money"},
		{name: "whitespace padded", answer: "   just   three  words   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.answer)
			if !got.IsVague {
				t.Fatalf("IsVague = false, want true")
			}
			if got.Reason != TooShortReason {
				t.Errorf("Reason = %q, want %q", got.Reason, TooShortReason)
			}
			if got.Challenge != TooShortChallenge {
				t.Errorf("Challenge = %q, want %q", got.Challenge, TooShortChallenge)
			}
		})
	}
}

func TestClassifyPatternBank(t *testing.T) {
	tests := []struct {
		name       string
		answer     string
		wantReason string
	}{
		{
			name:       "generic happiness",
			answer:     "Honestly I want to be happy with my life",
			wantReason: "Generic happiness/success statements",
		},
		{
			name:       "hedging",
			answer:     "I'm not sure what I actually want here",
			wantReason: "Avoidance or uncertainty",
		},
		{
			name:       "should language",
			answer:     "I should spend more hours building my own company",
			wantReason: "Should statements indicate external expectations",
		},
		{
			name:       "vague altruism",
			answer:     "My dream is to help people everywhere around me",
			wantReason: "Vague altruistic statements",
		},
		{
			name:       "generic money goal",
			answer:     "Getting real financial freedom for my whole family",
			wantReason: "Generic financial goals",
		},
		{
			name:       "vague self improvement",
			answer:     "Becoming a better person is my main target",
			wantReason: "Vague self-improvement",
		},
		{
			name:       "no time excuse",
			answer:     "There is just no time left in my week",
			wantReason: "Time constraints as excuses",
		},
		{
			name:       "case insensitive",
			answer:     "I WANT TO BE SUCCESSFUL in everything I touch",
			wantReason: "Generic happiness/success statements",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.answer)
			if !got.IsVague {
				t.Fatalf("IsVague = false, want true")
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if got.Challenge == "" {
				t.Error("Challenge is empty, want canned challenge")
			}
		})
	}
}

func TestClassifyPatternPrecedence(t *testing.T) {
	// Hedging (rule 2) and should-language (rule 3) both match; the
	// earlier rule in the bank must win.
	got := Classify("I'm not sure, maybe I should try harder at work")
	if !got.IsVague {
		t.Fatal("IsVague = false, want true")
	}
	if got.Reason != "Avoidance or uncertainty" {
		t.Errorf("Reason = %q, want earlier rule to take precedence", got.Reason)
	}

	// A long answer with a single "should" is still flagged: the pattern
	// bank runs before any length-based logic after the short check.
	long := "When it comes down to it my work matters because it lets my family live " +
		"the life we built together and I know deep down that it is what I have to do"
	got = Classify(long)
	if !got.IsVague {
		t.Fatal("IsVague = false for should-language answer, want true")
	}
	if got.Reason != "Should statements indicate external expectations" {
		t.Errorf("Reason = %q, want should rule", got.Reason)
	}
}

func TestClassifyIntellectualizing(t *testing.T) {
	base := "I think my career matters a lot and I think the reason is complicated because " +
		"I believe in building things and I suppose the work itself is the point and " +
		"I think that has always driven every single choice I have ever made"

	got := Classify(base)
	if !got.IsVague {
		t.Fatal("IsVague = false, want true for think-heavy answer")
	}
	if got.Reason != IntellectualizingReason {
		t.Errorf("Reason = %q, want %q", got.Reason, IntellectualizingReason)
	}

	// One feeling phrase flips the verdict.
	withFeel := base + " and honestly I feel proud of that"
	got = Classify(withFeel)
	if got.IsVague {
		t.Errorf("IsVague = true with a feel phrase present, want false (reason %q)", got.Reason)
	}

	// Short answers are never flagged for intellectualizing even with the
	// same think density.
	short := "I think I believe I suppose I think it matters"
	got = Classify(short)
	if got.IsVague && got.Reason == IntellectualizingReason {
		t.Error("short answer flagged as intellectualizing, want pattern/short handling only")
	}
}

func TestClassifyNotVague(t *testing.T) {
	answers := []string{
		"My father lost his shop when I was twelve and watching that shaped everything I chase now",
		"I feel alive when I teach teenagers how to box on Saturday mornings",
		"Building a cabin with my own hands before I turn forty",
	}
	for _, answer := range answers {
		got := Classify(answer)
		if got.IsVague {
			t.Errorf("Classify(%q) flagged vague (%s), want not vague", answer, got.Reason)
		}
		if got.Reason != "" || got.Challenge != "" {
			t.Errorf("non-vague result carries reason/challenge: %+v", got)
		}
	}
}

func TestClassifyTokenCounting(t *testing.T) {
	// Exactly five tokens passes the length gate and reaches the bank.
	got := Classify(strings.Join([]string{"one", "two", "three", "four", "five"}, " "))
	if got.Reason == TooShortReason {
		t.Error("five-token answer classified too short, want pattern evaluation")
	}
}
