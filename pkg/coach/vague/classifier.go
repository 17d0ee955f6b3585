package vague

import (
	"regexp"
	"strings"
)

// Result is the verdict for a single user answer.
type Result struct {
	IsVague   bool
	Reason    string
	Challenge string
}

// Rule pairs a case-insensitive pattern with the canned pushback sent
// back to the user when it matches.
type Rule struct {
	Pattern   *regexp.Regexp
	Reason    string
	Challenge string
}

const (
	TooShortReason    = "Answer too short"
	TooShortChallenge = "That's not enough. Give me more. What are you really trying to say?"

	IntellectualizingReason    = "Too much intellectualizing, not enough feeling"
	IntellectualizingChallenge = "You're thinking too much. What do you FEEL? Forget what you think you should feel. What's the actual feeling?"
)

// Patterns is the ordered rule bank. Evaluation is first-match-wins, so
// order matters: "should" fires before the altruism rule even when both match.
var Patterns = []Rule{
	{
		Pattern:   regexp.MustCompile(`(?i)(?:i want to be|want to be|i want|i hope|i wish)(?:\s+to be)?\s+(?:happy|successful|fulfilled|content|satisfied|better|good)`),
		Reason:    "Generic happiness/success statements",
		Challenge: "Everyone wants to be happy. That's not what you want - that's what you think you should want. What does happiness actually mean for YOU?",
	},
	{
		Pattern:   regexp.MustCompile(`(?i)(?:i don't know|don't know|i'm not sure|not sure|maybe|perhaps|i guess)`),
		Reason:    "Avoidance or uncertainty",
		Challenge: "I don't accept 'I don't know.' You know more than you think. Take a guess. What's the first thing that comes to mind?",
	},
	{
		Pattern:   regexp.MustCompile(`(?i)(?:should|supposed to|have to|need to|must|ought to)`),
		Reason:    "Should statements indicate external expectations",
		Challenge: "Stop saying 'should.' That's what others expect. What do YOU actually want? Forget what you 'should' want.",
	},
	{
		Pattern:   regexp.MustCompile(`(?i)(?:make a difference|help people|impact|change the world|give back)`),
		Reason:    "Vague altruistic statements",
		Challenge: "That's nice, but everyone wants to help people. What specifically? Who exactly? What problem keeps you up at night?",
	},
	{
		Pattern:   regexp.MustCompile(`(?i)(?:financial freedom|financial security|money|wealth|rich|financially free)`),
		Reason:    "Generic financial goals",
		Challenge: "Money is a means, not an end. What would financial freedom actually let you DO? What are you buying with that freedom?",
	},
	{
		Pattern:   regexp.MustCompile(`(?i)(?:good person|better person|good human|become better)`),
		Reason:    "Vague self-improvement",
		Challenge: "Good by whose standards? What does 'good' actually mean to you? What would being a 'better person' look like in your daily life?",
	},
	{
		Pattern:   regexp.MustCompile(`(?i)(?:no time|too busy|overwhelmed|don't have time|never have time)`),
		Reason:    "Time constraints as excuses",
		Challenge: "Time is a choice. What are you prioritizing over this? Why is that more important? What would need to change for this to matter enough?",
	},
}

var (
	thinkPhrases = regexp.MustCompile(`(?i)\bi think\b|\bi believe\b|\bi suppose\b`)
	feelPhrases  = regexp.MustCompile(`(?i)\bi feel\b|\bi sense\b|\bit feels\b`)
)

// Classify evaluates a raw user answer against the rule set. It is a pure
// function: priority is (1) too short, (2) pattern bank in order, (3)
// intellectualizing imbalance, (4) not vague.
func Classify(answer string) Result {
	tokens := strings.Fields(answer)

	if len(tokens) < 5 {
		return Result{
			IsVague:   true,
			Reason:    TooShortReason,
			Challenge: TooShortChallenge,
		}
	}

	for _, rule := range Patterns {
		if rule.Pattern.MatchString(answer) {
			return Result{
				IsVague:   true,
				Reason:    rule.Reason,
				Challenge: rule.Challenge,
			}
		}
	}

	// Lots of "I think" with zero "I feel" reads as deflection, but only
	// flag substantial answers with a clear imbalance.
	if len(tokens) > 20 {
		thinkCount := len(thinkPhrases.FindAllString(answer, -1))
		feelCount := len(feelPhrases.FindAllString(answer, -1))
		if thinkCount > 3 && feelCount == 0 {
			return Result{
				IsVague:   true,
				Reason:    IntellectualizingReason,
				Challenge: IntellectualizingChallenge,
			}
		}
	}

	return Result{IsVague: false}
}
