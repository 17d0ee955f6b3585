package stage

import "strings"

// CompletionDetector decides whether an assistant reply is suggesting the
// stage has reached its root insight. It is a soft signal: the user may keep
// digging after it fires. Kept as an interface so the phrase heuristic can be
// swapped for a structured signal without touching the progression logic.
type CompletionDetector interface {
	Detect(reply string, s Stage) bool
}

// PhraseDetector is the lexical heuristic: the reply must pair a generic
// suggestion phrase (or a "discovered" acknowledgement) with a phrase naming
// the next stage's theme.
type PhraseDetector struct{}

var suggestionPhrases = []string{
	"you've discovered your",
	"this is your root",
	"ready to move",
	"ready for the next",
	"ready to discover",
	"ready to explore",
	"ready to map",
	"ready to see",
	"would you like to explore",
	"or would you like",
}

var nextBasePhrases = map[Stage][]string{
	AtBat:      {"first base", "discover who", "who you really are"},
	FirstBase:  {"second base", "discover what", "what you want"},
	SecondBase: {"third base", "map how", "how you'll make it happen"},
	ThirdBase:  {"home plate", "why it matters", "explore why it matters"},
	HomePlate:  {"report", "complete journey", "see your complete"},
	Completed:  {},
}

var discoveryTopics = []string{
	"your why",
	"your who",
	"your what",
	"your how",
	"why it matters",
}

func (PhraseDetector) Detect(reply string, s Stage) bool {
	lower := strings.ToLower(reply)

	hasSuggestion := containsAny(lower, suggestionPhrases)
	hasNextBase := containsAny(lower, nextBasePhrases[s])

	acknowledgesDiscovery := strings.Contains(lower, "discovered") &&
		containsAny(lower, discoveryTopics)

	return (hasSuggestion && hasNextBase) || (acknowledgesDiscovery && hasNextBase)
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
