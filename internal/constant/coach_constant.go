package constant

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"

	JourneyTypeBusiness = "business"
	JourneyTypePersonal = "personal"
)

// GeneratorFallbackMessage is persisted as the assistant turn when the text
// generator fails. Depth does not advance with it.
const GeneratorFallbackMessage = "I'm having trouble processing that right now. Can you try again?"

// Opening messages injected as the first assistant turn of each stage, at
// depth 1, when a stage has no messages yet.
const (
	OpeningAtBat = `Let's get started. We're here to discover your deepest WHY - the real reason behind what you do. Not surface-level answers, but the truth.

Here's my first question: What do you want? Be specific - don't give me generic answers like "I want to be happy." What do you ACTUALLY want?`

	OpeningFirstBase = `You've discovered your WHY. Now let's discover WHO you really are.

Here's my question: When you strip away your job title, your roles, and what others expect of you - who are you at your core? What makes you uniquely YOU? Be specific. Don't give me labels or roles.`

	OpeningSecondBase = `You've discovered your WHY and WHO. Now let's dig into WHAT you truly want and what's stopping you.

First, let's explore your desires. What do you REALLY want? Not what you think you should want, not what others expect - what do YOU actually want?`

	// OpeningThirdBase is a template: the chat service fills the placeholder
	// with a recap of the captured insights.
	OpeningThirdBase = `You've discovered your WHY, WHO, and WHAT. Now let's map out HOW you'll actually make it happen.

%sHere's my question: What's the biggest obstacle standing between you and what you want? Not the surface-level excuse - what's REALLY stopping you from moving forward right now?`

	OpeningHomePlate = `You've discovered your WHY, WHO, WHAT, and HOW. This is incredible progress. Now let's explore why it MATTERS.

Here's my question: Why does this journey truly matter? Not just to you - what's the ripple effect? What legacy are you creating? What makes this sustainable for the long term?`
)

// SecondBaseTransitionMessage pivots the dual-sequence stage from desires to
// fears. It is injected as an assistant turn at depth 1 once the desire
// sequence completes; the contained marker ("What are you afraid of") is how
// later reads locate the sequence boundary.
const SecondBaseTransitionMessage = `Good. You've discovered what you truly want. Now let's explore what's stopping you.

What are you afraid of? What obstacles stand in your way? What fears hold you back from pursuing what you really want?`
