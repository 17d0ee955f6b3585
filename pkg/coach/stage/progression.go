package stage

import "strings"

// Depth bounds for the probing sequence within a stage (or sub-sequence).
const (
	MinDepth = 1
	MaxDepth = 5
)

// NextDepth increments a depth counter, clamped at MaxDepth.
func NextDepth(depth int) int {
	if depth >= MaxDepth {
		return MaxDepth
	}
	return depth + 1
}

// Message roles as stored on conversation turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is the minimal view of a persisted message this package needs.
type Turn struct {
	Role    string
	Content string
	Depth   int
}

// Sequence identifies the sub-phase inside the dual-sequence SecondBase.
type Sequence int

const (
	SequenceDesire Sequence = 1
	SequenceFear   Sequence = 2
)

// TransitionMarker identifies the injected pivot from the desire sequence
// to the fear sequence. Depth resets to MinDepth at this turn.
const TransitionMarker = "What are you afraid of"

// CurrentDepth returns the depth of the latest assistant turn, or MinDepth
// for an empty (or user-only) history. The assistant turn carries the
// authoritative depth: user turns are persisted at the depth in effect
// before the exchange resolves.
func CurrentDepth(turns []Turn) int {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == RoleAssistant && turns[i].Depth > 0 {
			return turns[i].Depth
		}
	}
	return MinDepth
}

// CurrentSequence reports which SecondBase sub-phase the history is in.
// Before the transition marker appears the conversation is probing desires.
func CurrentSequence(turns []Turn) Sequence {
	if transitionIndex(turns) >= 0 {
		return SequenceFear
	}
	return SequenceDesire
}

// SplitSequences divides a SecondBase history at the transition marker.
// The marker turn itself belongs to the fear sequence.
func SplitSequences(turns []Turn) (desire, fear []Turn) {
	idx := transitionIndex(turns)
	if idx < 0 {
		return turns, nil
	}
	return turns[:idx], turns[idx:]
}

func transitionIndex(turns []Turn) int {
	for i, t := range turns {
		if t.Role == RoleAssistant && strings.Contains(t.Content, TransitionMarker) {
			return i
		}
	}
	return -1
}

// LastAssistantContent returns the verbatim content of the latest assistant
// turn, which is what gets captured as a root insight.
func LastAssistantContent(turns []Turn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == RoleAssistant {
			return turns[i].Content
		}
	}
	return ""
}
