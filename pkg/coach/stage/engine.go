package stage

// Engine applies the progression rules for a single exchange. It owns no
// state: callers pass the depth in effect before the exchange and persist
// whatever the outcome says.
type Engine struct {
	detector CompletionDetector
}

func NewEngine(detector CompletionDetector) *Engine {
	if detector == nil {
		detector = PhraseDetector{}
	}
	return &Engine{detector: detector}
}

// Outcome describes how a successful assistant exchange lands.
type Outcome struct {
	// Depth the assistant reply is persisted at (incremented, clamped).
	Depth int
	// Complete is true when either signal fires: depth hit MaxDepth or the
	// reply itself suggests the root insight was reached. Either alone is
	// sufficient.
	Complete bool
}

// Evaluate computes the outcome for a generator reply produced at
// depthBefore. A failed generation never reaches here: failures keep the old
// depth and no completion is evaluated.
func (e *Engine) Evaluate(s Stage, depthBefore int, reply string) Outcome {
	depth := NextDepth(depthBefore)
	return Outcome{
		Depth:    depth,
		Complete: depth >= MaxDepth || e.detector.Detect(reply, s),
	}
}
