package domain

// ViewResult is the view name plus optional named data handed to the renderer
type ViewResult struct {
	View string               `json:"view"`
	Data map[string]ResultSet `json:"data,omitempty"`
}

// Model returns the read result attached to the view, if any
func (v ViewResult) Model() (ResultSet, bool) {
	rows, ok := v.Data[ModelKey]
	return rows, ok
}

// OutcomeKind tags the three ways a resolution can end
type OutcomeKind int

const (
	// OutcomeOK is a normal transition to the configured view
	OutcomeOK OutcomeKind = iota
	// OutcomeErrorView is an absorbed execution failure rendered as the error view
	OutcomeErrorView
	// OutcomeFatal is a validation, configuration or system failure
	OutcomeFatal
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeErrorView:
		return "error_view"
	case OutcomeFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of a resolution.
// View is set for OutcomeOK and OutcomeErrorView. Err holds the absorbed
// cause for OutcomeErrorView and the failure for OutcomeFatal.
type Outcome struct {
	Kind OutcomeKind
	View ViewResult
	Err  error
}

// Ok builds a successful outcome
func Ok(view ViewResult) Outcome {
	return Outcome{Kind: OutcomeOK, View: view}
}

// ErrorView builds an outcome that renders the error view
func ErrorView(view ViewResult, cause error) Outcome {
	return Outcome{Kind: OutcomeErrorView, View: view, Err: cause}
}

// Fatal builds a failed outcome
func Fatal(err error) Outcome {
	return Outcome{Kind: OutcomeFatal, Err: err}
}

// Result collapses the outcome into the caller-facing pair. An error view
// is returned like any other view.
func (o Outcome) Result() (ViewResult, error) {
	if o.Kind == OutcomeFatal {
		return ViewResult{}, o.Err
	}
	return o.View, nil
}
