package domain

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
)

// Diagnostic is a typed recommendation or warning produced by one
// consistency rule. Diagnostics are regenerated on every pass and never
// persisted independently of the inputs that produced them.
type Diagnostic struct {
	Severity        Severity `json:"severity"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	SuggestedAction string   `json:"suggestedAction,omitempty"`
}
