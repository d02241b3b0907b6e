package models

// Severity levels assigned to non-compliant clauses.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Violation categories assigned to non-compliant clauses.
const (
	CategoryRiba   = "riba"
	CategoryGharar = "gharar"
	CategoryHaram  = "haram activities"
	CategoryMaysir = "maysir"
	CategoryOther  = "other"
)

// ClauseAssessment is the per-clause audit result. Severity, category and
// the suggested fix are populated only when the clause is non-compliant.
type ClauseAssessment struct {
	Clause       string `json:"clause"`
	Compliant    bool   `json:"compliant"`
	Reason       string `json:"reason"`
	SourceDoc    string `json:"source_doc,omitempty"`
	SourceText   string `json:"source_text,omitempty"`
	Severity     string `json:"severity,omitempty"`
	Category     string `json:"category,omitempty"`
	SuggestedFix string `json:"suggested_fix,omitempty"`
}

// AuditVerdict aggregates a full audit of one product description.
// OverallCompliance is the AND over all assessments and is vacuously true
// when no suspicious clauses were found.
type AuditVerdict struct {
	ProductSummary    ExtractedProduct   `json:"product_summary"`
	SuspiciousClauses []ClauseAssessment `json:"suspicious_clauses"`
	Violations        []ClauseAssessment `json:"violations"`
	OverallCompliance bool               `json:"overall_compliance"`
}
