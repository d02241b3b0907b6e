package service

import (
	"strings"

	"shariahaudit-backend/models"
)

// Rule maps reason text containing any of its keywords to a label.
type Rule struct {
	Keywords []string
	Label    string
}

// RuleSet is an ordered list of rules evaluated first-match-wins over the
// lowercased reason text, with a fallback label when nothing matches. It is
// a pluggable strategy: the orchestrator only calls Classify, so a
// model-based classifier can replace the keyword tables without touching
// orchestration.
type RuleSet struct {
	rules    []Rule
	fallback string
}

func NewRuleSet(rules []Rule, fallback string) *RuleSet {
	return &RuleSet{rules: rules, fallback: fallback}
}

// Classify returns the label of the first matching rule, or the fallback.
// An empty reason always classifies as the fallback.
func (rs *RuleSet) Classify(reason string) string {
	lower := strings.ToLower(reason)
	for _, rule := range rs.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Label
			}
		}
	}
	return rs.fallback
}

// DefaultSeverityRules grades how serious a violation is from its reason
// text. Riba findings are always high severity.
func DefaultSeverityRules() *RuleSet {
	return NewRuleSet([]Rule{
		{Keywords: []string{"riba"}, Label: models.SeverityHigh},
		{Keywords: []string{"gharar", "uncertainty"}, Label: models.SeverityMedium},
		{Keywords: []string{"minor issue", "technicality"}, Label: models.SeverityLow},
	}, models.SeverityLow)
}

// DefaultCategoryRules buckets a violation by the principle it offends.
func DefaultCategoryRules() *RuleSet {
	return NewRuleSet([]Rule{
		{Keywords: []string{"riba"}, Label: models.CategoryRiba},
		{Keywords: []string{"gharar", "uncertainty"}, Label: models.CategoryGharar},
		{Keywords: []string{"haram activity", "prohibited sector"}, Label: models.CategoryHaram},
		{Keywords: []string{"maysir"}, Label: models.CategoryMaysir},
	}, models.CategoryOther)
}
