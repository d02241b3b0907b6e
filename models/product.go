package models

import "fmt"

// ExtractedProduct is the structured view of a product description.
// Every field has a usable zero value so downstream code never branches
// on absence.
type ExtractedProduct struct {
	ProductType     string   `json:"product_type"`
	MainParties     []string `json:"main_parties"`
	ContractType    string   `json:"contract_type"`
	KeyClauses      []string `json:"key_clauses"`
	FinancialTerms  []string `json:"financial_terms"`
	SuspiciousTerms []string `json:"suspicious_terms"`
}

// DefaultExtractedProduct returns a fully default-valued product so that
// a failed or partial extraction still yields a complete structure.
func DefaultExtractedProduct() ExtractedProduct {
	return ExtractedProduct{
		MainParties:     []string{},
		KeyClauses:      []string{},
		FinancialTerms:  []string{},
		SuspiciousTerms: []string{},
	}
}

// ProductFromMap merges a loosely parsed mapping onto the defaults.
// Missing or wrongly typed fields keep their default values.
func ProductFromMap(m map[string]interface{}) ExtractedProduct {
	p := DefaultExtractedProduct()
	if m == nil {
		return p
	}
	if v, ok := stringField(m, "product_type"); ok {
		p.ProductType = v
	}
	if v, ok := stringField(m, "contract_type"); ok {
		p.ContractType = v
	}
	if v, ok := stringListField(m, "main_parties"); ok {
		p.MainParties = v
	}
	if v, ok := stringListField(m, "key_clauses"); ok {
		p.KeyClauses = v
	}
	if v, ok := stringListField(m, "financial_terms"); ok {
		p.FinancialTerms = v
	}
	if v, ok := stringListField(m, "suspicious_terms"); ok {
		p.SuspiciousTerms = v
	}
	return p
}

func stringField(m map[string]interface{}, key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func stringListField(m map[string]interface{}, key string) ([]string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			out = append(out, t)
		case map[string]interface{}:
			// Models occasionally return objects where strings were asked
			// for; keep the text field if there is one.
			if s, ok := t["text"].(string); ok {
				out = append(out, s)
			}
		default:
			out = append(out, fmt.Sprintf("%v", t))
		}
	}
	return out, true
}
