package service

import "fmt"

func extractionPrompt(text string) string {
	return fmt.Sprintf(`You are a Shariah compliance assistant. Analyze the following Islamic finance product description and extract structured information. Return only a JSON object with the following fields:

- "product_type": string
- "main_parties": list of strings
- "contract_type": string
- "key_clauses": list of strings
- "financial_terms": list of strings
- "suspicious_terms": list of clauses or phrases that may conflict with Shariah principles

Text:
%s

Return a valid JSON. Do not include explanations.`, text)
}

func compliancePrompt(clause string) string {
	return fmt.Sprintf(`You are a Shariah compliance expert. Assess the following clause from an Islamic finance product and decide whether it may violate Shariah principles. Provide a JSON response with the following structure:

{
  "clause": "...",
  "compliant": true/false,
  "reason": "..."
}

Clause: "%s"
Only return valid JSON.`, clause)
}

func remediationPrompt(clause string) string {
	return fmt.Sprintf(`A clause in an Islamic finance contract has been flagged as non-compliant:

"%s"

Suggest a Shariah-compliant alternative or modification to make it acceptable.`, clause)
}
