package search

import "strings"

// Built-in AAOIFI knowledge, keyed by concept keywords. This backs the
// agent when no external search service is reachable.

type knowledgeEntry struct {
	keywords []string
	results  []StandardResult
}

var builtinKnowledge = []knowledgeEntry{
	{
		keywords: []string{"riba", "interest"},
		results: []StandardResult{
			{
				Title:      "Prohibition of Riba (Interest)",
				Snippet:    "Riba is strictly prohibited in Islamic finance. It refers to any excess compensation without due consideration. This includes interest on loans and investments.",
				Source:     "AAOIFI Shariah Standard No. 21",
				SourceType: "builtin",
			},
			{
				Title:      "Types of Riba",
				Snippet:    "Riba al-nasiah (riba of delay) occurs in loans where payment is delayed. Riba al-fadl (riba of excess) occurs in exchanges of similar commodities with unequal amounts.",
				Source:     "Islamic Financial Services Board",
				SourceType: "builtin",
			},
		},
	},
	{
		keywords: []string{"gharar", "uncertainty"},
		results: []StandardResult{
			{
				Title:      "Prohibition of Gharar (Uncertainty)",
				Snippet:    "Gharar refers to excessive uncertainty or ambiguity in contracts. Islamic finance requires that all terms and conditions be clear, transparent and certain.",
				Source:     "AAOIFI Shariah Standard No. 31",
				SourceType: "builtin",
			},
		},
	},
	{
		keywords: []string{"maysir", "gambling"},
		results: []StandardResult{
			{
				Title:      "Prohibition of Maysir (Gambling)",
				Snippet:    "Maysir refers to any form of gambling or speculation. Islamic finance prohibits transactions that involve gambling or pure speculation without productive economic activity.",
				Source:     "AAOIFI Shariah Standard No. 14",
				SourceType: "builtin",
			},
		},
	},
	{
		keywords: []string{"murabaha"},
		results: []StandardResult{
			{
				Title:      "Murabaha (Cost-Plus Financing)",
				Snippet:    "Murabaha is a sale contract where the seller explicitly declares the cost and profit margin. In Islamic banking, the bank purchases an asset and sells it to the client at a markup.",
				Source:     "AAOIFI Shariah Standard No. 8",
				SourceType: "builtin",
			},
		},
	},
	{
		keywords: []string{"ijarah", "lease"},
		results: []StandardResult{
			{
				Title:      "Ijarah (Leasing)",
				Snippet:    "Ijarah is a contract where the owner transfers the usufruct of an asset to another person for an agreed period at an agreed consideration.",
				Source:     "AAOIFI Shariah Standard No. 9",
				SourceType: "builtin",
			},
		},
	},
	{
		keywords: []string{"sukuk", "bond"},
		results: []StandardResult{
			{
				Title:      "Sukuk (Islamic Bonds)",
				Snippet:    "Sukuk are certificates representing ownership in an underlying asset, service, project, or investment. Unlike conventional bonds, they don't involve interest payments.",
				Source:     "AAOIFI Shariah Standard No. 17",
				SourceType: "builtin",
			},
		},
	},
	{
		keywords: []string{"takaful", "insurance"},
		results: []StandardResult{
			{
				Title:      "Takaful (Islamic Insurance)",
				Snippet:    "Takaful is based on mutual cooperation where participants contribute to a fund that is used to support members who suffer a defined loss.",
				Source:     "AAOIFI Shariah Standard No. 26",
				SourceType: "builtin",
			},
		},
	},
	{
		keywords: []string{"penalty", "default"},
		results: []StandardResult{
			{
				Title:      "Late Payment Guidelines",
				Snippet:    "Late payment penalties that generate profit for the lender are not permissible. However, penalties directed to charity may be allowed to discourage deliberate default.",
				Source:     "AAOIFI Shariah Standard No. 3",
				SourceType: "builtin",
			},
		},
	},
}

var generalPrinciples = []StandardResult{
	{
		Title:      "General Shariah Compliance Principles",
		Snippet:    "Islamic finance prohibits interest (riba), excessive uncertainty (gharar), gambling (maysir), and investment in prohibited activities (haram).",
		Source:     "General Shariah Principles",
		SourceType: "builtin",
	},
}

var standardDetails = map[string]StandardDetail{
	"AAOIFI Shariah Standard No. 8": {
		Title:   "Murabaha to the Purchase Orderer",
		Summary: "This standard defines the rules for Murabaha transactions where a client requests an institution to purchase an asset that the client promises to buy after the institution acquires it.",
		KeyRequirements: []string{
			"The institution must actually own the asset before selling it",
			"There must be two separate contracts: purchase by institution and sale to client",
			"The sale price and profit margin must be clearly disclosed",
			"The asset must be lawful according to Shariah",
		},
		Source: "Accounting and Auditing Organization for Islamic Financial Institutions",
	},
	"AAOIFI Shariah Standard No. 9": {
		Title:   "Ijarah and Ijarah Muntahia Bittamleek",
		Summary: "This standard covers the rules for leasing (Ijarah) and lease ending with ownership (Ijarah Muntahia Bittamleek).",
		KeyRequirements: []string{
			"The leased asset must be valuable, identifiable and usable",
			"Maintenance of the leased asset is the responsibility of the lessor",
			"The rental amount and period must be clearly specified",
			"The transfer of ownership in Ijarah Muntahia Bittamleek requires a separate contract",
		},
		Source: "Accounting and Auditing Organization for Islamic Financial Institutions",
	},
	"AAOIFI Shariah Standard No. 17": {
		Title:   "Investment Sukuk",
		Summary: "This standard covers the rules for Sukuk (Islamic bonds) which represent common shares in the ownership of assets, usufruct, services, or certain projects.",
		KeyRequirements: []string{
			"Sukuk must represent ownership in real assets, not debt",
			"Returns must be derived from the performance of the underlying assets",
			"Trading of Sukuk representing debt is restricted",
			"Sukuk structures must avoid interest-based elements",
		},
		Source: "Accounting and Auditing Organization for Islamic Financial Institutions",
	},
}

// builtinSearch scans the knowledge table for query keywords.
func builtinSearch(query string, maxResults int) []StandardResult {
	lower := strings.ToLower(query)

	var results []StandardResult
	for _, entry := range builtinKnowledge {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				results = append(results, entry.results...)
				break
			}
		}
		if len(results) >= maxResults {
			return results[:maxResults]
		}
	}

	if len(results) == 0 {
		results = append(results, generalPrinciples...)
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
