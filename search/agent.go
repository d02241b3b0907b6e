// Package search is the external standards lookup fallback, used when the
// local index is disabled or lacks coverage. The audit core never depends
// on it succeeding.
package search

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// StandardResult is one external search hit.
type StandardResult struct {
	Title      string `json:"title"`
	Snippet    string `json:"snippet"`
	Source     string `json:"source"`
	SourceType string `json:"source_type"`
}

// StandardDetail describes one standard in depth.
type StandardDetail struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	KeyRequirements []string `json:"key_requirements"`
	Source          string   `json:"source"`
}

// Agent searches external sources for Shariah standards. When the remote
// service is unavailable or unconfigured it answers from a built-in
// knowledge table so callers always get something usable.
type Agent struct {
	client   *resty.Client
	apiKey   string
	endpoint string
}

// NewAgent creates a search agent. These are lower-criticality calls, so
// the retry budget is three attempts with the usual 2s..30s backoff.
func NewAgent(apiKey, endpoint string) *Agent {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(30 * time.Second)

	return &Agent{
		client:   client,
		apiKey:   apiKey,
		endpoint: endpoint,
	}
}

type searchAPIResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic_results"`
}

// SearchStandards returns up to maxResults hits for a standards query,
// preferring the configured remote service and falling back to the
// built-in table.
func (a *Agent) SearchStandards(ctx context.Context, query string, maxResults int) []StandardResult {
	if maxResults <= 0 {
		maxResults = 3
	}

	if a.apiKey != "" {
		results, err := a.searchRemote(ctx, query, maxResults)
		if err != nil {
			log.Printf("External standards search failed: %v. Falling back to built-in knowledge.", err)
		} else if len(results) > 0 {
			return results
		}
	}

	return builtinSearch(query, maxResults)
}

func (a *Agent) searchRemote(ctx context.Context, query string, maxResults int) ([]StandardResult, error) {
	var parsed searchAPIResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("X-API-Key", a.apiKey).
		SetQueryParams(map[string]string{
			"q":   fmt.Sprintf("islamic finance shariah standards %s", query),
			"num": fmt.Sprintf("%d", maxResults),
		}).
		SetResult(&parsed).
		Get(a.endpoint)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search API error: %d", resp.StatusCode())
	}

	results := make([]StandardResult, 0, maxResults)
	for _, item := range parsed.OrganicResults {
		results = append(results, StandardResult{
			Title:      item.Title,
			Snippet:    item.Snippet,
			Source:     item.Link,
			SourceType: "search",
		})
		if len(results) == maxResults {
			break
		}
	}
	return results, nil
}

// StandardDetails looks up one standard by reference, tolerating partial
// matches against the built-in table.
func (a *Agent) StandardDetails(reference string) StandardDetail {
	if detail, ok := standardDetails[reference]; ok {
		return detail
	}
	lower := strings.ToLower(reference)
	for ref, detail := range standardDetails {
		if strings.Contains(strings.ToLower(ref), lower) {
			return detail
		}
	}
	return StandardDetail{
		Title:           "Standard Not Found",
		Summary:         fmt.Sprintf("Detailed information for %s is not available.", reference),
		KeyRequirements: []string{},
		Source:          "N/A",
	}
}

// ApplicableStandards lists standards relevant to a product type.
func (a *Agent) ApplicableStandards(productType string) []StandardResult {
	lower := strings.ToLower(productType)

	var results []StandardResult
	for _, entry := range builtinKnowledge {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				results = append(results, entry.results...)
				break
			}
		}
	}

	// General principles always apply.
	results = append(results, generalPrinciples...)
	return results
}
