package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"shariahaudit-backend/llm"
	"shariahaudit-backend/models"

	"golang.org/x/time/rate"
)

var (
	ErrExtractionFailed = errors.New("failed to extract structured data")
	ErrGatewayNotSet    = errors.New("reasoning gateway not set")
)

// failedParseReason is the conservative fail-closed verdict when the
// compliance response cannot be parsed: ambiguity must not silently pass a
// clause as compliant.
const failedParseReason = "Failed to parse compliance data"

// sourceExcerptLen bounds the supporting passage attached to an assessment.
const sourceExcerptLen = 300

// SourceSearcher is the read side of the vector index.
type SourceSearcher interface {
	Search(ctx context.Context, query string, k int) ([]models.ScoredChunk, error)
}

// Pacer spaces calls to the reasoning service. The default is a token
// bucket sized to the provider quota; tests inject a no-op.
type Pacer interface {
	Wait(ctx context.Context) error
}

// RatePacer adapts x/time/rate to the Pacer interface.
type RatePacer struct {
	limiter *rate.Limiter
}

// NewRatePacer allows one call per interval with no burst.
func NewRatePacer(interval time.Duration) *RatePacer {
	return &RatePacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *RatePacer) Wait(ctx context.Context) error { return p.limiter.Wait(ctx) }

// AuditService orchestrates the audit pipeline: extraction, per-clause
// compliance checking, source attribution, classification and remediation.
// Every step per audit request is strictly sequential; only whole requests
// run concurrently.
type AuditService struct {
	gateway        *llm.Gateway // extraction and compliance (critical retry budget)
	suggestGateway *llm.Gateway // remediation suggestions (relaxed retry budget)
	index          SourceSearcher
	pacer          Pacer
	severityRules  *RuleSet
	categoryRules  *RuleSet
}

// AuditServiceOption is a functional option for AuditService.
type AuditServiceOption func(*AuditService)

// WithGateway sets the gateway for extraction and compliance calls.
func WithGateway(g *llm.Gateway) AuditServiceOption {
	return func(s *AuditService) { s.gateway = g }
}

// WithSuggestionGateway sets the gateway for remediation calls.
func WithSuggestionGateway(g *llm.Gateway) AuditServiceOption {
	return func(s *AuditService) { s.suggestGateway = g }
}

// WithSourceIndex sets the standards index used for attribution.
func WithSourceIndex(idx SourceSearcher) AuditServiceOption {
	return func(s *AuditService) { s.index = idx }
}

// WithPacer sets the rate pacer between reasoning-service calls.
func WithPacer(p Pacer) AuditServiceOption {
	return func(s *AuditService) { s.pacer = p }
}

// WithSeverityRules replaces the severity classification strategy.
func WithSeverityRules(rs *RuleSet) AuditServiceOption {
	return func(s *AuditService) { s.severityRules = rs }
}

// WithCategoryRules replaces the category classification strategy.
func WithCategoryRules(rs *RuleSet) AuditServiceOption {
	return func(s *AuditService) { s.categoryRules = rs }
}

// NewAuditService creates a new audit service.
func NewAuditService(opts ...AuditServiceOption) *AuditService {
	s := &AuditService{
		severityRules: DefaultSeverityRules(),
		categoryRules: DefaultCategoryRules(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract pulls a structured product view out of free text. The loose
// parser result is merged onto defaults so every field is usable even when
// the model omits it. Gateway exhaustion is the only failure surfaced.
func (s *AuditService) Extract(ctx context.Context, text string) (models.ExtractedProduct, error) {
	if s.gateway == nil {
		return models.DefaultExtractedProduct(), ErrGatewayNotSet
	}

	response, err := s.gateway.Complete(ctx, extractionPrompt(text))
	if err != nil {
		return models.DefaultExtractedProduct(), fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	return models.ProductFromMap(llm.ParseLoose(response)), nil
}

// complianceResponse is the strict shape expected from the compliance
// prompt. Unlike extraction, this call is expected to return well-formed
// JSON directly.
type complianceResponse struct {
	Clause    string `json:"clause"`
	Compliant bool   `json:"compliant"`
	Reason    string `json:"reason"`
}

// CheckClause classifies a single clause. A response that does not parse
// as JSON fails closed to non-compliant with a diagnostic reason. The
// returned assessment always carries the input clause text, never the
// model's paraphrase.
func (s *AuditService) CheckClause(ctx context.Context, clause string) models.ClauseAssessment {
	assessment := models.ClauseAssessment{
		Clause:    clause,
		Compliant: false,
		Reason:    failedParseReason,
	}
	if s.gateway == nil {
		return assessment
	}

	response, err := s.gateway.Complete(ctx, compliancePrompt(clause))
	if err != nil {
		log.Printf("Compliance check failed for clause %q: %v", truncateClause(clause), err)
		return assessment
	}

	var parsed complianceResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(response)), &parsed); err != nil {
		log.Printf("Compliance response not valid JSON for clause %q", truncateClause(clause))
		return assessment
	}

	assessment.Compliant = parsed.Compliant
	assessment.Reason = parsed.Reason
	return assessment
}

// FindSource attaches the best supporting passage for a clause, or nil
// when the index has no answer. Index errors degrade to no attribution.
func (s *AuditService) FindSource(ctx context.Context, clause string) *models.SourceRef {
	if s.index == nil {
		return nil
	}

	results, err := s.index.Search(ctx, clause, 1)
	if err != nil {
		log.Printf("Failed to find source for clause %q: %v", truncateClause(clause), err)
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	return &models.SourceRef{
		SourceDoc:  results[0].SourceDocument,
		SourceText: truncateRunes(results[0].Text, sourceExcerptLen),
	}
}

// SuggestImprovement asks for a Shariah-compliant rewording of a flagged
// clause. The response is free text, not parsed.
func (s *AuditService) SuggestImprovement(ctx context.Context, clause string) (string, error) {
	gw := s.suggestGateway
	if gw == nil {
		gw = s.gateway
	}
	if gw == nil {
		return "", ErrGatewayNotSet
	}

	response, err := gw.Complete(ctx, remediationPrompt(clause))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// AuditProduct runs the full pipeline over one product description. Only
// extraction failure aborts the audit; any per-clause failure degrades
// that clause's record and the audit continues.
func (s *AuditService) AuditProduct(ctx context.Context, text string) (*models.AuditVerdict, error) {
	product, err := s.Extract(ctx, text)
	if err != nil {
		return nil, err
	}

	assessments := make([]models.ClauseAssessment, 0, len(product.SuspiciousTerms))
	for _, clause := range product.SuspiciousTerms {
		if s.pacer != nil {
			if err := s.pacer.Wait(ctx); err != nil {
				return nil, err
			}
		}

		assessment := s.CheckClause(ctx, clause)

		if ref := s.FindSource(ctx, clause); ref != nil {
			assessment.SourceDoc = ref.SourceDoc
			assessment.SourceText = ref.SourceText
		}

		if !assessment.Compliant {
			assessment.Severity = s.severityRules.Classify(assessment.Reason)
			assessment.Category = s.categoryRules.Classify(assessment.Reason)

			fix, err := s.SuggestImprovement(ctx, clause)
			if err != nil {
				log.Printf("Failed to suggest improvement for clause %q: %v", truncateClause(clause), err)
			} else {
				assessment.SuggestedFix = fix
			}
		}

		assessments = append(assessments, assessment)
	}

	violations := make([]models.ClauseAssessment, 0)
	overall := true
	for _, a := range assessments {
		if !a.Compliant {
			violations = append(violations, a)
			overall = false
		}
	}

	return &models.AuditVerdict{
		ProductSummary:    product,
		SuspiciousClauses: assessments,
		Violations:        violations,
		OverallCompliance: overall,
	}, nil
}

// truncateRunes cuts s to at most n runes. Standards text and clauses may
// carry Arabic terms, so slicing must land on rune boundaries.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func truncateClause(clause string) string {
	if utf8.RuneCountInString(clause) > 60 {
		return truncateRunes(clause, 60) + "..."
	}
	return clause
}
