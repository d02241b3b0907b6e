package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Completer is the outbound boundary to the text-generation service.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrEmptyResponse marks a call that reached the service but produced
	// no usable text. It is transient and eligible for retry.
	ErrEmptyResponse = errors.New("empty model response")
)

// TerminalError marks a failure that must not consume retry budget:
// auth errors, malformed requests, blocked prompts.
type TerminalError struct {
	Err error
}

func (e *TerminalError) Error() string { return "terminal: " + e.Err.Error() }
func (e *TerminalError) Unwrap() error { return e.Err }

// Terminal wraps err as non-retryable.
func Terminal(err error) error { return &TerminalError{Err: err} }

// IsTerminal reports whether err (or anything it wraps) is non-retryable.
func IsTerminal(err error) bool {
	var te *TerminalError
	return errors.As(err, &te)
}

// RetryPolicy bounds the retry loop: attempts, initial backoff and the
// backoff ceiling. Backoff doubles each attempt up to the ceiling.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// CriticalPolicy is used for extraction and compliance calls whose output
// the pipeline cannot proceed without.
var CriticalPolicy = RetryPolicy{
	MaxAttempts:    5,
	InitialBackoff: 2 * time.Second,
	MaxBackoff:     30 * time.Second,
}

// RelaxedPolicy is used for lower-criticality calls such as remediation
// suggestions.
var RelaxedPolicy = RetryPolicy{
	MaxAttempts:    3,
	InitialBackoff: 2 * time.Second,
	MaxBackoff:     30 * time.Second,
}

// Gateway wraps a Completer with bounded retry and backoff discipline.
// Responses are never cached; identical prompts may be re-issued and the
// service is not assumed deterministic across calls.
type Gateway struct {
	completer Completer
	policy    RetryPolicy
	sleep     func(time.Duration)
}

// NewGateway creates a gateway over completer with the given policy.
func NewGateway(completer Completer, policy RetryPolicy) *Gateway {
	return &Gateway{
		completer: completer,
		policy:    policy,
		sleep:     time.Sleep,
	}
}

// Complete issues the prompt, retrying transient failures per the policy.
// Terminal failures and context cancellation propagate immediately. After
// the attempt budget is exhausted the last error is surfaced.
func (g *Gateway) Complete(ctx context.Context, prompt string) (string, error) {
	backoff := g.policy.InitialBackoff
	var lastErr error

	for attempt := 0; attempt < g.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			g.sleep(backoff)
			backoff *= 2
			if backoff > g.policy.MaxBackoff {
				backoff = g.policy.MaxBackoff
			}
		}

		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := g.completer.Complete(ctx, prompt)
		if err == nil && text != "" {
			return text, nil
		}
		if err == nil {
			err = ErrEmptyResponse
		}
		if IsTerminal(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		lastErr = err
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", g.policy.MaxAttempts, lastErr)
}
