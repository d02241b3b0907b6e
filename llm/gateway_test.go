package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedCompleter plays back a fixed sequence of responses.
type scriptedCompleter struct {
	responses []string
	errs      []error
	calls     int
}

func (c *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	i := c.calls
	c.calls++
	if i >= len(c.responses) {
		return "", errors.New("script exhausted")
	}
	return c.responses[i], c.errs[i]
}

func newTestGateway(c Completer, policy RetryPolicy) (*Gateway, *[]time.Duration) {
	g := NewGateway(c, policy)
	var slept []time.Duration
	g.sleep = func(d time.Duration) { slept = append(slept, d) }
	return g, &slept
}

func TestGatewayComplete(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 5, InitialBackoff: 2 * time.Second, MaxBackoff: 30 * time.Second}

	t.Run("Should return the first successful response without sleeping", func(t *testing.T) {
		c := &scriptedCompleter{responses: []string{"ok"}, errs: []error{nil}}
		g, slept := newTestGateway(c, policy)

		out, err := g.Complete(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
		assert.Equal(t, 1, c.calls)
		assert.Empty(t, *slept)
	})

	t.Run("Should retry transient failures with doubling backoff", func(t *testing.T) {
		transient := errors.New("upstream 503")
		c := &scriptedCompleter{
			responses: []string{"", "", "ok"},
			errs:      []error{transient, transient, nil},
		}
		g, slept := newTestGateway(c, policy)

		out, err := g.Complete(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
		assert.Equal(t, 3, c.calls)
		assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *slept)
	})

	t.Run("Should cap backoff at the policy ceiling", func(t *testing.T) {
		transient := errors.New("upstream 503")
		c := &scriptedCompleter{
			responses: []string{"", "", "", "", ""},
			errs:      []error{transient, transient, transient, transient, transient},
		}
		g, slept := newTestGateway(c, RetryPolicy{MaxAttempts: 5, InitialBackoff: 10 * time.Second, MaxBackoff: 30 * time.Second})

		_, err := g.Complete(context.Background(), "prompt")
		require.Error(t, err)
		assert.Equal(t, []time.Duration{10 * time.Second, 20 * time.Second, 30 * time.Second, 30 * time.Second}, *slept)
	})

	t.Run("Should treat an empty response as retryable", func(t *testing.T) {
		c := &scriptedCompleter{
			responses: []string{"", "ok"},
			errs:      []error{nil, nil},
		}
		g, _ := newTestGateway(c, policy)

		out, err := g.Complete(context.Background(), "prompt")
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
		assert.Equal(t, 2, c.calls)
	})

	t.Run("Should not retry terminal errors", func(t *testing.T) {
		c := &scriptedCompleter{
			responses: []string{"", "never reached"},
			errs:      []error{Terminal(errors.New("invalid api key")), nil},
		}
		g, slept := newTestGateway(c, policy)

		_, err := g.Complete(context.Background(), "prompt")
		require.Error(t, err)
		assert.True(t, IsTerminal(err))
		assert.Equal(t, 1, c.calls)
		assert.Empty(t, *slept)
	})

	t.Run("Should stop when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := &scriptedCompleter{responses: []string{"ok"}, errs: []error{nil}}
		g, _ := newTestGateway(c, policy)

		_, err := g.Complete(ctx, "prompt")
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, c.calls)
	})

	t.Run("Should surface the last error after exhausting the budget", func(t *testing.T) {
		transient := errors.New("upstream 503")
		c := &scriptedCompleter{
			responses: []string{"", "", ""},
			errs:      []error{transient, transient, transient},
		}
		g, _ := newTestGateway(c, RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Second, MaxBackoff: time.Second})

		_, err := g.Complete(context.Background(), "prompt")
		require.Error(t, err)
		assert.ErrorIs(t, err, transient)
		assert.Contains(t, err.Error(), "after 3 attempts")
		assert.Equal(t, 3, c.calls)
	})
}

func TestTerminalError(t *testing.T) {
	t.Run("Should unwrap to the original error", func(t *testing.T) {
		base := errors.New("bad request")
		err := Terminal(base)
		assert.ErrorIs(t, err, base)
		assert.True(t, IsTerminal(err))
	})

	t.Run("Should detect terminal errors through wrapping", func(t *testing.T) {
		wrapped := errors.Join(errors.New("outer"), Terminal(errors.New("inner")))
		assert.True(t, IsTerminal(wrapped))
	})

	t.Run("Should not flag plain errors", func(t *testing.T) {
		assert.False(t, IsTerminal(errors.New("anything")))
	})
}
