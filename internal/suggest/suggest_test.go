package suggest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	text    string
	err     error
	calls   atomic.Int32
	prompts []string
	mu      sync.Mutex
	release chan struct{}
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.release != nil {
		<-f.release
	}
	return f.text, f.err
}

// echoGenerator blocks until released and answers with the context it was given.
type echoGenerator struct {
	calls   atomic.Int32
	release chan struct{}
	mu      sync.Mutex
	ctxErrs []error
}

func (g *echoGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls.Add(1)
	<-g.release
	g.mu.Lock()
	g.ctxErrs = append(g.ctxErrs, ctx.Err())
	g.mu.Unlock()
	_, rest, _ := strings.Cut(prompt, `Contexto: "`)
	topic, _, _ := strings.Cut(rest, `"`)
	return "ideas para " + topic, nil
}

func TestSuggest(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured returns a message, never panics", func(t *testing.T) {
		var outcomes []Outcome
		s := New(nil, func(o Outcome) { outcomes = append(outcomes, o) })

		assert.False(t, s.Configured())
		got := s.Suggest(ctx, "origin", "le gusta el pádel")
		assert.Equal(t, NotConfiguredMessage, got)
		assert.Contains(t, got, "API KEY")
		assert.Equal(t, []Outcome{OutcomeNotConfigured}, outcomes)
	})

	t.Run("nil service is unconfigured", func(t *testing.T) {
		var s *Service
		assert.False(t, s.Configured())
	})

	t.Run("failure is a different message", func(t *testing.T) {
		s := New(&fakeGenerator{err: errors.New("503")}, nil)
		got := s.Suggest(ctx, "origin", "pádel")
		assert.Equal(t, FailedMessage, got)
		assert.NotEqual(t, NotConfiguredMessage, got)
	})

	t.Run("empty response", func(t *testing.T) {
		s := New(&fakeGenerator{text: "  \n"}, nil)
		assert.Equal(t, EmptyMessage, s.Suggest(ctx, "origin", "pádel"))
	})

	t.Run("returns trimmed text and wraps the prompt", func(t *testing.T) {
		gen := &fakeGenerator{text: "1. Pala\n2. Pelotas\n3. Muñequera\n"}
		s := New(gen, nil)

		assert.Equal(t, "1. Pala\n2. Pelotas\n3. Muñequera", s.Suggest(ctx, "origin", " pádel "))
		require.Len(t, gen.prompts, 1)
		assert.Contains(t, gen.prompts[0], `Contexto: "pádel"`)
		assert.Contains(t, gen.prompts[0], "3 sugerencias")
	})

	t.Run("blank prompt makes no call", func(t *testing.T) {
		gen := &fakeGenerator{text: "x"}
		var outcomes []Outcome
		s := New(gen, func(o Outcome) { outcomes = append(outcomes, o) })

		assert.Empty(t, s.Suggest(ctx, "origin", "   "))
		assert.Zero(t, gen.calls.Load())
		assert.Empty(t, outcomes)
	})

	t.Run("concurrent calls from one key share a request", func(t *testing.T) {
		gen := &fakeGenerator{text: "ideas", release: make(chan struct{})}
		s := New(gen, nil)

		const n = 5
		results := make(chan string, n)
		for i := 0; i < n; i++ {
			go func() { results <- s.Suggest(ctx, "same-origin", "pádel") }()
		}

		// Give the goroutines time to join the in-flight call before releasing it.
		require.Eventually(t, func() bool { return gen.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		close(gen.release)

		for i := 0; i < n; i++ {
			assert.Equal(t, "ideas", <-results)
		}
		assert.LessOrEqual(t, gen.calls.Load(), int32(n))
		assert.GreaterOrEqual(t, gen.calls.Load(), int32(1))
	})

	t.Run("different prompts from one key are not shared", func(t *testing.T) {
		gen := &echoGenerator{release: make(chan struct{})}
		s := New(gen, nil)

		padel := make(chan string, 1)
		cooking := make(chan string, 1)
		go func() { padel <- s.Suggest(ctx, "origin-1", "le gusta el pádel") }()
		require.Eventually(t, func() bool { return gen.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
		go func() { cooking <- s.Suggest(ctx, "origin-1", "le gusta cocinar") }()
		require.Eventually(t, func() bool { return gen.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
		close(gen.release)

		assert.Equal(t, "ideas para le gusta el pádel", <-padel)
		assert.Equal(t, "ideas para le gusta cocinar", <-cooking)
	})

	t.Run("a caller leaving does not fail the others", func(t *testing.T) {
		gen := &echoGenerator{release: make(chan struct{})}
		s := New(gen, nil)

		leaderCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		leader := make(chan string, 1)
		follower := make(chan string, 1)
		go func() { leader <- s.Suggest(leaderCtx, "origin-1", "pádel") }()
		require.Eventually(t, func() bool { return gen.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
		go func() { follower <- s.Suggest(ctx, "origin-1", "pádel") }()
		time.Sleep(50 * time.Millisecond)

		cancel()
		assert.Equal(t, FailedMessage, <-leader)

		close(gen.release)
		assert.Equal(t, "ideas para pádel", <-follower)

		gen.mu.Lock()
		defer gen.mu.Unlock()
		for _, err := range gen.ctxErrs {
			assert.NoError(t, err, "the upstream request must not see the leader's cancellation")
		}
	})

	t.Run("different keys do not block each other", func(t *testing.T) {
		gen := &fakeGenerator{text: "ideas"}
		s := New(gen, nil)
		assert.Equal(t, "ideas", s.Suggest(ctx, "a", "x"))
		assert.Equal(t, "ideas", s.Suggest(ctx, "b", "x"))
		assert.Equal(t, int32(2), gen.calls.Load())
	})
}

func TestFromAPIKey(t *testing.T) {
	gen, err := FromAPIKey(context.Background(), "", "")
	require.NoError(t, err)
	assert.Nil(t, gen)
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("le gusta leer")
	assert.True(t, strings.HasPrefix(p, "Eres un experto ayudante de Santa Claus."))
	assert.Contains(t, p, "Lista numerada")
}
