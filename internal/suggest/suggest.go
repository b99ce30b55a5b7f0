// Package suggest asks a text-generation service for gift ideas.
//
// The boundary never fails: every outcome, including a missing API key, is a string the
// dashboard can show as is.
package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"
)

// Messages returned instead of ideas.
const (
	NotConfiguredMessage = "⚠️ Para usar la IA, necesitas configurar una API KEY válida."
	FailedMessage        = "Santa está teniendo problemas técnicos (Error de IA). Inténtalo de nuevo."
	EmptyMessage         = "No se pudieron generar ideas en este momento."
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Outcome classifies a Suggest call for metrics.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeEmpty         Outcome = "empty"
	OutcomeFailed        Outcome = "failed"
	OutcomeNotConfigured Outcome = "not_configured"
)

// Service is the failure-contained suggestion collaborator.
type Service struct {
	gen      Generator
	inflight singleflight.Group
	observe  func(Outcome)
}

// New creates a Service. A nil gen means no API key is configured.
// observe, if set, is called once per upstream request.
func New(gen Generator, observe func(Outcome)) *Service {
	return &Service{gen: gen, observe: observe}
}

// Configured reports whether a generator is available.
func (s *Service) Configured() bool {
	return s != nil && s.gen != nil
}

// Suggest returns gift ideas for the context in prompt, or a message explaining why
// there are none. A blank prompt returns "" without calling anything.
//
// Calls with the same key and prompt while one is in flight wait for and share its
// result, so one control cannot issue duplicate concurrent requests. The shared request
// outlives any single caller: a caller that goes away gets FailedMessage, the others
// still get the ideas.
func (s *Service) Suggest(ctx context.Context, key, prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ""
	}
	if !s.Configured() {
		s.record(OutcomeNotConfigured)
		return NotConfiguredMessage
	}

	detached := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(key+"\x00"+prompt, func() (any, error) {
		return s.generate(detached, prompt), nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			slog.Debug("Suggestion shared with in-flight request", "key", key)
		}
		return res.Val.(string)
	case <-ctx.Done():
		slog.Debug("Suggestion abandoned by caller", "key", key, "error", ctx.Err())
		return FailedMessage
	}
}

func (s *Service) generate(ctx context.Context, prompt string) string {
	text, err := s.gen.Generate(ctx, BuildPrompt(prompt))
	if err != nil {
		slog.Error("Gift suggestion request failed", "error", err)
		s.record(OutcomeFailed)
		return FailedMessage
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.record(OutcomeEmpty)
		return EmptyMessage
	}
	s.record(OutcomeOK)
	return text
}

func (s *Service) record(o Outcome) {
	if s != nil && s.observe != nil {
		s.observe(o)
	}
}

// BuildPrompt wraps the participant's description of the recipient in the instructions
// sent to the model.
func BuildPrompt(userContext string) string {
	return fmt.Sprintf(`Eres un experto ayudante de Santa Claus. El usuario busca ideas de regalo.
Contexto: "%s".
Dame 3 sugerencias de regalos originales, divertidas y breves (máximo 10 palabras por idea).
Formato: Lista numerada.`, strings.TrimSpace(userContext))
}
