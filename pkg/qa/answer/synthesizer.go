package answer

import (
	"context"
	"fmt"
	"log"

	"db-qa-be/pkg/llm"
	"db-qa-be/pkg/qa/prompt"
)

// Synthesizer produces the natural-language answer from the
// question/query/result triple.
type Synthesizer struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewSynthesizer(provider llm.LLMProvider, logger *log.Logger) *Synthesizer {
	return &Synthesizer{
		provider: provider,
		logger:   logger,
	}
}

func (s *Synthesizer) Synthesize(ctx context.Context, question, query, result string) (string, error) {
	answer, err := s.provider.Generate(ctx, prompt.AnswerPrompt(question, query, result))
	if err != nil {
		return "", fmt.Errorf("answer synthesis failed: %w", err)
	}

	s.logger.Printf("[SYNTHESIZER] Answer generated (%d chars)", len(answer))
	return answer, nil
}
