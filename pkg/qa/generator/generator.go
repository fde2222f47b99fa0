package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"db-qa-be/pkg/llm"
	"db-qa-be/pkg/qa/prompt"
)

// QueryOutput is the structured-output contract for the generation step:
// a single field carrying one SQL statement.
type QueryOutput struct {
	Query string `json:"query" jsonschema:"required,description=Syntactically valid SQL query."`
}

// Generator turns a natural-language question into one SQL statement via a
// structured model call. It never substitutes a default query: a failed or
// unparseable model response fails the step.
type Generator struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewGenerator(provider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{
		provider: provider,
		logger:   logger,
	}
}

func (g *Generator) Generate(ctx context.Context, question, dialect, tableInfo string, topK int) (string, error) {
	messages := prompt.NewQueryBuilder(dialect, topK, tableInfo, question).Messages()

	raw, err := g.provider.Chat(ctx, messages,
		llm.WithTemperature(0),
		llm.WithResponseSchema("query_output", &QueryOutput{}),
	)
	if err != nil {
		return "", fmt.Errorf("query generation failed: %w", err)
	}

	query, err := parseQueryOutput(raw)
	if err != nil {
		return "", err
	}

	g.logger.Printf("[GENERATOR] Generated query: %s", query)
	return query, nil
}

func parseQueryOutput(raw string) (string, error) {
	var output QueryOutput
	if err := json.Unmarshal([]byte(stripMarkdownFence(raw)), &output); err != nil {
		return "", fmt.Errorf("model returned no parseable structured output: %w", err)
	}
	if strings.TrimSpace(output.Query) == "" {
		return "", fmt.Errorf("model returned an empty query")
	}
	return strings.TrimSpace(output.Query), nil
}

// Some models wrap structured output in a markdown code fence despite the
// schema constraint.
func stripMarkdownFence(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		return strings.TrimSpace(trimmed)
	}
	return trimmed
}
