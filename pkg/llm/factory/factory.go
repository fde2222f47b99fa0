package factory

import (
	"fmt"

	"db-qa-be/pkg/llm"
	"db-qa-be/pkg/llm/gemini"
	"db-qa-be/pkg/llm/ollama"
	"db-qa-be/pkg/llm/openai"
)

// NewLLMProvider builds the configured LLM backend. A missing credential for
// a keyed provider or an unknown provider name is a startup error.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini", "google_genai":
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY not found in environment variables")
		}
		return gemini.NewGeminiProvider(apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not found in environment variables")
		}
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
