package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dexdogs/physaudit/internal/model"
)

const llmSystemPrompt = "You are a document-understanding service for carbon-market audits. " +
	"Given the name of a Project Design Document, respond with a single JSON object " +
	"and nothing else, with keys: project_id (string), methodology (string), " +
	"extracted_k_value (number, the first-order methane decay constant claimed by the project), " +
	"gas_density (number, methane density in kg/m3). Omit a key entirely if the document " +
	"does not state it. Never invent a decay constant."

// LLMExtractor asks a chat-completion model to read the document and emit
// a structured claim. The audited field remains mandatory: a response
// without it is a MissingValueError, not a zero.
type LLMExtractor struct {
	client *openai.Client
	cfg    model.LLMConfig
}

// NewLLMExtractor creates an LLM-backed extractor
func NewLLMExtractor(cfg model.LLMConfig) (*LLMExtractor, error) {
	if !strings.EqualFold(cfg.Provider, "openai") {
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("LLM extractor requires an API key (set OPENAI_API_KEY)")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &LLMExtractor{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Name identifies the extractor
func (e *LLMExtractor) Name() string { return "llm:" + e.cfg.Model }

// llmClaim is the JSON shape requested from the model. Pointer fields
// distinguish "absent" from "zero".
type llmClaim struct {
	ProjectID       string   `json:"project_id"`
	Methodology     string   `json:"methodology"`
	ExtractedKValue *float64 `json:"extracted_k_value"`
	GasDensity      *float64 `json:"gas_density"`
}

// Extract queries the model and validates its structured response
func (e *LLMExtractor) Extract(ctx context.Context, doc Document) (*model.ClaimRecord, error) {
	timeout := time.Duration(e.cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	maxTokens := e.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     e.cfg.Model,
		MaxTokens: maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llmSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Document: %s (%d bytes)", doc.Name, doc.Size)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("LLM extraction: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("LLM extraction: empty response")
	}

	record, err := parseLLMClaim(resp.Choices[0].Message.Content, doc)
	if err != nil {
		return nil, err
	}
	record.Extractor = e.Name()
	return record, nil
}

// parseLLMClaim decodes the model's JSON into a claim record
func parseLLMClaim(content string, doc Document) (*model.ClaimRecord, error) {
	content = strings.TrimSpace(content)
	// Some models wrap JSON in a fence despite instructions
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var claim llmClaim
	if err := json.Unmarshal([]byte(content), &claim); err != nil {
		return nil, fmt.Errorf("LLM extraction: decode response: %w", err)
	}

	if claim.ExtractedKValue == nil {
		return nil, &MissingValueError{Field: RequiredField, Document: doc.Name}
	}

	values := map[string]float64{RequiredField: *claim.ExtractedKValue}
	if claim.GasDensity != nil {
		values["gas_density"] = *claim.GasDensity
	}

	return &model.ClaimRecord{
		ProjectID:   claim.ProjectID,
		Methodology: claim.Methodology,
		Document:    doc.Name,
		ExtractedAt: time.Now().UTC(),
		Values:      values,
	}, nil
}
