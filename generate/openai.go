package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	tellm "github.com/santiagomed/tellm/sdk"
	"github.com/sashabaranov/go-openai"

	"github.com/uvzlabs/launchpad/course"
	"github.com/uvzlabs/launchpad/logger"
)

type Config struct {
	APIKey    string
	ModelName string
	BatchID   string
	TellmURL  string
}

// OpenAIGenerator is the real ContentGenerator, backed by the OpenAI
// chat completion API.
type OpenAIGenerator struct {
	client      *openai.Client
	config      *Config
	tellmClient *tellm.Client
	logger      logger.Logger
}

func NewOpenAIGenerator(cfg *Config, log logger.Logger) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	cfg.BatchID = ensureBatchID(cfg.BatchID)
	return &OpenAIGenerator{
		client:      openai.NewClient(cfg.APIKey),
		config:      cfg,
		tellmClient: tellm.NewClient(cfg.TellmURL),
		logger:      log,
	}, nil
}

// ensureBatchID validates the configured tellm batch id, minting a
// fresh one when it is absent or malformed. One batch groups all calls
// made by a single generator instance.
func ensureBatchID(s string) string {
	if _, err := uuid.Parse(s); err != nil {
		return uuid.NewString()
	}
	return s
}

func (g *OpenAIGenerator) GenerateConcepts(ctx context.Context, d course.Descriptor) ([]course.Concept, error) {
	const op = "generate concepts"
	// Concepts come back as a top-level array, which JSON mode cannot
	// produce; plain text plus span extraction handles it.
	response, err := g.getCompletion(ctx, getConceptsPrompt(d), openai.ChatCompletionResponseFormatTypeText)
	if err != nil {
		return nil, failf(op, err, "completion request failed")
	}
	concepts, err := parseConcepts(response, d)
	if err != nil {
		return nil, err
	}
	return concepts, nil
}

func (g *OpenAIGenerator) GenerateContent(ctx context.Context, concept course.Concept) (*course.Content, error) {
	const op = "generate content"
	response, err := g.getCompletion(ctx, getContentPrompt(concept), openai.ChatCompletionResponseFormatTypeJSONObject)
	if err != nil {
		return nil, failf(op, err, "completion request failed")
	}
	content, err := parseContent(response, concept)
	if err != nil {
		return nil, err
	}
	return content, nil
}

func newChatRequest(model, prompt string, format openai.ChatCompletionResponseFormatType) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: getSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: format},
	}
}

// getCompletion sends a request to the OpenAI API and returns the generated text
func (g *OpenAIGenerator) getCompletion(ctx context.Context, prompt string, format openai.ChatCompletionResponseFormatType) (string, error) {
	resp, err := g.client.CreateChatCompletion(
		ctx,
		newChatRequest(g.config.ModelName, prompt, format),
	)

	e := &openai.APIError{}
	if errors.As(err, &e) {
		switch e.HTTPStatusCode {
		case 401:
			// unauthorized
			return "", fmt.Errorf("unauthorized: invalid OpenAI API key")
		case 429:
			// rate limiting or engine overload (wait and retry)
			return "", fmt.Errorf("rate limited by OpenAI API")
		case 500:
			// openai server error (retry)
			return "", fmt.Errorf("OpenAI server error")
		default:
			// unhandled
			return "", fmt.Errorf("OpenAI API error: %v", e)
		}
	}
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}
	usage := resp.Usage
	res := resp.Choices[0].Message.Content
	err = g.tellmClient.Log(g.config.BatchID, prompt, res, g.config.ModelName, usage.PromptTokens, usage.CompletionTokens)
	if err != nil {
		g.logger.WithField("warning", err).Warn("failed to log to tellm")
	}

	return res, nil
}
