package generate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

func TestNewOpenAIGeneratorRequiresKey(t *testing.T) {
	_, err := NewOpenAIGenerator(&Config{}, nil)
	assert.Error(t, err)
}

func TestNewOpenAIGeneratorMintsBatchID(t *testing.T) {
	cfg := &Config{APIKey: "sk-test"}
	_, err := NewOpenAIGenerator(cfg, nil)
	assert.NoError(t, err)
	_, err = uuid.Parse(cfg.BatchID)
	assert.NoError(t, err)
}

func TestNewOpenAIGeneratorKeepsValidBatchID(t *testing.T) {
	keep := uuid.NewString()
	cfg := &Config{APIKey: "sk-test", BatchID: keep}
	_, err := NewOpenAIGenerator(cfg, nil)
	assert.NoError(t, err)
	assert.Equal(t, keep, cfg.BatchID)
}

func TestNewChatRequestSetsResponseFormat(t *testing.T) {
	req := newChatRequest("gpt-4o-mini", "generate things", openai.ChatCompletionResponseFormatTypeJSONObject)
	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, "generate things", req.Messages[1].Content)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)

	req = newChatRequest("gpt-4o-mini", "list things", openai.ChatCompletionResponseFormatTypeText)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeText, req.ResponseFormat.Type)
}

func TestEnsureBatchIDReplacesMalformed(t *testing.T) {
	minted := ensureBatchID("not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", minted)
	_, err := uuid.Parse(minted)
	assert.NoError(t, err)

	assert.NotEqual(t, ensureBatchID(""), ensureBatchID(""))
}
