package adapter_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/propdex/propdex/pkg/adapter"
	"google.golang.org/genai"
)

func setupGemini(t *testing.T) *adapter.GeminiClient {
	apiKey := os.Getenv("TEST_GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("TEST_GEMINI_API_KEY is not set")
	}

	ctx := context.Background()
	client, err := adapter.NewGemini(ctx, apiKey)
	gt.NoError(t, err)
	return client
}

func TestGenerateContent(t *testing.T) {
	client := setupGemini(t)
	ctx := context.Background()

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: "Decompose into simple sentences: ChatGPT was developed by OpenAI and is a conversational AI model."},
			},
		},
	}

	resp, err := client.GenerateContent(ctx, contents, nil)
	gt.NoError(t, err)

	if resp == nil ||
		len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 ||
		resp.Candidates[0].Content.Parts[0].Text == "" {
		t.Fatal("unexpected response")
	}

	t.Log("response:", resp.Candidates[0].Content.Parts[0].Text)
}

func TestEmbedding(t *testing.T) {
	client := setupGemini(t)
	ctx := context.Background()

	vec, err := client.Embedding(ctx, "Text splitting in LangChain is a critical feature.", 384)
	gt.NoError(t, err)
	gt.A(t, vec).Length(384)
}
