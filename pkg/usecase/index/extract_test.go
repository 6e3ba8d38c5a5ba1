package index_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/propdex/propdex/pkg/usecase/index"
	"google.golang.org/genai"
)

func TestGeminiExtractorTwoCalls(t *testing.T) {
	mock := &mockGemini{
		responses: []string{
			"ChatGPT was developed by OpenAI.\nChatGPT is a conversational AI model.",
			`{"sentences": ["ChatGPT was developed by OpenAI.", "ChatGPT is a conversational AI model."]}`,
		},
	}

	extractor := index.NewGeminiExtractor(mock)
	sentences, err := extractor.Extract(context.Background(),
		"ChatGPT was developed by OpenAI. It is a conversational AI model.")
	gt.NoError(t, err)

	gt.A(t, sentences).Length(2)
	gt.Equal(t, sentences[0], "ChatGPT was developed by OpenAI.")
	gt.Equal(t, sentences[1], "ChatGPT is a conversational AI model.")

	// First call is the free-text decomposition, second is the
	// schema-constrained structuring call.
	gt.Equal(t, mock.calls, 2)
	gt.A(t, mock.configs).Length(2)
	gt.Equal(t, mock.configs[1].ResponseMIMEType, "application/json")
	gt.V(t, mock.configs[1].ResponseSchema).NotNil()
	gt.Equal(t, mock.configs[1].ResponseSchema.Type, genai.TypeObject)
	gt.V(t, mock.configs[1].ResponseSchema.Properties["sentences"]).NotNil()
	gt.Equal(t, mock.configs[1].ResponseSchema.Properties["sentences"].Type, genai.TypeArray)
}

func TestGeminiExtractorEmptyParagraph(t *testing.T) {
	mock := &mockGemini{responses: []string{"unused"}}

	extractor := index.NewGeminiExtractor(mock)
	sentences, err := extractor.Extract(context.Background(), "   \n ")
	gt.NoError(t, err)
	gt.A(t, sentences).Length(0)
	gt.Equal(t, mock.calls, 0)
}

func TestGeminiExtractorEmptyResult(t *testing.T) {
	mock := &mockGemini{
		responses: []string{
			"(no factual statements)",
			`{"sentences": []}`,
		},
	}

	extractor := index.NewGeminiExtractor(mock)
	sentences, err := extractor.Extract(context.Background(), "Hmm.")
	gt.NoError(t, err)
	gt.A(t, sentences).Length(0)
}

func TestGeminiExtractorMalformedJSON(t *testing.T) {
	mock := &mockGemini{
		responses: []string{
			"Some draft.",
			"not json at all",
		},
	}

	extractor := index.NewGeminiExtractor(mock)
	_, err := extractor.Extract(context.Background(), "A paragraph.")
	gt.Error(t, err)
}

func TestGeminiExtractorPromptCarriesParagraph(t *testing.T) {
	mock := &mockGemini{
		responses: []string{
			"Draft.",
			`{"sentences": ["Draft."]}`,
		},
	}

	extractor := index.NewGeminiExtractor(mock)
	_, err := extractor.Extract(context.Background(), "LangChain allows users to split text.")
	gt.NoError(t, err)

	gt.A(t, mock.generated).Longer(0)
	gt.S(t, mock.generated[0]).Contains("LangChain allows users to split text.")
}
