package index_test

import (
	"context"
	"hash/fnv"

	"google.golang.org/genai"
)

// mockGemini implements adapter.Gemini with canned responses and
// deterministic embeddings.
type mockGemini struct {
	responses []string
	calls     int
	configs   []*genai.GenerateContentConfig
	generated []string
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role:  genai.RoleModel,
					Parts: []*genai.Part{{Text: text}},
				},
			},
		},
	}
}

func (m *mockGemini) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.configs = append(m.configs, config)
	for _, c := range contents {
		for _, p := range c.Parts {
			m.generated = append(m.generated, p.Text)
		}
	}

	resp := m.responses[m.calls%len(m.responses)]
	m.calls++
	return textResponse(resp), nil
}

// Embedding returns a deterministic vector derived from the text hash.
func (m *mockGemini) Embedding(ctx context.Context, text string, dimensions int) ([]float32, error) {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vec := make([]float32, dimensions)
	for i := range vec {
		seed = seed*1664525 + 1013904223
		vec[i] = float32(seed%1000)/1000 - 0.5
	}
	return vec, nil
}

// stubExtractor returns the same propositions for every paragraph.
type stubExtractor struct {
	sentences []string
}

func (s *stubExtractor) Extract(ctx context.Context, paragraph string) ([]string, error) {
	return s.sentences, nil
}
