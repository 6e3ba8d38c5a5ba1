package index

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/propdex/propdex/pkg/adapter"
	"google.golang.org/genai"
)

//go:embed prompt/decompose.md
var decomposePromptRaw string

var decomposePromptTmpl = template.Must(template.New("decompose").Parse(decomposePromptRaw))

//go:embed prompt/structure.md
var structurePromptRaw string

// sentencesPayload is the schema-constrained output of the structuring
// call: an ordered list of proposition sentences.
type sentencesPayload struct {
	Sentences []string `json:"sentences"`
}

// geminiExtractor decomposes a paragraph with two Gemini calls: a
// free-text rewrite into propositions, then a structuring call whose
// response is constrained to the sentences JSON schema.
type geminiExtractor struct {
	gemini adapter.Gemini
	schema *genai.Schema
}

// NewGeminiExtractor creates the LLM-backed extractor.
func NewGeminiExtractor(gemini adapter.Gemini) Extractor {
	return &geminiExtractor{
		gemini: gemini,
		schema: sentencesSchema,
	}
}

func (x *geminiExtractor) Extract(ctx context.Context, paragraph string) ([]string, error) {
	paragraph = strings.TrimSpace(paragraph)
	if paragraph == "" {
		return nil, nil
	}

	draft, err := x.decompose(ctx, paragraph)
	if err != nil {
		return nil, err
	}

	return x.structure(ctx, draft)
}

// decompose rewrites the paragraph into proposition sentences as free text.
func (x *geminiExtractor) decompose(ctx context.Context, paragraph string) (string, error) {
	var buf bytes.Buffer
	if err := decomposePromptTmpl.Execute(&buf, map[string]any{
		"Input": paragraph,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute decompose prompt template")
	}

	thinkingBudget := int32(0)
	config := &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  &thinkingBudget,
		},
	}

	contents := []*genai.Content{
		genai.NewContentFromText(buf.String(), genai.RoleUser),
	}

	resp, err := x.gemini.GenerateContent(ctx, contents, config)
	if err != nil {
		return "", goerr.Wrap(err, "failed to decompose paragraph")
	}

	return responseText(resp)
}

// structure coerces the free-text draft into an ordered list of strings.
func (x *geminiExtractor) structure(ctx context.Context, draft string) ([]string, error) {
	thinkingBudget := int32(0)
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   x.schema,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  &thinkingBudget,
		},
	}

	contents := []*genai.Content{
		genai.NewContentFromText(structurePromptRaw+"\n\n"+draft, genai.RoleUser),
	}

	resp, err := x.gemini.GenerateContent(ctx, contents, config)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to structure propositions")
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	var payload sentencesPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, goerr.Wrap(err, "failed to parse structured propositions", goerr.V("response", text))
	}

	return payload.Sentences, nil
}

// responseText extracts the concatenated text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", goerr.New("no content generated")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	if text.Len() == 0 {
		return "", goerr.New("empty content generated")
	}

	return text.String(), nil
}
