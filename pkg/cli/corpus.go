package cli

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

type corpusDocument struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

type corpus struct {
	Documents []corpusDocument `yaml:"documents"`
}

func loadCorpus(path string) (*corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read corpus file", goerr.V("path", path))
	}

	var c corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, goerr.Wrap(err, "failed to parse corpus file", goerr.V("path", path))
	}

	if len(c.Documents) == 0 {
		return nil, goerr.New("corpus file has no documents", goerr.V("path", path))
	}

	return &c, nil
}

// text joins all document bodies with blank lines so each document
// contributes its own paragraphs to the pipeline.
func (c *corpus) text() string {
	texts := make([]string, 0, len(c.Documents))
	for _, doc := range c.Documents {
		if t := strings.TrimSpace(doc.Text); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, "\n\n")
}
