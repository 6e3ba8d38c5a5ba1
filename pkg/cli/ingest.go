package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/propdex/propdex/pkg/adapter"
	"github.com/propdex/propdex/pkg/usecase/index"
	"github.com/urfave/cli/v3"
)

func ingestCommand() *cli.Command {
	var (
		cfg        config
		inputPath  string
		corpusPath string
		dimension  int64
		show       int64
		verify     int64
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Input text: file path, '-' for stdin, or gs://bucket/object",
			Sources:     cli.EnvVars("PROPDEX_INPUT"),
			Destination: &inputPath,
		},
		&cli.StringFlag{
			Name:        "corpus",
			Usage:       "YAML corpus file listing documents to ingest",
			Sources:     cli.EnvVars("PROPDEX_CORPUS"),
			Destination: &corpusPath,
		},
		&cli.IntFlag{
			Name:        "dimension",
			Usage:       "Embedding vector dimension",
			Value:       index.DefaultDimension,
			Sources:     cli.EnvVars("PROPDEX_DIMENSION"),
			Destination: &dimension,
		},
		&cli.IntFlag{
			Name:        "show",
			Aliases:     []string{"n"},
			Usage:       "Number of propositions to echo after upload",
			Value:       10,
			Sources:     cli.EnvVars("PROPDEX_SHOW"),
			Destination: &show,
		},
		&cli.IntFlag{
			Name:        "verify",
			Usage:       "Number of records to fetch back for verification",
			Value:       5,
			Sources:     cli.EnvVars("PROPDEX_VERIFY"),
			Destination: &verify,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "ingest",
		Usage: "Extract propositions from text, embed them, and upsert into the index",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			text, err := loadInput(ctx, inputPath, corpusPath)
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			uc := index.New(repo, gemini,
				index.WithOutput(c.Root().Writer),
				index.WithDimension(int(dimension)),
			)

			result, err := uc.Ingest(ctx, text, index.IngestOptions{
				Show:   int(show),
				Verify: int(verify),
			})
			if err != nil {
				return goerr.Wrap(err, "ingest failed")
			}

			fmt.Fprintf(c.Root().Writer, "\nRun %s: %d paragraphs, %d propositions indexed\n",
				result.RunID, result.Paragraphs, len(result.Propositions))
			return nil
		},
	}
}

// loadInput resolves the pipeline input text. A corpus file wins over
// --input; with neither, the built-in sample text is used.
func loadInput(ctx context.Context, inputPath, corpusPath string) (string, error) {
	switch {
	case corpusPath != "":
		c, err := loadCorpus(corpusPath)
		if err != nil {
			return "", err
		}
		return c.text(), nil

	case inputPath != "":
		return adapter.LoadText(ctx, inputPath)

	default:
		return index.SampleText, nil
	}
}
