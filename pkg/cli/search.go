package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/propdex/propdex/pkg/usecase/index"
	"github.com/urfave/cli/v3"
)

func searchCommand() *cli.Command {
	var (
		cfg       config
		query     string
		limit     int64
		dimension int64
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "Natural language query to search for similar propositions",
			Sources:     cli.EnvVars("PROPDEX_SEARCH_QUERY"),
			Destination: &query,
			Required:    true,
		},
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"l"},
			Usage:       "Maximum number of propositions to return",
			Value:       10,
			Sources:     cli.EnvVars("PROPDEX_SEARCH_LIMIT"),
			Destination: &limit,
		},
		&cli.IntFlag{
			Name:        "dimension",
			Usage:       "Embedding vector dimension (must match the indexed records)",
			Value:       index.DefaultDimension,
			Sources:     cli.EnvVars("PROPDEX_DIMENSION"),
			Destination: &dimension,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "search",
		Usage: "Find stored propositions similar to a query",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

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

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
				spinner.WithWriter(os.Stderr),
				spinner.WithSuffix(" searching propositions..."))
			sp.Start()

			results, err := uc.Search(ctx, index.SearchOptions{
				Query: query,
				Limit: int(limit),
			})
			sp.Stop()
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintf(c.Root().Writer, "No similar propositions found\n")
				return nil
			}

			fmt.Fprintf(c.Root().Writer, "Found %d propositions:\n\n", len(results))
			for i, p := range results {
				fmt.Fprintf(c.Root().Writer, "%d. %s\n", i+1, p.ID)
				fmt.Fprintf(c.Root().Writer, "   %s\n", p.Text)
			}

			return nil
		},
	}
}
