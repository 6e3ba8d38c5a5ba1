package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/propdex/propdex/pkg/model"
	"github.com/urfave/cli/v3"
)

func getCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch stored records by ID and print their metadata and vector length",
		ArgsUsage: "<id...>",
		Flags:     globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			args := c.Args().Slice()
			if len(args) == 0 {
				return goerr.New("at least one record ID is required")
			}

			ids := make([]model.PropositionID, len(args))
			for i, arg := range args {
				ids[i] = model.PropositionID(arg)
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			props, err := repo.Fetch(ctx, ids)
			if err != nil {
				return err
			}

			for _, p := range props {
				fmt.Fprintf(c.Root().Writer, "ID: %s\n", p.ID)
				fmt.Fprintf(c.Root().Writer, "  - has_metadata: %t\n", len(p.Metadata) > 0)
				fmt.Fprintf(c.Root().Writer, "  - metadata: %v\n", p.Metadata)
				fmt.Fprintf(c.Root().Writer, "  - values length: %d\n", len(p.Embedding))
			}

			fmt.Fprintf(c.Root().Writer, "\n%d of %d records found\n", len(props), len(ids))
			return nil
		},
	}
}
