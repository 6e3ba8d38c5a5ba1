package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func listCommand() *cli.Command {
	var (
		cfg    config
		offset int64
		limit  int64
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "offset",
			Usage:       "Number of records to skip",
			Sources:     cli.EnvVars("PROPDEX_LIST_OFFSET"),
			Destination: &offset,
		},
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"l"},
			Usage:       "Maximum number of records to display",
			Value:       20,
			Sources:     cli.EnvVars("PROPDEX_LIST_LIMIT"),
			Destination: &limit,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "list",
		Usage: "List stored propositions",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.loggerContext(ctx)

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			props, err := repo.List(ctx, int(offset), int(limit))
			if err != nil {
				return err
			}

			if len(props) == 0 {
				fmt.Fprintf(c.Root().Writer, "No propositions stored\n")
				return nil
			}

			for _, p := range props {
				fmt.Fprintf(c.Root().Writer, "%s\t%s\n", p.ID, p.Text)
			}
			fmt.Fprintf(c.Root().Writer, "\n%d records\n", len(props))

			return nil
		},
	}
}
