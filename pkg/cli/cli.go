package cli

import (
	"context"

	"github.com/propdex/propdex/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "propdex",
		Usage: "Extract atomic propositions from text and index them as vectors",
		Commands: []*cli.Command{
			ingestCommand(),
			searchCommand(),
			listCommand(),
			getCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		logging.Default().Error("command failed", "error", err)
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
