package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// EnumCompleter returns a ShellCompleteFunc that suggests values for the
// named flags when the previous argument is one of them, e.g. the variants
// after --variant.
//
// Otherwise it falls back to the default flag completion behavior.
func EnumCompleter(values map[string][]string) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			for name, vals := range values {
				if last != "--"+name {
					continue
				}
				w := cmd.Root().Writer
				for _, v := range vals {
					_, _ = fmt.Fprintln(w, v)
				}
				return
			}
		}

		cli.DefaultCompleteWithFlags(ctx, cmd)
	}
}
