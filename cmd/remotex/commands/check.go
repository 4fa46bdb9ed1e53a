package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/remotex/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the settings and every project file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := c.app.Check(configPath(cmd))
			if results == nil && err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			r := newRenderer(w)
			ok := style.Success.Renderer(r)
			bad := style.Failure.Renderer(r)
			muted := style.Muted.Renderer(r)

			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					_, _ = fmt.Fprintf(w, "%s %s\n    %s\n", bad.Render(style.Cross), res.Path, muted.Render(res.Err.Error()))
					continue
				}
				_, _ = fmt.Fprintf(w, "%s %s %s\n", ok.Render(style.Check), res.Path, muted.Render("("+res.Codename+")"))
			}

			if failed > 0 {
				return zerr.With(zerr.With(zerr.New("project check failed"), "invalid", failed), "total", len(results))
			}
			_, _ = fmt.Fprintf(w, "%d projects valid\n", len(results))
			return nil
		},
	}
}
