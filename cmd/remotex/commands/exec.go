package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/remotex/internal/app"
)

func (c *CLI) newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <codename>",
		Short: "Execute a project locally without authorization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Execute(cmd.Context(), app.ExecOptions{
				ConfigPath: configPath(cmd),
				Codename:   args[0],
			})
		},
	}
}
