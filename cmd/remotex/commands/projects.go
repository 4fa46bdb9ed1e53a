package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/remotex/internal/adapters/web"
	"go.trai.ch/remotex/internal/core/domain"
	"go.trai.ch/remotex/internal/ui/output"
	"go.trai.ch/remotex/internal/ui/style"
)

func (c *CLI) newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the registered projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, err := c.app.Projects(configPath(cmd))
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeProjectsJSON(cmd.OutOrStdout(), projects)
			}
			writeProjects(cmd.OutOrStdout(), projects)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the projects as returned by GET /api/projects")
	return cmd
}

func writeProjectsJSON(w io.Writer, projects []domain.Project) error {
	summaries := make([]web.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, web.NewProjectSummary(p))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}

func writeProjects(w io.Writer, projects []domain.Project) {
	r := newRenderer(w)
	muted := style.Muted.Renderer(r)

	if len(projects) == 0 {
		_, _ = fmt.Fprintln(w, muted.Render("no projects registered"))
		return
	}

	title := style.Title.Renderer(r)
	enabled := style.Success.Renderer(r)

	for _, p := range projects {
		icon := enabled.Render(style.Dot)
		if !p.Enabled {
			icon = muted.Render(style.Circle)
		}

		line := fmt.Sprintf("%s %s  %s", icon, title.Render(p.Codename), p.Name)
		if !p.Enabled {
			line += " " + muted.Render("(disabled)")
		}
		if p.Auth.Enabled {
			line += " " + muted.Render("[auth]")
		}
		_, _ = fmt.Fprintln(w, line)
		_, _ = fmt.Fprintf(w, "    %s\n", muted.Render(fmt.Sprintf("%s · %d tasks", p.Description, len(p.Tasks))))
	}
}

func newRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile(w))
	return r
}
