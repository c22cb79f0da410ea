package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tickle/internal/app"
	"github.com/balkashynov/tickle/internal/repo"
)

func newProjectCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	var areaFlag, notesFlag, colorFlag string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := repo.CreateProjectRequest{Name: args[0], Notes: notesFlag, Color: colorFlag}
			if areaFlag != "" {
				id, err := resolveArea(a, areaFlag)
				if err != nil {
					fmt.Println(errStyle.Render("Error: " + err.Error()))
					return
				}
				req.AreaID = &id
			}

			project, err := a.Repos.Projects.Create(req)
			if err != nil {
				printError(a, err)
				return
			}
			fmt.Println(okStyle.Render("📁 Created project: ") + titleStyle.Render(project.Name))
		},
	}
	addCmd.Flags().StringVarP(&areaFlag, "area", "a", "", "Parent area name or id")
	addCmd.Flags().StringVarP(&notesFlag, "notes", "n", "", "Project notes")
	addCmd.Flags().StringVar(&colorFlag, "color", "", "Project color")

	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List projects",
		Run: func(cmd *cobra.Command, args []string) {
			projects, err := a.Repos.Projects.List()
			if err != nil {
				printError(a, err)
				return
			}
			if len(projects) == 0 {
				fmt.Println(metaStyle.Render("No projects yet."))
				return
			}
			fmt.Println(headerStyle.Render(fmt.Sprintf("%-10s %-30s %s", "ID", "NAME", "DONE")))
			for _, p := range projects {
				done := ""
				if p.Completed {
					done = "✓"
				}
				fmt.Println(titleStyle.Render(fmt.Sprintf("%-10s %-30s %s", shortID(p.ID), p.Name, done)))
			}
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <name-or-id>",
		Short: "Delete a project (its tasks return to the inbox)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := resolveProject(a, args[0])
			if err != nil {
				fmt.Println(errStyle.Render("Error: " + err.Error()))
				return
			}
			if err := a.Repos.Projects.Delete(id); err != nil {
				printError(a, err)
				return
			}
			fmt.Println(okStyle.Render("🗑  Deleted project; its tasks moved to the inbox"))
		},
	}

	doneCmd := &cobra.Command{
		Use:   "done <name-or-id>",
		Short: "Mark a project completed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := resolveProject(a, args[0])
			if err != nil {
				fmt.Println(errStyle.Render("Error: " + err.Error()))
				return
			}
			completed := true
			project, err := a.Repos.Projects.Update(id, repo.ProjectPatch{Completed: &completed})
			if err != nil {
				printError(a, err)
				return
			}
			fmt.Println(okStyle.Render("✅ Completed project: ") + titleStyle.Render(project.Name))
		},
	}

	cmd.AddCommand(addCmd, listCmd, rmCmd, doneCmd)
	return cmd
}
