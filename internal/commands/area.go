package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tickle/internal/app"
	"github.com/balkashynov/tickle/internal/repo"
)

func newAreaCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "area",
		Short: "Manage areas",
	}

	var notesFlag, colorFlag string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an area",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			area, err := a.Repos.Areas.Create(repo.CreateAreaRequest{
				Name:  args[0],
				Notes: notesFlag,
				Color: colorFlag,
			})
			if err != nil {
				printError(a, err)
				return
			}
			fmt.Println(okStyle.Render("🗂  Created area: ") + titleStyle.Render(area.Name))
		},
	}
	addCmd.Flags().StringVarP(&notesFlag, "notes", "n", "", "Area notes")
	addCmd.Flags().StringVar(&colorFlag, "color", "", "Area color")

	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List areas",
		Run: func(cmd *cobra.Command, args []string) {
			areas, err := a.Repos.Areas.List()
			if err != nil {
				printError(a, err)
				return
			}
			if len(areas) == 0 {
				fmt.Println(metaStyle.Render("No areas yet."))
				return
			}
			fmt.Println(headerStyle.Render(fmt.Sprintf("%-10s %s", "ID", "NAME")))
			for _, ar := range areas {
				fmt.Println(titleStyle.Render(fmt.Sprintf("%-10s %s", shortID(ar.ID), ar.Name)))
			}
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <name-or-id>",
		Short: "Delete an area (its projects and tasks are detached, not deleted)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := resolveArea(a, args[0])
			if err != nil {
				fmt.Println(errStyle.Render("Error: " + err.Error()))
				return
			}
			if err := a.Repos.Areas.Delete(id); err != nil {
				printError(a, err)
				return
			}
			fmt.Println(okStyle.Render("🗑  Deleted area; its projects and tasks were detached"))
		},
	}

	cmd.AddCommand(addCmd, listCmd, rmCmd)
	return cmd
}
