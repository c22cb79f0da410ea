package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tickle/internal/app"
)

func newTagCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}

	var colorFlag string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			tag, err := a.Repos.Tags.Create(args[0], colorFlag)
			if err != nil {
				printError(a, err)
				return
			}
			fmt.Println(okStyle.Render("🏷  Created tag: ") + titleStyle.Render("#"+tag.Name))
		},
	}
	addCmd.Flags().StringVar(&colorFlag, "color", "", "Tag color")

	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tags",
		Run: func(cmd *cobra.Command, args []string) {
			tags, err := a.Repos.Tags.List()
			if err != nil {
				printError(a, err)
				return
			}
			if len(tags) == 0 {
				fmt.Println(metaStyle.Render("No tags yet."))
				return
			}
			var names []string
			for _, t := range tags {
				names = append(names, "#"+t.Name)
			}
			fmt.Println(titleStyle.Render(strings.Join(names, "  ")))
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := a.Repos.Tags.Delete(args[0]); err != nil {
				printError(a, err)
				return
			}
			fmt.Println(okStyle.Render("🗑  Deleted tag"))
		},
	}

	cmd.AddCommand(addCmd, listCmd, rmCmd)
	return cmd
}
