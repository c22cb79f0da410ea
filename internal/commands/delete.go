package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tickle/internal/app"
)

func newRemoveCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"delete"},
		Short:   "Move a task to the trash (recoverable with restore)",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := resolveTaskID(a, args[0])
			if err != nil {
				fmt.Println(errStyle.Render("Error: " + err.Error()))
				return
			}

			task, err := a.Repos.Tasks.SoftDelete(id)
			if err != nil {
				printError(a, err)
				return
			}

			fmt.Println(okStyle.Render("🗑  Trashed: ") + titleStyle.Render(task.Title))
			fmt.Println(metaStyle.Render("   restore with 'tickle restore " + shortID(task.ID) + "'"))
			syncReminders(a)
		},
	}
}

func newRestoreCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <task-id>",
		Short: "Restore a trashed task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			task, err := a.Repos.Tasks.Restore(args[0])
			if err != nil {
				printError(a, err)
				return
			}

			fmt.Println(okStyle.Render("📤 Restored: ") + titleStyle.Render(task.Title))
			syncReminders(a)
		},
	}
}
