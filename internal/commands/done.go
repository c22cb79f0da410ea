package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tickle/internal/app"
)

func newDoneCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := resolveTaskID(a, args[0])
			if err != nil {
				fmt.Println(errStyle.Render("Error: " + err.Error()))
				return
			}

			task, err := a.Repos.Tasks.MarkCompleted(id)
			if err != nil {
				printError(a, err)
				return
			}

			fmt.Println(okStyle.Render("✅ Done: ") + titleStyle.Render(task.Title))
			if task.CompletedAt != nil {
				fmt.Println(metaStyle.Render("   completed at " + task.CompletedAt.Format("15:04:05")))
			}
			syncReminders(a)
		},
	}
}

func newUndoneCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "undone <task-id>",
		Short: "Mark a completed task back to open",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := resolveTaskID(a, args[0])
			if err != nil {
				fmt.Println(errStyle.Render("Error: " + err.Error()))
				return
			}

			task, err := a.Repos.Tasks.MarkIncomplete(id)
			if err != nil {
				printError(a, err)
				return
			}

			fmt.Println(okStyle.Render("↩️  Reopened: ") + titleStyle.Render(task.Title))
			syncReminders(a)
		},
	}
}
