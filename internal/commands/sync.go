package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tickle/internal/app"
)

func newSyncCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile scheduled notifications with the current tasks",
		Run: func(cmd *cobra.Command, args []string) {
			if err := a.Sync.Sync(); err != nil {
				printError(a, err)
				return
			}
			if a.Sync.Degraded() {
				if e := a.Errors.Current(); e != nil {
					fmt.Println(warnStyle.Render("⚠ " + e.Message()))
					a.Errors.Acknowledge()
				}
				return
			}
			fmt.Println(okStyle.Render("🔄 Notifications reconciled"))
		},
	}
}

func newRespondCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:    "respond <task-id> <complete|snooze:N-minutes>",
		Short:  "Apply a notification response action",
		Hidden: true,
		Args:   cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := resolveTaskID(a, args[0])
			if err != nil {
				fmt.Println(errStyle.Render("Error: " + err.Error()))
				return
			}

			if err := a.Sync.HandleResponse(id, args[1]); err != nil {
				printError(a, err)
				return
			}

			fmt.Println(okStyle.Render("✅ Applied " + args[1]))
			syncReminders(a)
		},
	}
}
