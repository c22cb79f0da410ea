package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tickle/internal/app"
)

func newRemindCmd(a *app.App) *cobra.Command {
	var atFlag string

	cmd := &cobra.Command{
		Use:   "remind <task-id> <15m|30m|1h|1d|exact|off>",
		Short: "Set or clear a task's reminder",
		Long: `Set a task's reminder relative to its due date, or at an exact time:

  tickle remind 4f21 1h               - one hour before the due date
  tickle remind 4f21 exact --at "15/12/2026 09:00"
  tickle remind 4f21 off              - clear the reminder`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := resolveTaskID(a, args[0])
			if err != nil {
				fmt.Println(errStyle.Render("Error: " + err.Error()))
				return
			}

			if args[1] == "off" {
				task, err := a.Repos.Tasks.DisableReminder(id)
				if err != nil {
					printError(a, err)
					return
				}
				fmt.Println(okStyle.Render("🔕 Reminder off: ") + titleStyle.Render(task.Title))
				syncReminders(a)
				return
			}

			typ := reminderTypeFromFlag(args[1])
			if typ == "" {
				fmt.Println(errStyle.Render("Error: invalid reminder. Use: 15m, 30m, 1h, 1d, exact, or off"))
				return
			}

			var explicit *time.Time
			if atFlag != "" {
				at, err := time.ParseInLocation("02/01/2006 15:04", atFlag, time.Local)
				if err != nil {
					fmt.Println(errStyle.Render("Error: invalid --at time, expected dd/mm/yyyy hh:mm"))
					return
				}
				explicit = &at
			}

			task, err := a.Repos.Tasks.EnableReminder(id, typ, explicit)
			if err != nil {
				printError(a, err)
				return
			}

			fmt.Println(okStyle.Render("🔔 Reminder set: ") + titleStyle.Render(task.Title))
			if task.ReminderTime != nil {
				fmt.Println(metaStyle.Render("   fires at " + task.ReminderTime.Format("02/01/2006 15:04")))
			}
			syncReminders(a)
		},
	}

	cmd.Flags().StringVar(&atFlag, "at", "", "Exact reminder time (dd/mm/yyyy hh:mm), with 'exact'")
	return cmd
}
