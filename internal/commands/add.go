package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tickle/internal/app"
	"github.com/balkashynov/tickle/internal/parser"
	"github.com/balkashynov/tickle/internal/repo"
)

func newAddCmd(a *app.App) *cobra.Command {
	var (
		notesFlag   string
		projectFlag string
		areaFlag    string
		dueFlag     string
		remindFlag  string
	)

	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new task",
		Long: `Add a new task. The title supports quick-entry syntax:

  tickle add "Buy milk #errands +high due:tomorrow remind:1h"

Tags (#tag), priority (+low/+medium/+high), due date (due:) and reminder
(remind:15m/30m/1h/1d/exact) can be given inline or via flags.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			now := time.Now()
			entry := parser.ParseQuickEntry(strings.Join(args, " "), now)
			for _, msg := range entry.Errors {
				fmt.Println(warnStyle.Render("⚠ " + msg))
			}

			req := repo.CreateTaskRequest{
				Title:    entry.Title,
				Notes:    notesFlag,
				Priority: entry.Priority,
				DueDate:  entry.DueDate,
				Tags:     entry.Tags,
			}

			if dueFlag != "" {
				due, err := parser.ParseDueDate(dueFlag, now)
				if err != nil {
					fmt.Println(errStyle.Render("Error: " + err.Error()))
					return
				}
				req.DueDate = due
			}

			if projectFlag != "" {
				id, err := resolveProject(a, projectFlag)
				if err != nil {
					printError(a, err)
					return
				}
				req.ProjectID = &id
			}
			if areaFlag != "" {
				id, err := resolveArea(a, areaFlag)
				if err != nil {
					printError(a, err)
					return
				}
				req.AreaID = &id
			}

			remind := entry.ReminderType
			if remindFlag != "" {
				remind = reminderTypeFromFlag(remindFlag)
				if remind == "" {
					fmt.Println(errStyle.Render("Error: invalid reminder. Use: 15m, 30m, 1h, 1d, or exact"))
					return
				}
			}
			if remind != "" {
				req.ReminderEnabled = true
				req.ReminderType = remind
			}

			task, err := a.Repos.Tasks.Create(req)
			if err != nil {
				printError(a, err)
				return
			}

			fmt.Println(okStyle.Render("✅ Added: ") + titleStyle.Render(task.Title))
			if task.DueDate != nil {
				fmt.Println(metaStyle.Render("   " + parser.FormatDueDate(task.DueDate, now)))
			}
			if task.ReminderEnabled && task.ReminderTime != nil {
				fmt.Println(metaStyle.Render("   reminder at " + task.ReminderTime.Format("02/01/2006 15:04")))
				syncReminders(a)
			}
		},
	}

	cmd.Flags().StringVarP(&notesFlag, "notes", "n", "", "Task notes")
	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project name or id")
	cmd.Flags().StringVarP(&areaFlag, "area", "a", "", "Area name or id")
	cmd.Flags().StringVarP(&dueFlag, "due", "d", "", "Due date: dd/mm/yyyy, today, tomorrow, X days")
	cmd.Flags().StringVarP(&remindFlag, "remind", "r", "", "Reminder: 15m, 30m, 1h, 1d, or exact")

	return cmd
}
