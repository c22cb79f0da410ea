package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tickle/internal/app"
	"github.com/balkashynov/tickle/internal/models"
	"github.com/balkashynov/tickle/internal/parser"
)

func newListCmd(a *app.App) *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:     "ls [all|today|upcoming|inbox|completed]",
		Aliases: []string{"list"},
		Short:   "List tasks from a smart list",
		Args:    cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			filter := "all"
			if len(args) == 1 {
				filter = strings.ToLower(args[0])
			}

			var (
				tasks []models.Task
				err   error
			)
			switch {
			case projectFlag != "":
				var id string
				id, err = resolveProject(a, projectFlag)
				if err == nil {
					tasks, err = a.Repos.Tasks.ByProject(id)
				}
			case filter == "all":
				tasks, err = a.Repos.Tasks.Active()
			case filter == "today":
				tasks, err = a.Repos.Tasks.Today()
			case filter == "upcoming":
				tasks, err = a.Repos.Tasks.Upcoming(a.Config.UpcomingDays)
			case filter == "inbox":
				tasks, err = a.Repos.Tasks.Inbox()
			case filter == "completed":
				tasks, err = a.Repos.Tasks.Completed()
			default:
				fmt.Println(errStyle.Render("Error: unknown list. Use: all, today, upcoming, inbox, completed"))
				return
			}
			if err != nil {
				printError(a, err)
				return
			}

			if len(tasks) == 0 {
				fmt.Println(metaStyle.Render("No tasks here. Use 'tickle add \"task title\"' to create one."))
				return
			}

			now := time.Now()
			fmt.Println(headerStyle.Render(fmt.Sprintf("%-10s %-40s %-6s %-24s %s", "ID", "TITLE", "PRIO", "DUE", "TAGS")))
			for _, task := range tasks {
				var tagNames []string
				for _, tag := range task.Tags {
					tagNames = append(tagNames, "#"+tag.Name)
				}

				title := task.Title
				if len(title) > 38 {
					title = title[:35] + "..."
				}

				row := fmt.Sprintf("%-10s %-40s %-6s %-24s %s",
					shortID(task.ID),
					title,
					priorityLabel(task.Priority),
					parser.FormatDueDate(task.DueDate, now),
					strings.Join(tagNames, ","))
				if task.Completed {
					fmt.Println(mutedStyle.Render(row))
				} else {
					fmt.Println(titleStyle.Render(row))
				}
			}
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Show a project's active tasks")
	return cmd
}
