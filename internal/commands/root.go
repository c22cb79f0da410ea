package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tickle/internal/app"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute wires the application core and runs the root command. All
// services are constructed here once and injected into the subcommands.
func Execute() error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.Start(ctx)

	return NewRootCmd(a).Execute()
}

// NewRootCmd builds the command tree over an already wired app.
func NewRootCmd(a *app.App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tickle",
		Short: "A personal task manager with reminders",
		Long: `tickle is a personal task manager: tasks, projects, areas and tags,
smart lists (today, upcoming, inbox, completed), and reminders kept in
sync with a local notification schedule.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.Warning != "" {
				fmt.Println(warnStyle.Render("⚠ " + a.Warning))
			}
		},
	}

	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newDoneCmd(a))
	rootCmd.AddCommand(newUndoneCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newRestoreCmd(a))
	rootCmd.AddCommand(newRemindCmd(a))
	rootCmd.AddCommand(newSyncCmd(a))
	rootCmd.AddCommand(newRespondCmd(a))
	rootCmd.AddCommand(newProjectCmd(a))
	rootCmd.AddCommand(newAreaCmd(a))
	rootCmd.AddCommand(newTagCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newImportCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tickle %s (%s, built %s)\n", version, commit, date)
		},
	}
}

// printError renders the unacknowledged presentation error, falling back to
// the raw error, and clears the slot.
func printError(a *app.App, fallback error) {
	if e := a.Errors.Current(); e != nil {
		fmt.Println(errStyle.Render("Error: " + e.Message()))
		if s := e.Suggestion(); s != "" {
			fmt.Println(metaStyle.Render(s))
		}
		a.Errors.Acknowledge()
		return
	}
	fmt.Println(errStyle.Render(fmt.Sprintf("Error: %v", fallback)))
}
