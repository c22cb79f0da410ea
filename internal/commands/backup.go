package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tickle/internal/app"
)

func newExportCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export all data to a JSON archive",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := a.Backup.Export(args[0]); err != nil {
				printError(a, err)
				return
			}
			fmt.Println(okStyle.Render("📦 Exported to " + args[0]))
		},
	}
}

func newImportCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Import a JSON archive, preserving ids and trashed state",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := a.Backup.Import(args[0]); err != nil {
				printError(a, err)
				return
			}
			fmt.Println(okStyle.Render("📥 Imported from " + args[0]))
			syncReminders(a)
		},
	}
}
