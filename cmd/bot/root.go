package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "apollo",
		Short:         "Discord bot that schedules events through direct messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		// without a subcommand the bot starts
		RunE: runBot,
	}
	root.AddCommand(newRunCmd(), newMigrateCmd(), newVersionCmd())
	return root
}
