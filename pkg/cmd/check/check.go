package check

import (
	"github.com/spf13/cobra"
)

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "commands to check the bot's data sources",
	}

	cmd.AddCommand(NewCheckDatabaseCmd())
	cmd.AddCommand(NewCheckReferenceCmd())

	return cmd
}
