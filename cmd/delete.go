package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	m, err := openJournal(cmd)
	if err != nil {
		return err
	}
	entry, err := m.Lookup(args[0])
	if err != nil {
		return usageError(err)
	}
	if err := m.Delete(entry.ID); err != nil {
		return storageError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s (%d left)\n", shortID(entry.ID), m.Len())
	return nil
}
