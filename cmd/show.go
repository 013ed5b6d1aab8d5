package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one entry in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	m, err := openJournal(cmd)
	if err != nil {
		return err
	}
	entry, err := m.Lookup(args[0])
	if err != nil {
		return usageError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderCard(entry, time.Now(), true))
	return nil
}
