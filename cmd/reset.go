package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the entries file",
	Long: `Delete the entries file. The next command starts from an empty journal
(seeded with the sample entries unless seed_samples is off).`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm deletion of every entry")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		return usageError(errors.New("refusing to delete every entry without --yes"))
	}
	if err := store.Clear(); err != nil {
		return storageError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", store.Path())
	return nil
}
