package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jiashen-meow/feelingdiary/internal/tags"
	"github.com/jiashen-meow/feelingdiary/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the journal lives and what it holds",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	now := time.Now()

	m, err := openJournal(cmd)
	if err != nil {
		return err
	}
	entries := m.Entries()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "File:    %s\n", store.Path())
	fmt.Fprintf(out, "Entries: %d\n", len(entries))
	if len(entries) > 0 {
		newest := entries[0].Date
		for _, e := range entries[1:] {
			if e.Date.After(newest) {
				newest = e.Date
			}
		}
		fmt.Fprintf(out, "Newest:  %s (%s)\n", newest.Local().Format(timecalc.DateLayout), timecalc.RelativeLabel(newest, now))
	}
	fmt.Fprintf(out, "Tags:    %d\n", len(tags.Counts(entries)))
	return nil
}
