package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jiashen-meow/feelingdiary/internal/tags"
	"github.com/jiashen-meow/feelingdiary/internal/timecalc"
)

var (
	editContent string
	editDate    string
	editTags    string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an entry's text, date or tags",
	Long: `Change an entry in place; it keeps its identifier and its position.
Pass --content - to read the new text from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editContent, "content", "", "New text (\"-\" reads stdin)")
	editCmd.Flags().StringVar(&editDate, "date", "", "New date (YYYY-MM-DD); the time of day is kept")
	editCmd.Flags().StringVar(&editTags, "tags", "", "Replacement comma-separated tags (empty clears them)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("content") && !flags.Changed("date") && !flags.Changed("tags") {
		return usageError(errors.New("nothing to change: pass --content, --date or --tags"))
	}

	m, err := openJournal(cmd)
	if err != nil {
		return err
	}
	entry, err := m.Lookup(args[0])
	if err != nil {
		return usageError(err)
	}

	if flags.Changed("content") {
		var content string
		if editContent == "-" {
			content, err = readContent(cmd, nil)
		} else {
			content, err = readContent(cmd, []string{editContent})
		}
		if err != nil {
			return usageError(err)
		}
		entry.Content = content
	}
	if flags.Changed("date") {
		day, err := timecalc.ParseDate(editDate, time.Local)
		if err != nil {
			return usageError(err)
		}
		entry.Date = timecalc.WithTimeOf(day, entry.Date.Local())
	}
	if flags.Changed("tags") {
		entry.Tags = tags.Parse(editTags)
	}

	if err := m.Update(entry); err != nil {
		return storageError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %s\n", shortID(entry.ID))
	return nil
}
