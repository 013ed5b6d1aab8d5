package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jiashen-meow/feelingdiary/internal/model"
	"github.com/jiashen-meow/feelingdiary/internal/tags"
	"github.com/jiashen-meow/feelingdiary/internal/timecalc"
)

var (
	addTags string
	addDate string
)

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Write a new entry",
	Long: `Write a new entry. The text is taken from the arguments, or read from
standard input when none are given.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addTags, "tags", "", "Comma-separated tags, e.g. \"#tired,#therapy\"")
	addCmd.Flags().StringVar(&addDate, "date", "", "Date of the entry (YYYY-MM-DD); defaults to now")
}

func runAdd(cmd *cobra.Command, args []string) error {
	now := time.Now()

	content, err := readContent(cmd, args)
	if err != nil {
		return usageError(err)
	}

	date := now
	if addDate != "" {
		day, err := timecalc.ParseDate(addDate, time.Local)
		if err != nil {
			return usageError(err)
		}
		date = timecalc.WithTimeOf(day, now)
	}

	m, err := openJournal(cmd)
	if err != nil {
		return err
	}

	entry := model.NewEntry(content, tags.Parse(addTags), date)
	if err := m.Add(entry); err != nil {
		return storageError(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved entry %s (%s)\n", shortID(entry.ID), date.Format("2006-01-02"))
	return nil
}

// readContent joins args, or reads stdin when there are none. Blank text is
// rejected here so it never reaches the store.
func readContent(cmd *cobra.Command, args []string) (string, error) {
	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading entry from stdin: %w", err)
		}
		content = strings.TrimRight(string(data), "\r\n")
	}
	if strings.TrimSpace(content) == "" {
		return "", errors.New("nothing to save: entry is empty")
	}
	return content, nil
}
