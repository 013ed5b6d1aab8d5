package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jiashen-meow/feelingdiary/internal/journal"
	"github.com/jiashen-meow/feelingdiary/internal/tags"
	"github.com/jiashen-meow/feelingdiary/internal/timecalc"
)

var (
	listTags  []string
	listFrom  string
	listTo    string
	listToday bool
	listWeek  bool
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List entries, newest first",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringArrayVar(&listTags, "tag", nil, "Only entries carrying this tag (repeatable; all must match)")
	listCmd.Flags().StringVar(&listFrom, "from", "", "Only entries on or after this date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "Only entries on or before this date (YYYY-MM-DD)")
	listCmd.Flags().BoolVar(&listToday, "today", false, "Only today's entries")
	listCmd.Flags().BoolVar(&listWeek, "week", false, "Only this week's entries")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Show at most this many entries")
}

func runList(cmd *cobra.Command, args []string) error {
	now := time.Now()

	filter, err := buildFilter(now)
	if err != nil {
		return usageError(err)
	}

	m, err := openJournal(cmd)
	if err != nil {
		return err
	}

	printList(cmd.OutOrStdout(), m.Query(filter), now)
	return nil
}

func buildFilter(now time.Time) (journal.Filter, error) {
	f := journal.Filter{
		Tags:  tags.Parse(strings.Join(listTags, ",")),
		Limit: listLimit,
	}

	switch {
	case listWeek:
		f.From, f.To = timecalc.WeekRange(now)
	case listToday:
		f.From = timecalc.StartOfDay(now)
		f.To = timecalc.EndOfDay(now)
	}

	if listFrom != "" {
		from, err := timecalc.ParseDate(listFrom, now.Location())
		if err != nil {
			return journal.Filter{}, err
		}
		f.From = from
	}
	if listTo != "" {
		to, err := timecalc.ParseDate(listTo, now.Location())
		if err != nil {
			return journal.Filter{}, err
		}
		f.To = timecalc.EndOfDay(to)
	}
	return f, nil
}
