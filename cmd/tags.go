package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jiashen-meow/feelingdiary/internal/tags"
)

var tagsCmd = &cobra.Command{
	Use:   "tags [query]",
	Short: "Show tag usage, or tags matching a query",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTags,
}

func runTags(cmd *cobra.Command, args []string) error {
	m, err := openJournal(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	counts := tags.Counts(m.Entries())
	if len(counts) == 0 {
		fmt.Fprintln(out, "No tags yet.")
		return nil
	}

	if len(args) == 1 {
		byTag := make(map[string]int, len(counts))
		known := make([]string, len(counts))
		for i, c := range counts {
			known[i] = c.Tag
			byTag[strings.ToLower(c.Tag)] = c.Count
		}
		matches := tags.Suggest(args[0], known)
		if len(matches) == 0 {
			fmt.Fprintf(out, "No tags match %q.\n", args[0])
			return nil
		}
		counts = counts[:0]
		for _, tag := range matches {
			counts = append(counts, tags.Count{Tag: tag, Count: byTag[strings.ToLower(tag)]})
		}
	}

	width := 0
	for _, c := range counts {
		width = max(width, len(c.Tag))
	}
	for _, c := range counts {
		fmt.Fprintf(out, "%s  %s\n", tagStyle.Render(fmt.Sprintf("%-*s", width, c.Tag)), plural(c.Count, "entry", "entries"))
	}
	return nil
}
