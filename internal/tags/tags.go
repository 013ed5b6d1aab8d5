// Package tags handles the hash-prefixed labels attached to entries.
package tags

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/jiashen-meow/feelingdiary/internal/model"
)

// Parse splits a comma or whitespace separated list into tags. Each tag gets
// a leading '#' if it lacks one; empties and case-insensitive duplicates are
// dropped, keeping first-seen order.
func Parse(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := []string{}
	seen := map[string]bool{}
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if strings.Trim(f, "#") == "" {
			continue
		}
		if !strings.HasPrefix(f, "#") {
			f = "#" + f
		}
		key := strings.ToLower(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}

// Count is a tag and the number of entries carrying it.
type Count struct {
	Tag   string
	Count int
}

// Counts tallies tag usage across entries, case-insensitively. The first
// spelling seen wins. Results are ordered by count, then name.
func Counts(entries []model.Entry) []Count {
	index := map[string]int{}
	var out []Count
	for _, e := range entries {
		seenInEntry := map[string]bool{}
		for _, tag := range e.Tags {
			key := strings.ToLower(tag)
			if seenInEntry[key] {
				continue
			}
			seenInEntry[key] = true
			if i, ok := index[key]; ok {
				out[i].Count++
				continue
			}
			index[key] = len(out)
			out = append(out, Count{Tag: tag, Count: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.ToLower(out[i].Tag) < strings.ToLower(out[j].Tag)
	})
	return out
}

// Suggest returns the known tags fuzzily matching query, best match first.
// A leading '#' in the query is ignored.
func Suggest(query string, known []string) []string {
	query = strings.TrimPrefix(strings.TrimSpace(query), "#")
	if query == "" {
		return append([]string{}, known...)
	}
	names := make([]string, len(known))
	for i, k := range known {
		names[i] = strings.TrimPrefix(k, "#")
	}
	matches := fuzzy.Find(query, names)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, known[m.Index])
	}
	return out
}
