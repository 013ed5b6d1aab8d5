// Package export writes the entry collection in formats meant for reading
// outside the app.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/jiashen-meow/feelingdiary/internal/model"
	"github.com/jiashen-meow/feelingdiary/internal/storage"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "md", "html", "yaml"}

// Write renders entries to w in the given format.
func Write(w io.Writer, format string, entries []model.Entry) error {
	switch format {
	case "json":
		data, err := storage.Marshal(entries)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "csv":
		return writeCSV(w, entries)
	case "md":
		_, err := io.WriteString(w, Markdown(entries))
		return err
	case "html":
		return writeHTML(w, entries)
	case "yaml":
		return writeYAML(w, entries)
	default:
		return fmt.Errorf("unknown export format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

func writeCSV(w io.Writer, entries []model.Entry) error {
	if _, err := fmt.Fprintln(w, "id,date,content,tags"); err != nil {
		return err
	}
	for _, e := range entries {
		_, err := fmt.Fprintf(w, "%s,%s,%s,%s\n",
			e.ID,
			e.Date.UTC().Format(time.RFC3339),
			csvEscape(e.Content),
			csvEscape(strings.Join(e.Tags, " ")),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Markdown renders entries as a markdown document, one section per entry.
func Markdown(entries []model.Entry) string {
	var b strings.Builder
	b.WriteString("# Journal\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "\n## %s\n\n", e.Date.Format("Monday, January 2, 2006"))
		for _, line := range strings.Split(strings.TrimSpace(e.Content), "\n") {
			b.WriteString(strings.TrimSpace(line))
			b.WriteString("\n\n")
		}
		if len(e.Tags) > 0 {
			quoted := make([]string, len(e.Tags))
			for i, t := range e.Tags {
				quoted[i] = "`" + t + "`"
			}
			b.WriteString("Tags: " + strings.Join(quoted, " ") + "\n")
		}
	}
	return b.String()
}

func writeHTML(w io.Writer, entries []model.Entry) error {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(entries)), &body); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Journal</title></head>\n<body>\n%s</body>\n</html>\n", body.String())
	return err
}

type yamlEntry struct {
	ID      string   `yaml:"id"`
	Date    string   `yaml:"date"`
	Tags    []string `yaml:"tags,flow"`
	Content string   `yaml:"content"`
}

func writeYAML(w io.Writer, entries []model.Entry) error {
	out := make([]yamlEntry, len(entries))
	for i, e := range entries {
		out[i] = yamlEntry{
			ID:      e.ID.String(),
			Date:    e.Date.UTC().Format(time.RFC3339),
			Tags:    e.Tags,
			Content: e.Content,
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
