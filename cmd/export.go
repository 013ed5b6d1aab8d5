package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jiashen-meow/feelingdiary/internal/export"
	"github.com/jiashen-meow/feelingdiary/internal/model"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all entries",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: "+strings.Join(export.Formats, ", "))
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	if !validFormat(exportFormat) {
		return usageError(fmt.Errorf("unknown export format %q (want one of %s)", exportFormat, strings.Join(export.Formats, ", ")))
	}

	m, err := openJournal(cmd)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		if err := export.Write(cmd.OutOrStdout(), exportFormat, m.Entries()); err != nil {
			return storageError(fmt.Errorf("writing export: %w", err))
		}
		return nil
	}

	if err := writeExportFile(exportOutput, exportFormat, m.Entries()); err != nil {
		return storageError(err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", plural(m.Len(), "entry", "entries"), exportOutput)
	return nil
}

// writeExportFile writes the export to path. A failed close is reported,
// since it may mean buffered data never reached the disk.
func writeExportFile(path, format string, entries []model.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := export.Write(f, format, entries); err != nil {
		f.Close()
		return fmt.Errorf("writing export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	return nil
}

func validFormat(format string) bool {
	for _, f := range export.Formats {
		if f == format {
			return true
		}
	}
	return false
}
