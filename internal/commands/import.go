package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taxdesk-dev/taxdesk/internal/importer"
	"github.com/taxdesk-dev/taxdesk/internal/report"
	"github.com/taxdesk-dev/taxdesk/internal/session"
)

func newImportCommand(a *app) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "import <file|directory>",
		Short: "Import tax transaction files and show their validation status",
		Long: "Import a transaction file, or every CSV file in a directory, and print each record\n" +
			"with its checksum validity. Known formats: " + strings.Join(importer.DefaultRegistry().Formats(), ", ") + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.OutOrStdout(), a, args[0], pretty || a.cfg.Display.Pretty)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "render the report with terminal styling")

	return cmd
}

func runImport(w io.Writer, a *app, path string, pretty bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if !info.IsDir() {
		return importOne(w, a, path, pretty)
	}

	files, err := importer.Scan(path)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no CSV files in %s", path)
	}

	failed := 0
	for i, f := range files {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := importOne(w, a, f.Path, pretty); err != nil {
			importAlert(err).Write(w)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", failed, len(files))
	}
	return nil
}

func importOne(w io.Writer, a *app, path string, pretty bool) error {
	s := session.New(a.log, nil)
	if err := s.ImportFile(path); err != nil {
		return err
	}
	rep := report.Report{
		Source:   s.Source(),
		Records:  s.Records(),
		Counts:   s.Counts(),
		Currency: a.cfg.Tax.Currency,
	}
	return writeReport(w, rep, pretty, a.cfg.Display.Style)
}

// writeReport prints rep as a plain table, or as styled markdown.
func writeReport(w io.Writer, rep report.Report, pretty bool, style string) error {
	if pretty {
		out, err := report.Render(report.Markdown(rep), style)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}

	fmt.Fprintln(w, rep.Source)
	if err := report.Table(w, rep.Records, rep.Counts); err != nil {
		return err
	}
	if rep.Tax != nil {
		fmt.Fprintln(w, report.TaxSummary(*rep.Tax, rep.Currency))
	}
	return nil
}
