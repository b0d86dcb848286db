package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taxdesk-dev/taxdesk/internal/report"
	"github.com/taxdesk-dev/taxdesk/internal/session"
)

type taxOptions struct {
	rate           string
	dropInvalid    bool
	dropZeroProfit bool
	pretty         bool
}

func newTaxCommand(a *app) *cobra.Command {
	var opts taxOptions

	cmd := &cobra.Command{
		Use:   "tax <file>",
		Short: "Compute the tax due on the total profit of a transaction file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.rate == "" {
				opts.rate = a.cfg.Tax.DefaultRate
			}
			opts.pretty = opts.pretty || a.cfg.Display.Pretty
			return runTax(cmd.OutOrStdout(), a, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.rate, "rate", "", "tax rate in percent (default from config)")
	cmd.Flags().BoolVar(&opts.dropInvalid, "drop-invalid", false, "remove invalid records before computing")
	cmd.Flags().BoolVar(&opts.dropZeroProfit, "drop-zero-profit", false, "remove zero-profit records before computing")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "render the report with terminal styling")

	return cmd
}

func runTax(w io.Writer, a *app, path string, opts taxOptions) error {
	s := session.New(a.log, nil)
	if err := s.ImportFile(path); err != nil {
		return err
	}
	if opts.dropInvalid {
		fmt.Fprintf(w, "Removed %d invalid records\n", s.RemoveInvalid())
	}
	if opts.dropZeroProfit {
		fmt.Fprintf(w, "Removed %d zero-profit records\n", s.RemoveZeroProfit())
	}

	res, err := s.CalculateTax(opts.rate)
	if err != nil {
		return err
	}

	if opts.pretty {
		return writeReport(w, report.Report{
			Source:   s.Source(),
			Records:  s.Records(),
			Counts:   s.Counts(),
			Tax:      &res,
			Currency: a.cfg.Tax.Currency,
		}, true, a.cfg.Display.Style)
	}

	fmt.Fprintln(w, report.CountsLine(s.Counts()))
	fmt.Fprintf(w, "Tax Rate: %s%%\n", res.Rate.String())
	fmt.Fprintln(w, report.TaxSummary(res, a.cfg.Tax.Currency))
	return nil
}
