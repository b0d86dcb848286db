package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taxdesk-dev/taxdesk/internal/report"
	"github.com/taxdesk-dev/taxdesk/internal/session"
)

const shellPrompt = "taxdesk> "

const shellHelp = `Commands:
  list               show all records
  counts             show all/valid/invalid totals
  edit N             edit record N (empty answer keeps the current value)
  delete N           delete record N (invalid records only)
  purge-invalid      remove every invalid record
  purge-zero         remove every zero-profit record
  tax [RATE]         compute tax on the total profit
  total              show the last computed tax
  report             print a styled report
  import PATH        replace the records with another file
  help               show this help
  quit               leave the shell`

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell [file]",
		Short: "Review, edit and compute tax interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := newShell(a, cmd.InOrStdin(), cmd.OutOrStdout())
			if len(args) == 1 {
				sh.importFile(args[0])
			}
			return sh.run()
		},
	}
}

type shell struct {
	a   *app
	in  *bufio.Scanner
	out io.Writer
	s   *session.Session
}

func newShell(a *app, in io.Reader, out io.Writer) *shell {
	sh := &shell{
		a:   a,
		in:  bufio.NewScanner(in),
		out: out,
	}
	sh.s = session.New(a.log, session.ConfirmFunc(sh.confirm))
	return sh
}

// readLine returns the next input line; ok is false at end of input.
func (sh *shell) readLine() (string, bool) {
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

func (sh *shell) confirm(title, header, detail string) bool {
	Alert{Title: title, Header: header, Detail: detail}.Write(sh.out)
	fmt.Fprint(sh.out, "Continue? [y/N] ")
	answer, ok := sh.readLine()
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (sh *shell) run() error {
	for {
		fmt.Fprint(sh.out, shellPrompt)
		line, ok := sh.readLine()
		if !ok {
			fmt.Fprintln(sh.out)
			return sh.in.Err()
		}
		if line == "" {
			continue
		}

		name, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(name) {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(sh.out, shellHelp)
		case "list":
			sh.list()
		case "counts":
			fmt.Fprintln(sh.out, report.CountsLine(sh.s.Counts()))
		case "edit":
			sh.edit(arg)
		case "delete":
			sh.delete(arg)
		case "purge-invalid":
			fmt.Fprintf(sh.out, "Removed %d invalid records\n", sh.s.RemoveInvalid())
			fmt.Fprintln(sh.out, report.CountsLine(sh.s.Counts()))
		case "purge-zero":
			fmt.Fprintf(sh.out, "Removed %d zero-profit records\n", sh.s.RemoveZeroProfit())
			fmt.Fprintln(sh.out, report.CountsLine(sh.s.Counts()))
		case "tax":
			sh.tax(arg)
		case "total":
			sh.total()
		case "report":
			sh.report()
		case "import":
			if arg == "" {
				fmt.Fprintln(sh.out, "usage: import PATH")
				continue
			}
			sh.importFile(arg)
		default:
			fmt.Fprintf(sh.out, "unknown command %q, type help\n", name)
		}
	}
}

func (sh *shell) importFile(path string) {
	if err := sh.s.ImportFile(path); err != nil {
		importAlert(err).Write(sh.out)
		return
	}
	fmt.Fprintf(sh.out, "Imported %s\n", sh.s.Source())
	fmt.Fprintln(sh.out, report.CountsLine(sh.s.Counts()))
}

func (sh *shell) list() {
	if err := report.Table(sh.out, sh.s.Records(), sh.s.Counts()); err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
}

func (sh *shell) row(arg string) (int, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(sh.out, "expected a row number, got %q\n", arg)
		return 0, false
	}
	return n, true
}

func (sh *shell) edit(arg string) {
	n, ok := sh.row(arg)
	if !ok {
		return
	}
	txn, err := sh.s.Record(n)
	if err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
		return
	}

	in := txn.Input()
	fields := []struct {
		label string
		value *string
	}{
		{"Item Code", &in.ItemCode},
		{"Cost", &in.Cost},
		{"Sale Price", &in.SalePrice},
		{"Discount", &in.Discount},
	}
	for _, f := range fields {
		fmt.Fprintf(sh.out, "%s [%s]: ", f.label, *f.value)
		answer, ok := sh.readLine()
		if !ok {
			fmt.Fprintln(sh.out)
			return
		}
		if answer != "" {
			*f.value = answer
		}
	}

	txn, err = sh.s.Edit(n, in)
	if err != nil {
		editAlert(err).Write(sh.out)
		return
	}
	fmt.Fprintf(sh.out, "Record %d updated: %s (checksum %s, %s)\n", n, txn.ItemCode(), txn.Checksum(), report.Validity(txn))
	fmt.Fprintln(sh.out, report.CountsLine(sh.s.Counts()))
}

func (sh *shell) delete(arg string) {
	n, ok := sh.row(arg)
	if !ok {
		return
	}
	if err := sh.s.Delete(n); err != nil {
		deleteAlert(err).Write(sh.out)
		return
	}
	fmt.Fprintf(sh.out, "Record %d deleted\n", n)
	fmt.Fprintln(sh.out, report.CountsLine(sh.s.Counts()))
}

func (sh *shell) tax(arg string) {
	if arg == "" {
		arg = sh.a.cfg.Tax.DefaultRate
	}
	res, err := sh.s.CalculateTax(arg)
	if err != nil {
		taxAlert(err).Write(sh.out)
		return
	}
	fmt.Fprintln(sh.out, report.TaxSummary(res, sh.a.cfg.Tax.Currency))
}

func (sh *shell) total() {
	res, ok := sh.s.LastTax()
	if !ok {
		fmt.Fprintln(sh.out, "No tax calculated yet")
		return
	}
	fmt.Fprintln(sh.out, report.TaxSummary(res, sh.a.cfg.Tax.Currency))
}

func (sh *shell) report() {
	rep := report.Report{
		Source:   sh.s.Source(),
		Records:  sh.s.Records(),
		Counts:   sh.s.Counts(),
		Currency: sh.a.cfg.Tax.Currency,
	}
	if res, ok := sh.s.LastTax(); ok {
		rep.Tax = &res
	}
	if err := writeReport(sh.out, rep, true, sh.a.cfg.Display.Style); err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
}

