// Package report renders the working set and tax results for the terminal.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"github.com/taxdesk-dev/taxdesk/internal/ledger"
	"github.com/taxdesk-dev/taxdesk/internal/model"
	"github.com/taxdesk-dev/taxdesk/internal/tax"
)

var columns = []string{"No.", "Item Code", "Cost", "Sale Price", "Discount", "Disc. Price", "Checksum", "Validity", "Profit"}

// Report is everything shown for one working set.
type Report struct {
	Source   string
	Records  []*model.Transaction
	Counts   ledger.Counts
	Tax      *tax.Result
	Currency string
}

// Validity returns the label shown for a record.
func Validity(t *model.Transaction) string {
	if t.IsValidChecksum() {
		return "Valid"
	}
	return "Invalid"
}

func row(i int, t *model.Transaction) []string {
	return []string{
		fmt.Sprintf("%d", i+1),
		t.ItemCode(),
		t.Cost().StringFixed(2),
		t.SalePrice().StringFixed(2),
		t.Discount().StringFixed(1),
		t.DiscountedPrice().StringFixed(2),
		t.Checksum(),
		Validity(t),
		t.Profit().StringFixed(2),
	}
}

// CountsLine formats the all/valid/invalid totals.
func CountsLine(c ledger.Counts) string {
	return fmt.Sprintf("All Records: %d  Valid: %d  Invalid: %d", c.Total, c.Valid, c.Invalid)
}

// Table writes an aligned plain-text table followed by the record counts.
func Table(w io.Writer, txns []*model.Transaction, counts ledger.Counts) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(columns, "\t")); err != nil {
		return err
	}
	for i, t := range txns {
		if _, err := fmt.Fprintln(tw, strings.Join(row(i, t), "\t")); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, CountsLine(counts))
	return err
}

// Money formats amount in the given ISO 4217 currency, rounded to the
// currency's minor unit.
func Money(amount decimal.Decimal, currency string) string {
	cur := money.New(0, currency).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// TaxSummary formats a tax result as the two display lines.
func TaxSummary(res tax.Result, currency string) string {
	return fmt.Sprintf("Total Profit: %s\nFinal Tax: %s",
		Money(res.TotalProfit, currency),
		Money(res.FinalTax, currency),
	)
}

var alignment = []md.TableAlignment{
	md.AlignRight, // No.
	md.AlignLeft,  // Item Code
	md.AlignRight,
	md.AlignRight,
	md.AlignRight,
	md.AlignRight,
	md.AlignRight,
	md.AlignLeft, // Validity
	md.AlignRight,
}

// Markdown renders r as a markdown document.
func Markdown(r Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if r.Source != "" {
		doc.H1f("Tax transactions: %s", escape(r.Source))
	} else {
		doc.H1("Tax transactions")
	}

	table := md.TableSet{
		Alignment: alignment,
		Header:    columns,
		Rows:      [][]string{},
	}
	for i, t := range r.Records {
		cells := row(i, t)
		for j := range cells {
			cells[j] = escape(cells[j])
		}
		table.Rows = append(table.Rows, cells)
	}
	doc.Table(table)

	doc.PlainTextf("%s %d, %s %d, %s %d",
		md.Bold("All records:"), r.Counts.Total,
		md.Bold("Valid:"), r.Counts.Valid,
		md.Bold("Invalid:"), r.Counts.Invalid)

	if r.Tax != nil {
		doc.H2("Tax")
		doc.BulletList(
			fmt.Sprintf("Rate: %s%%", r.Tax.Rate.String()),
			"Total Profit: "+escape(Money(r.Tax.TotalProfit, r.Currency)),
			"Final Tax: "+escape(Money(r.Tax.FinalTax, r.Currency)),
		)
	}
	return doc.String()
}

// Render styles markdown for a terminal. style is a glamour standard style
// name; "auto" picks one from the terminal background.
func Render(text, style string) (string, error) {
	opt := glamour.WithStandardStyle(style)
	if style == "" || style == "auto" {
		opt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(120))
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(text)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}

// The markdown builder writes cell and heading text verbatim.
var mdEscaper = strings.NewReplacer(`\`, `\\`, "|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return mdEscaper.Replace(s)
}
