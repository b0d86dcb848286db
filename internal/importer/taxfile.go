package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/taxdesk-dev/taxdesk/internal/model"
)

var (
	// ErrMalformedRow reports a data line with too few columns.
	ErrMalformedRow = errors.New("malformed row")
	// ErrNoTransactions reports a file that produced no records.
	ErrNoTransactions = errors.New("no valid transactions found in the file")
)

// LineError attaches a 1-based line number to an import failure.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Header is the column layout of a tax transaction file. The first line of
// a file is always skipped, whatever it contains.
const Header = "ItemCode,Cost,SalePrice,Discount,DiscountedPrice,Checksum"

const (
	taxMinFields      = 6
	taxColItemCode    = 0
	taxColCost        = 1
	taxColSalePrice   = 2
	taxColDiscount    = 3
	taxColDiscPrice   = 4 // recomputed, never trusted
	taxColChecksum    = 5
	maxLineBytes      = 1 << 20
	initialLineBuffer = 64 * 1024
)

// TaxParser parses tax transaction files: comma-separated, no quoting,
// one header line.
type TaxParser struct{}

// Format returns the parser name.
func (p *TaxParser) Format() string { return "tax" }

// Parse reads a tax transaction file. Any bad line aborts the whole import
// and no records are returned.
func (p *TaxParser) Parse(r io.Reader) ([]*model.Transaction, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("reading tax file: %w", err)
	}
	return ParseLines(lines)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, initialLineBuffer), maxLineBytes)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// ParseLines parses the raw lines of a tax transaction file.
func ParseLines(lines []string) ([]*model.Transaction, error) {
	var txns []*model.Transaction
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		txn, err := parseTaxRow(splitFields(line))
		if err != nil {
			return nil, &LineError{Line: i + 1, Err: err}
		}
		txns = append(txns, txn)
	}
	if len(txns) == 0 {
		return nil, ErrNoTransactions
	}
	return txns, nil
}

func parseTaxRow(fields []string) (*model.Transaction, error) {
	if len(fields) < taxMinFields {
		return nil, fmt.Errorf("%w: expected at least %d columns, but found %d", ErrMalformedRow, taxMinFields, len(fields))
	}

	cost, err := model.ParseAmount("cost", fields[taxColCost])
	if err != nil {
		return nil, err
	}
	salePrice, err := model.ParseAmount("sale price", fields[taxColSalePrice])
	if err != nil {
		return nil, err
	}
	discount, err := model.ParseAmount("discount", fields[taxColDiscount])
	if err != nil {
		return nil, err
	}

	return model.NewTransaction(
		strings.TrimSpace(fields[taxColItemCode]),
		cost,
		salePrice,
		discount,
		strings.TrimSpace(fields[taxColChecksum]),
	), nil
}

// splitFields splits on commas and drops trailing empty fields, so
// "A,1,2,3,4," has five columns.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	n := len(fields)
	for n > 0 && fields[n-1] == "" {
		n--
	}
	return fields[:n]
}
