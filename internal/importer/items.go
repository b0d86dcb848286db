package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/taxdesk-dev/taxdesk/internal/model"
)

// ErrNoItems reports an item list with no data lines.
var ErrNoItems = errors.New("no items found in the file")

// ItemsHeader is the column layout of an item list. Discount may be left
// out and defaults to 0; further columns such as quantity are ignored.
const ItemsHeader = "ItemCode,Cost,SalePrice,Discount"

const itemsMinFields = 3

// ParseItems reads an item list and validates every line the same way an
// edit is validated. The first line is a header.
func ParseItems(r io.Reader) ([]model.Edit, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("reading item list: %w", err)
	}

	var items []model.Edit
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		fields := splitFields(line)
		if len(fields) < itemsMinFields {
			return nil, &LineError{Line: i + 1, Err: fmt.Errorf("%w: expected at least %d columns, but found %d", ErrMalformedRow, itemsMinFields, len(fields))}
		}
		in := model.EditInput{
			ItemCode:  fields[0],
			Cost:      fields[1],
			SalePrice: fields[2],
			Discount:  "0",
		}
		if len(fields) > 3 && strings.TrimSpace(fields[3]) != "" {
			in.Discount = fields[3]
		}
		e, err := model.ParseEdit(in)
		if err != nil {
			return nil, &LineError{Line: i + 1, Err: err}
		}
		items = append(items, e)
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

// WriteTaxFile writes txns as a tax transaction file: the header, then one
// checksum line and stored checksum per record.
func WriteTaxFile(w io.Writer, txns []*model.Transaction) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, Header)
	for _, t := range txns {
		fmt.Fprintf(bw, "%s,%s\n", t.Line(), t.Checksum())
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing tax file: %w", err)
	}
	return nil
}
