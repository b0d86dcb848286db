// Package ledger holds the operations over a working list of transactions.
// Every function returns a new slice; the input is never modified.
package ledger

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/taxdesk-dev/taxdesk/internal/model"
)

var (
	// ErrDeleteRefused is returned when deleting a record that passes validation.
	ErrDeleteRefused = errors.New("only invalid records can be deleted")
	// ErrNotFound is returned when the record is not in the list.
	ErrNotFound = errors.New("record not found")
)

// Counts summarizes a list by validity.
type Counts struct {
	Total   int
	Valid   int
	Invalid int
}

// Partition counts valid and invalid records.
func Partition(txns []*model.Transaction) Counts {
	valid := 0
	for _, t := range txns {
		if t.IsValidChecksum() {
			valid++
		}
	}
	return Counts{Total: len(txns), Valid: valid, Invalid: len(txns) - valid}
}

// RemoveInvalid returns the records that pass validation.
func RemoveInvalid(txns []*model.Transaction) []*model.Transaction {
	return filter(txns, (*model.Transaction).IsValidChecksum)
}

// RemoveZeroProfit returns the records whose profit is not exactly zero.
func RemoveZeroProfit(txns []*model.Transaction) []*model.Transaction {
	return filter(txns, func(t *model.Transaction) bool {
		return !t.Profit().IsZero()
	})
}

// TotalProfit sums profit over all records.
func TotalProfit(txns []*model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Profit())
	}
	return total
}

// DeleteOne removes target from txns. Records that pass validation cannot
// be deleted individually.
func DeleteOne(txns []*model.Transaction, target *model.Transaction) ([]*model.Transaction, error) {
	idx := -1
	for i, t := range txns {
		if t == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		return txns, ErrNotFound
	}
	if target.IsValidChecksum() {
		return txns, ErrDeleteRefused
	}

	out := make([]*model.Transaction, 0, len(txns)-1)
	out = append(out, txns[:idx]...)
	return append(out, txns[idx+1:]...), nil
}

func filter(txns []*model.Transaction, keep func(*model.Transaction) bool) []*model.Transaction {
	out := make([]*model.Transaction, 0, len(txns))
	for _, t := range txns {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
