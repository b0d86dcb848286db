// Package session owns the working set of transactions for one interactive
// flow: import, review, edit, delete and tax calculation. Every operation
// either completes or leaves the working set exactly as it was.
package session

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/taxdesk-dev/taxdesk/internal/importer"
	"github.com/taxdesk-dev/taxdesk/internal/ledger"
	"github.com/taxdesk-dev/taxdesk/internal/model"
	"github.com/taxdesk-dev/taxdesk/internal/tax"
)

var (
	// ErrEditCancelled is returned when the user declines a warning during edit.
	ErrEditCancelled = errors.New("edit cancelled")
	// ErrNoRecord is returned for a row number outside the working set.
	ErrNoRecord = errors.New("no such record")
)

// Confirmer asks the user to approve an operation.
type Confirmer interface {
	Confirm(title, header, detail string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(title, header, detail string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(title, header, detail string) bool {
	return f(title, header, detail)
}

// Session holds the working set. It is not safe for concurrent use.
type Session struct {
	parser  importer.Parser
	log     *logrus.Logger
	confirm Confirmer

	source  string
	records []*model.Transaction
	lastTax *tax.Result
}

// New creates an empty Session. A nil Confirmer declines every prompt.
func New(log *logrus.Logger, confirm Confirmer) *Session {
	if confirm == nil {
		confirm = ConfirmFunc(func(string, string, string) bool { return false })
	}
	return &Session{
		parser:  importer.DefaultRegistry().Get("tax"),
		log:     log,
		confirm: confirm,
	}
}

// ImportFile replaces the working set with the records in path.
func (s *Session) ImportFile(path string) error {
	txns, err := importer.ReadFile(s.parser, path)
	if err != nil {
		s.log.WithError(err).WithField("file", path).Warn("import.Failed")
		return err
	}
	s.replace(filepath.Base(path), txns)
	return nil
}

// Import replaces the working set with the records read from r. On failure
// the previous working set is kept.
func (s *Session) Import(name string, r io.Reader) error {
	txns, err := s.parser.Parse(r)
	if err != nil {
		s.log.WithError(err).WithField("file", name).Warn("import.Failed")
		return err
	}
	s.replace(name, txns)
	return nil
}

func (s *Session) replace(name string, txns []*model.Transaction) {
	s.source = name
	s.records = txns
	s.lastTax = nil

	entry := s.log.WithField("file", name)
	counts := ledger.Partition(txns)
	entry.WithFields(logrus.Fields{
		"records": counts.Total,
		"valid":   counts.Valid,
		"invalid": counts.Invalid,
	}).Info("import.Complete")
	if s.log.IsLevelEnabled(logrus.DebugLevel) {
		entry.Debug("import.Records\n" + spew.Sdump(lines(txns)))
	}
}

// Source returns the name of the last imported file.
func (s *Session) Source() string {
	return s.source
}

// Records returns the working set in display order.
func (s *Session) Records() []*model.Transaction {
	out := make([]*model.Transaction, len(s.records))
	copy(out, s.records)
	return out
}

// Record returns the record at a 1-based row number.
func (s *Session) Record(row int) (*model.Transaction, error) {
	if row < 1 || row > len(s.records) {
		return nil, fmt.Errorf("%w: row %d (have %d)", ErrNoRecord, row, len(s.records))
	}
	return s.records[row-1], nil
}

// Counts returns the all/valid/invalid totals of the working set.
func (s *Session) Counts() ledger.Counts {
	return ledger.Partition(s.records)
}

// Edit validates in and applies it to the record at row. If the cost
// exceeds the sale price the user must confirm.
func (s *Session) Edit(row int, in model.EditInput) (*model.Transaction, error) {
	txn, err := s.Record(row)
	if err != nil {
		return nil, err
	}

	e, err := model.ParseEdit(in)
	if err != nil {
		s.log.WithError(err).WithField("row", row).Warn("edit.Rejected")
		return nil, err
	}

	if e.CostExceedsSale() && !s.confirm.Confirm(
		"Warning",
		"Cost exceeds Sale Price",
		"The cost is higher than the sale price, which will result in negative profit.",
	) {
		s.log.WithField("row", row).Info("edit.Cancelled")
		return nil, ErrEditCancelled
	}

	regenerated := txn.Apply(e)
	s.log.WithFields(logrus.Fields{
		"row":         row,
		"item_code":   txn.ItemCode(),
		"checksum":    txn.Checksum(),
		"regenerated": regenerated,
	}).Info("edit.Complete")
	return txn, nil
}

// Delete removes the record at row. Valid records are refused.
func (s *Session) Delete(row int) error {
	txn, err := s.Record(row)
	if err != nil {
		return err
	}
	out, err := ledger.DeleteOne(s.records, txn)
	if err != nil {
		s.log.WithError(err).WithField("row", row).Warn("delete.Refused")
		return err
	}
	s.records = out
	s.log.WithFields(logrus.Fields{"row": row, "item_code": txn.ItemCode()}).Info("delete.Complete")
	return nil
}

// RemoveInvalid drops every invalid record and returns how many were removed.
func (s *Session) RemoveInvalid() int {
	before := len(s.records)
	s.records = ledger.RemoveInvalid(s.records)
	removed := before - len(s.records)
	s.log.WithField("removed", removed).Info("purge.Invalid")
	return removed
}

// RemoveZeroProfit drops every record with exactly zero profit and returns
// how many were removed.
func (s *Session) RemoveZeroProfit() int {
	before := len(s.records)
	s.records = ledger.RemoveZeroProfit(s.records)
	removed := before - len(s.records)
	s.log.WithField("removed", removed).Info("purge.ZeroProfit")
	return removed
}

// CalculateTax computes tax over the working set. The result becomes the
// displayed total; on failure the previous total stays displayed.
func (s *Session) CalculateTax(rate string) (tax.Result, error) {
	res, err := tax.Compute(s.records, rate)
	if err != nil {
		s.log.WithError(err).Warn("tax.Failed")
		return tax.Result{}, err
	}
	s.lastTax = &res
	s.log.WithFields(logrus.Fields{
		"rate":         res.Rate.String(),
		"total_profit": res.TotalProfit.StringFixed(2),
		"final_tax":    res.FinalTax.StringFixed(2),
	}).Info("tax.Complete")
	return res, nil
}

// LastTax returns the most recent successful tax result since the last import.
func (s *Session) LastTax() (tax.Result, bool) {
	if s.lastTax == nil {
		return tax.Result{}, false
	}
	return *s.lastTax, true
}

func lines(txns []*model.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.Line() + "," + t.Checksum()
	}
	return out
}
