package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/taxdesk-dev/taxdesk/internal/ledger"
	"github.com/taxdesk-dev/taxdesk/internal/model"
	"github.com/taxdesk-dev/taxdesk/internal/session"
	"github.com/taxdesk-dev/taxdesk/internal/tax"
)

// Alert is the title/header/detail triple shown to the user when an
// operation did not happen.
type Alert struct {
	Title  string
	Header string
	Detail string
}

// Write prints the alert as a single block.
func (a Alert) Write(w io.Writer) {
	fmt.Fprintf(w, "[%s] %s\n  %s\n", a.Title, a.Header, a.Detail)
}

func importAlert(err error) Alert {
	return Alert{Title: "Import Error", Header: "Failed to process file", Detail: err.Error()}
}

func editAlert(err error) Alert {
	var ve model.ValidationError
	switch {
	case errors.As(err, &ve):
		return Alert{Title: "Validation Error", Header: "Invalid Input", Detail: ve.Description}
	case errors.Is(err, model.ErrInvalidNumber):
		return Alert{Title: "Validation Error", Header: "Invalid Input", Detail: "Please enter valid numeric values for all fields"}
	case errors.Is(err, session.ErrEditCancelled):
		return Alert{Title: "Edit", Header: "Edit cancelled", Detail: "The record was not changed."}
	default:
		return Alert{Title: "Edit Error", Header: "Cannot edit record", Detail: err.Error()}
	}
}

func deleteAlert(err error) Alert {
	if errors.Is(err, ledger.ErrDeleteRefused) {
		return Alert{Title: "Warning", Header: "Cannot Delete Valid Record", Detail: "Only invalid records can be deleted."}
	}
	return Alert{Title: "Delete Error", Header: "Cannot delete record", Detail: err.Error()}
}

func taxAlert(err error) Alert {
	if errors.Is(err, tax.ErrInvalidRate) {
		return Alert{Title: "Tax Error", Header: "Invalid tax rate", Detail: "Invalid tax rate. Please enter a valid number."}
	}
	return Alert{Title: "Tax Error", Header: "Error calculating tax", Detail: err.Error()}
}
