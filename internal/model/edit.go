package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidEdit is matched by every ValidationError.
	ErrInvalidEdit = errors.New("invalid edit")
	// ErrInvalidNumber reports a field that does not parse as a number.
	ErrInvalidNumber = errors.New("invalid number")
)

var maxDiscount = decimal.NewFromInt(100)

// ValidationError describes an edited value that was rejected.
type ValidationError struct {
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	return e.Description
}

func (e ValidationError) Unwrap() error {
	return ErrInvalidEdit
}

// EditInput holds the raw text entered for a record.
type EditInput struct {
	ItemCode  string
	Cost      string
	SalePrice string
	Discount  string
}

// Edit is a validated set of new values for a record.
type Edit struct {
	ItemCode  string
	Cost      decimal.Decimal
	SalePrice decimal.Decimal
	Discount  decimal.Decimal
}

// ParseAmount parses the trimmed text of a numeric field.
func ParseAmount(field, text string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q", ErrInvalidNumber, field, text)
	}
	return d, nil
}

// ParseEdit validates raw input. Unlike import, it also requires the
// discount to be within 0-100.
func ParseEdit(in EditInput) (Edit, error) {
	itemCode := strings.TrimSpace(in.ItemCode)
	if itemCode == "" {
		return Edit{}, ValidationError{Field: "item_code", Description: "Item code cannot be empty"}
	}
	if HasForbiddenChars(itemCode) {
		return Edit{}, ValidationError{Field: "item_code", Description: "Item code contains invalid special characters"}
	}

	cost, err := ParseAmount("cost", in.Cost)
	if err != nil {
		return Edit{}, err
	}
	salePrice, err := ParseAmount("sale price", in.SalePrice)
	if err != nil {
		return Edit{}, err
	}
	discount, err := ParseAmount("discount", in.Discount)
	if err != nil {
		return Edit{}, err
	}

	if cost.IsNegative() {
		return Edit{}, ValidationError{Field: "cost", Description: "Cost cannot be negative"}
	}
	if salePrice.IsNegative() {
		return Edit{}, ValidationError{Field: "sale_price", Description: "Sale price cannot be negative"}
	}
	if discount.IsNegative() || discount.GreaterThan(maxDiscount) {
		return Edit{}, ValidationError{Field: "discount", Description: "Discount must be between 0 and 100"}
	}

	return Edit{ItemCode: itemCode, Cost: cost, SalePrice: salePrice, Discount: discount}, nil
}

// CostExceedsSale reports whether the edit will produce a negative profit
// before any discount is applied.
func (e Edit) CostExceedsSale() bool {
	return e.Cost.GreaterThan(e.SalePrice)
}

// Input returns the current values of t as edit text.
func (t *Transaction) Input() EditInput {
	return EditInput{
		ItemCode:  t.itemCode,
		Cost:      t.cost.String(),
		SalePrice: t.salePrice.String(),
		Discount:  t.discount.String(),
	}
}

// Apply writes the edit into t. The checksum is regenerated when any value
// changed or no checksum is stored; it reports whether that happened.
func (t *Transaction) Apply(e Edit) bool {
	changed := e.ItemCode != t.itemCode ||
		!e.Cost.Equal(t.cost) ||
		!e.SalePrice.Equal(t.salePrice) ||
		!e.Discount.Equal(t.discount)

	t.itemCode = e.ItemCode
	t.cost = e.Cost
	t.salePrice = e.SalePrice
	t.discount = e.Discount
	t.recalculate()

	if changed || t.checksum == "" {
		t.checksum = t.GenerateChecksum()
		return true
	}
	return false
}
