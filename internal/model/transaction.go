package model

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxdesk-dev/taxdesk/internal/checksum"
)

// ForbiddenItemCodeChars lists the characters an item code may not contain.
// Underscore is allowed.
const ForbiddenItemCodeChars = "!@#$%^&*()+=[]{}|;:'\",.<>/?`~-"

// Transaction is one line item of a tax transaction file.
// DiscountedPrice and Profit are derived and recomputed on every change to
// the inputs they depend on.
type Transaction struct {
	itemCode        string
	cost            decimal.Decimal
	salePrice       decimal.Decimal
	discount        decimal.Decimal // percentage, 0-100 on the edit path only
	checksum        string
	discountedPrice decimal.Decimal
	profit          decimal.Decimal
}

// NewTransaction creates a Transaction and computes its derived fields.
func NewTransaction(itemCode string, cost, salePrice, discount decimal.Decimal, checksum string) *Transaction {
	t := &Transaction{
		itemCode:  itemCode,
		cost:      cost,
		salePrice: salePrice,
		discount:  discount,
		checksum:  checksum,
	}
	t.recalculate()
	return t
}

// ItemCode returns the item code as stored.
func (t *Transaction) ItemCode() string { return t.itemCode }

// Cost returns the cost price.
func (t *Transaction) Cost() decimal.Decimal { return t.cost }

// SalePrice returns the sale price before discount.
func (t *Transaction) SalePrice() decimal.Decimal { return t.salePrice }

// Discount returns the discount percentage.
func (t *Transaction) Discount() decimal.Decimal { return t.discount }

// Checksum returns the stored checksum text.
func (t *Transaction) Checksum() string { return t.checksum }

// DiscountedPrice returns salePrice less the discount, computed exactly.
func (t *Transaction) DiscountedPrice() decimal.Decimal { return t.discountedPrice }

// Profit returns DiscountedPrice minus Cost.
func (t *Transaction) Profit() decimal.Decimal { return t.profit }

// SetItemCode replaces the item code. Derived fields do not depend on it.
func (t *Transaction) SetItemCode(v string) { t.itemCode = v }

// SetChecksum replaces the stored checksum without validating it.
func (t *Transaction) SetChecksum(v string) { t.checksum = v }

// SetCost replaces the cost and recomputes Profit.
func (t *Transaction) SetCost(v decimal.Decimal) {
	t.cost = v
	t.recalculate()
}

// SetSalePrice replaces the sale price and recomputes DiscountedPrice and Profit.
func (t *Transaction) SetSalePrice(v decimal.Decimal) {
	t.salePrice = v
	t.recalculate()
}

// SetDiscount replaces the discount and recomputes DiscountedPrice and Profit.
// The 0-100 range is not checked here.
func (t *Transaction) SetDiscount(v decimal.Decimal) {
	t.discount = v
	t.recalculate()
}

func (t *Transaction) recalculate() {
	t.discountedPrice = checksum.DiscountedPrice(t.salePrice, t.discount)
	t.profit = t.discountedPrice.Sub(t.cost)
}

// Line returns the formatted line the checksum is computed over.
func (t *Transaction) Line() string {
	return checksum.Line(t.itemCode, t.cost, t.salePrice, t.discount)
}

// GenerateChecksum returns the checksum text for the current field values.
func (t *Transaction) GenerateChecksum() string {
	return checksum.Generate(t.itemCode, t.cost, t.salePrice, t.discount)
}

// IsValidChecksum reports whether the record passes validation: the item
// code has no forbidden characters, cost and sale price are not negative,
// and the stored checksum equals the computed one as text.
func (t *Transaction) IsValidChecksum() bool {
	if HasForbiddenChars(t.itemCode) {
		return false
	}
	if t.cost.IsNegative() || t.salePrice.IsNegative() {
		return false
	}
	t.recalculate()
	return t.GenerateChecksum() == t.checksum
}

// HasForbiddenChars reports whether itemCode contains any character from
// ForbiddenItemCodeChars.
func HasForbiddenChars(itemCode string) bool {
	return strings.ContainsAny(itemCode, ForbiddenItemCodeChars)
}
