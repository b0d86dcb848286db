// Package checksum computes the validation code stored alongside each
// transaction line in a tax transaction file.
package checksum

import (
	"fmt"
	"math"
	"strconv"
	"unicode"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Calculate returns the checksum of a formatted transaction line.
//
// Every character falls into one bucket: uppercase letter, lowercase letter,
// digit, '.', '_' or ignored. Digits also add their numeric value to the
// digit sum. The number count is weighted twice in the result; generated
// files depend on this, so it must not change.
func Calculate(line string) int {
	var capitalCount, simpleCount, numberCount, underscoreCount, digitSum int

	for _, r := range line {
		switch {
		case unicode.IsUpper(r):
			capitalCount++
		case unicode.IsLower(r):
			simpleCount++
		case unicode.IsDigit(r):
			numberCount++
			digitSum += digitValue(r)
		case r == '.':
			numberCount++
		case r == '_':
			underscoreCount++
		}
	}

	return capitalCount + simpleCount + numberCount + underscoreCount + digitSum + numberCount
}

// FormatLine renders the checksum input for a transaction:
// itemCode,cost,salePrice,discount,discountedPrice with two decimals for
// prices and one for the discount. Each amount is rounded half up from the
// shortest decimal form of its float64 value, which is how existing files
// were generated.
func FormatLine(itemCode string, cost, salePrice, discount, discountedPrice decimal.Decimal) string {
	return fmt.Sprintf("%s,%s,%s,%s,%s",
		itemCode,
		asFloat(cost).StringFixed(2),
		asFloat(salePrice).StringFixed(2),
		asFloat(discount).StringFixed(1),
		asFloat(discountedPrice).StringFixed(2),
	)
}

// Line returns the checksum input for the given transaction inputs. The
// discounted price in the line is evaluated in float64 as
// salePrice - salePrice*(discount/100), so at half-cent boundaries it can
// differ from DiscountedPrice by one cent.
func Line(itemCode string, cost, salePrice, discount decimal.Decimal) string {
	return FormatLine(itemCode, cost, salePrice, discount, floatDiscountedPrice(salePrice, discount))
}

// DiscountedPrice applies a percentage discount to a sale price exactly.
func DiscountedPrice(salePrice, discount decimal.Decimal) decimal.Decimal {
	return salePrice.Sub(salePrice.Mul(discount).Div(hundred))
}

// Generate returns the checksum text for the given transaction inputs.
func Generate(itemCode string, cost, salePrice, discount decimal.Decimal) string {
	return strconv.Itoa(Calculate(Line(itemCode, cost, salePrice, discount)))
}

func floatDiscountedPrice(salePrice, discount decimal.Decimal) decimal.Decimal {
	s, _ := salePrice.Float64()
	d, _ := discount.Float64()
	v := s - s*(d/100)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return DiscountedPrice(salePrice, discount)
	}
	return decimal.NewFromFloat(v)
}

// asFloat returns d as the shortest decimal that round-trips its nearest
// float64. Values outside the float64 range are returned unchanged.
func asFloat(d decimal.Decimal) decimal.Decimal {
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return d
	}
	return decimal.NewFromFloat(f)
}

// digitValue returns the numeric value of a decimal digit in any script.
// Unicode lays out each Nd block as a contiguous run starting at zero.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	for _, rng := range unicode.Nd.R16 {
		if r >= rune(rng.Lo) && r <= rune(rng.Hi) {
			return int(r-rune(rng.Lo)) % 10
		}
	}
	for _, rng := range unicode.Nd.R32 {
		if r >= rune(rng.Lo) && r <= rune(rng.Hi) {
			return int(r-rune(rng.Lo)) % 10
		}
	}
	return 0
}
