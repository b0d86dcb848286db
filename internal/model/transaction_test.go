package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxdesk-dev/taxdesk/internal/checksum"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sample() *Transaction {
	return NewTransaction("ITEM123", dec("100"), dec("150"), dec("10"), "77")
}

func TestNewTransaction_DerivedFields(t *testing.T) {
	txn := sample()
	assert.Equal(t, "ITEM123", txn.ItemCode())
	assert.Equal(t, "77", txn.Checksum())
	assert.Equal(t, "135.00", txn.DiscountedPrice().StringFixed(2))
	assert.Equal(t, "35.00", txn.Profit().StringFixed(2))
}

func TestSetters_Recalculate(t *testing.T) {
	txn := sample()

	txn.SetDiscount(dec("20"))
	assert.True(t, txn.DiscountedPrice().Equal(dec("120")))
	assert.True(t, txn.Profit().Equal(dec("20")))

	txn.SetSalePrice(dec("200"))
	assert.True(t, txn.DiscountedPrice().Equal(dec("160")))
	assert.True(t, txn.Profit().Equal(dec("60")))

	txn.SetCost(dec("170"))
	assert.True(t, txn.Profit().Equal(dec("-10")), "profit may be negative")
}

func TestIsValidChecksum(t *testing.T) {
	assert.True(t, sample().IsValidChecksum())

	wrong := sample()
	wrong.SetChecksum("52")
	assert.False(t, wrong.IsValidChecksum())

	padded := sample()
	padded.SetChecksum("077")
	assert.False(t, padded.IsValidChecksum(), "checksums compare as text")

	empty := sample()
	empty.SetChecksum("")
	assert.False(t, empty.IsValidChecksum())
}

func TestIsValidChecksum_ForbiddenChars(t *testing.T) {
	for _, c := range ForbiddenItemCodeChars {
		code := "IT" + string(c) + "EM"
		sum := checksum.Generate(code, dec("100"), dec("150"), dec("10"))
		txn := NewTransaction(code, dec("100"), dec("150"), dec("10"), sum)
		assert.False(t, txn.IsValidChecksum(), "item code %q", code)
	}

	underscore := NewTransaction("IT_EM", dec("1"), dec("2"), dec("0"), "")
	underscore.SetChecksum(underscore.GenerateChecksum())
	assert.True(t, underscore.IsValidChecksum())
}

func TestIsValidChecksum_Negative(t *testing.T) {
	cost := NewTransaction("ITEM123", dec("-100"), dec("150"), dec("10"), "")
	cost.SetChecksum(cost.GenerateChecksum())
	assert.False(t, cost.IsValidChecksum())

	sale := NewTransaction("ITEM123", dec("100"), dec("-150"), dec("10"), "")
	sale.SetChecksum(sale.GenerateChecksum())
	assert.False(t, sale.IsValidChecksum())
}

func TestIsValidChecksum_AfterMutation(t *testing.T) {
	txn := sample()
	require.True(t, txn.IsValidChecksum())

	txn.SetCost(dec("101"))
	assert.False(t, txn.IsValidChecksum(), "validity is recomputed, not stored")

	txn.SetChecksum(txn.GenerateChecksum())
	assert.True(t, txn.IsValidChecksum())
}

func TestGenerateChecksum_RoundTrip(t *testing.T) {
	records := []*Transaction{
		NewTransaction("Lemon_01", dec("12.5"), dec("20"), dec("12.5"), ""),
		NewTransaction("LE_cup01", dec("0"), dec("0"), dec("0"), ""),
		NewTransaction("BULK9", dec("1234.567"), dec("9999.99"), dec("33.3"), ""),
		NewTransaction("X", dec("5"), dec("4"), dec("150"), ""),
	}
	for _, txn := range records {
		txn.SetChecksum(txn.GenerateChecksum())
		assert.True(t, txn.IsValidChecksum(), "record %s", txn.Line())
	}
}

func TestLine(t *testing.T) {
	assert.Equal(t, "ITEM123,100.00,150.00,10.0,135.00", sample().Line())
}

func TestIsValidChecksum_HalfCentDiscount(t *testing.T) {
	// Generated files carry 53 for this record.
	txn := NewTransaction("X", decimal.Zero, dec("0.50"), dec("7"), "53")
	assert.Equal(t, "X,0.00,0.50,7.0,0.46", txn.Line())
	assert.True(t, txn.IsValidChecksum())
	assert.True(t, txn.DiscountedPrice().Equal(dec("0.465")))
}
