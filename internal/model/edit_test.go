package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEdit(t *testing.T) {
	e, err := ParseEdit(EditInput{ItemCode: " ITEM9 ", Cost: "10", SalePrice: " 25.5", Discount: "100"})
	require.NoError(t, err)
	assert.Equal(t, "ITEM9", e.ItemCode)
	assert.True(t, e.Cost.Equal(dec("10")))
	assert.True(t, e.SalePrice.Equal(dec("25.5")))
	assert.True(t, e.Discount.Equal(dec("100")))
}

func TestParseEdit_Rejections(t *testing.T) {
	valid := EditInput{ItemCode: "ITEM1", Cost: "1", SalePrice: "2", Discount: "0"}

	tests := []struct {
		name    string
		mutate  func(*EditInput)
		wantErr error
		field   string
	}{
		{"empty item code", func(in *EditInput) { in.ItemCode = "  " }, ErrInvalidEdit, "item_code"},
		{"special chars", func(in *EditInput) { in.ItemCode = "ITEM-1" }, ErrInvalidEdit, "item_code"},
		{"cost not a number", func(in *EditInput) { in.Cost = "ten" }, ErrInvalidNumber, ""},
		{"sale price not a number", func(in *EditInput) { in.SalePrice = "" }, ErrInvalidNumber, ""},
		{"discount not a number", func(in *EditInput) { in.Discount = "5%" }, ErrInvalidNumber, ""},
		{"negative cost", func(in *EditInput) { in.Cost = "-1" }, ErrInvalidEdit, "cost"},
		{"negative sale price", func(in *EditInput) { in.SalePrice = "-0.01" }, ErrInvalidEdit, "sale_price"},
		{"discount below range", func(in *EditInput) { in.Discount = "-1" }, ErrInvalidEdit, "discount"},
		{"discount above range", func(in *EditInput) { in.Discount = "100.1" }, ErrInvalidEdit, "discount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := ParseEdit(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var ve ValidationError
			if tt.field != "" {
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, tt.field, ve.Field)
			}
		})
	}
}

func TestEdit_CostExceedsSale(t *testing.T) {
	assert.True(t, Edit{Cost: dec("10"), SalePrice: dec("9.99")}.CostExceedsSale())
	assert.False(t, Edit{Cost: dec("10"), SalePrice: dec("10")}.CostExceedsSale())
}

func TestApply_RegeneratesOnChange(t *testing.T) {
	txn := sample()
	txn.SetChecksum("1")

	regenerated := txn.Apply(Edit{ItemCode: "ITEM123", Cost: dec("90"), SalePrice: dec("150"), Discount: dec("10")})
	assert.True(t, regenerated)
	assert.True(t, txn.Profit().Equal(dec("45")))
	assert.True(t, txn.IsValidChecksum())
}

func TestApply_KeepsChecksumWhenUnchanged(t *testing.T) {
	txn := sample()
	txn.SetChecksum("1")

	regenerated := txn.Apply(Edit{ItemCode: "ITEM123", Cost: dec("100.00"), SalePrice: dec("150"), Discount: dec("10.0")})
	assert.False(t, regenerated)
	assert.Equal(t, "1", txn.Checksum())
}

func TestApply_FillsEmptyChecksum(t *testing.T) {
	txn := sample()
	txn.SetChecksum("")

	regenerated := txn.Apply(Edit{ItemCode: "ITEM123", Cost: dec("100"), SalePrice: dec("150"), Discount: dec("10")})
	assert.True(t, regenerated)
	assert.Equal(t, "77", txn.Checksum())
}

func TestInput_RoundTrip(t *testing.T) {
	txn := sample()
	e, err := ParseEdit(txn.Input())
	require.NoError(t, err)
	assert.False(t, txn.Apply(e))
}
