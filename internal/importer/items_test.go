package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxdesk-dev/taxdesk/internal/model"
)

func TestParseItems(t *testing.T) {
	input := ItemsHeader + "\n" +
		"Lemon_01,20,35,10\n" +
		"\n" +
		" BREAD2 ,40,40\n" +
		"MILK_1L,120,150,,3\n"

	items, err := ParseItems(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Lemon_01", items[0].ItemCode)
	assert.True(t, items[0].Discount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "BREAD2", items[1].ItemCode)
	assert.True(t, items[1].Discount.IsZero())
	assert.True(t, items[2].Discount.IsZero(), "empty discount column")
}

func TestParseItems_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		target error
	}{
		{"too few columns", "A,1", ErrMalformedRow},
		{"forbidden character", "A@B,1,2,0", model.ErrInvalidEdit},
		{"not a number", "A,x,2,0", model.ErrInvalidNumber},
		{"discount out of range", "A,1,2,101", model.ErrInvalidEdit},
		{"negative cost", "A,-1,2,0", model.ErrInvalidEdit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ParseItems(strings.NewReader(ItemsHeader + "\nOK,1,2,0\n" + tt.row + "\n"))
			require.Error(t, err)
			assert.Nil(t, items)
			assert.ErrorIs(t, err, tt.target)

			var le *LineError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, 3, le.Line)
		})
	}
}

func TestParseItems_Empty(t *testing.T) {
	_, err := ParseItems(strings.NewReader(ItemsHeader + "\n\n"))
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestWriteTaxFile_ImportsBackValid(t *testing.T) {
	txns := []*model.Transaction{
		model.NewTransaction("ITEM123", decimal.NewFromInt(100), decimal.NewFromInt(150), decimal.NewFromInt(10), ""),
		model.NewTransaction("X", decimal.Zero, decimal.RequireFromString("0.50"), decimal.NewFromInt(7), ""),
	}
	for _, txn := range txns {
		txn.SetChecksum(txn.GenerateChecksum())
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTaxFile(&buf, txns))
	assert.Equal(t, Header+"\n"+
		"ITEM123,100.00,150.00,10.0,135.00,77\n"+
		"X,0.00,0.50,7.0,0.46,53\n", buf.String())

	back, err := (&TaxParser{}).Parse(&buf)
	require.NoError(t, err)
	require.Len(t, back, 2)
	for _, txn := range back {
		assert.True(t, txn.IsValidChecksum(), "record %s", txn.ItemCode())
	}
}
