package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem(t *testing.T) {
	tests := []struct {
		name           string
		itemName       string
		unitPrice      string
		currency       string
		quantity       int64
		wantUnitAmount int64
		wantCurrency   string
		wantError      error
	}{
		{
			name:           "正常系: USDの単価をセントに変換",
			itemName:       "T-shirt",
			unitPrice:      "20.00",
			currency:       "usd",
			quantity:       1,
			wantUnitAmount: 2000,
			wantCurrency:   "usd",
		},
		{
			name:           "正常系: 通貨コードは小文字に正規化",
			itemName:       "Mug",
			unitPrice:      "4.5",
			currency:       "EUR",
			quantity:       3,
			wantUnitAmount: 450,
			wantCurrency:   "eur",
		},
		{
			name:           "正常系: 補助単位のない通貨",
			itemName:       "Tenugui",
			unitPrice:      "1500",
			currency:       "jpy",
			quantity:       2,
			wantUnitAmount: 1500,
			wantCurrency:   "jpy",
		},
		{
			name:      "異常系: 単価が数値でない",
			itemName:  "T-shirt",
			unitPrice: "twenty",
			currency:  "usd",
			quantity:  1,
			wantError: ErrInvalidLineItem,
		},
		{
			name:      "異常系: 補助単位より細かい単価",
			itemName:  "T-shirt",
			unitPrice: "20.005",
			currency:  "usd",
			quantity:  1,
			wantError: ErrInvalidLineItem,
		},
		{
			name:      "異常系: JPYで小数点以下の単価",
			itemName:  "Tenugui",
			unitPrice: "1500.5",
			currency:  "jpy",
			quantity:  1,
			wantError: ErrInvalidLineItem,
		},
		{
			name:      "異常系: 単価が0",
			itemName:  "T-shirt",
			unitPrice: "0",
			currency:  "usd",
			quantity:  1,
			wantError: ErrInvalidLineItem,
		},
		{
			name:      "異常系: 商品名が空",
			itemName:  "  ",
			unitPrice: "20.00",
			currency:  "usd",
			quantity:  1,
			wantError: ErrInvalidLineItem,
		},
		{
			name:      "異常系: 通貨コードが3文字でない",
			itemName:  "T-shirt",
			unitPrice: "20.00",
			currency:  "usdd",
			quantity:  1,
			wantError: ErrInvalidLineItem,
		},
		{
			name:      "異常系: 数量が0",
			itemName:  "T-shirt",
			unitPrice: "20.00",
			currency:  "usd",
			quantity:  0,
			wantError: ErrInvalidLineItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLineItem(tt.itemName, tt.unitPrice, tt.currency, tt.quantity)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUnitAmount, got.UnitAmount())
			assert.Equal(t, tt.wantCurrency, got.Currency())
			assert.Equal(t, tt.quantity, got.Quantity())
		})
	}
}

func TestLineItem_Amounts(t *testing.T) {
	li, err := NewLineItem("T-shirt", "20.00", "usd", 3)
	require.NoError(t, err)

	assert.Equal(t, "T-shirt", li.Name())
	assert.Equal(t, "20", li.UnitPrice().String())
	assert.Equal(t, int64(6000), li.TotalAmount())
}

func TestMinorUnitExponent(t *testing.T) {
	assert.Equal(t, int32(2), MinorUnitExponent("usd"))
	assert.Equal(t, int32(0), MinorUnitExponent("JPY"))
	assert.Equal(t, int32(0), MinorUnitExponent("krw"))
}
