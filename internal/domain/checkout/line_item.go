package checkout

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// zeroDecimalCurrencies 補助単位を持たない通貨
var zeroDecimalCurrencies = map[string]struct{}{
	"bif": {}, "clp": {}, "djf": {}, "gnf": {}, "jpy": {}, "kmf": {},
	"krw": {}, "mga": {}, "pyg": {}, "rwf": {}, "ugx": {}, "vnd": {},
	"vuv": {}, "xaf": {}, "xof": {}, "xpf": {},
}

// LineItem 購入明細を表す値オブジェクト
type LineItem struct {
	name       string
	unitAmount int64 // 補助単位（USDならセント）
	currency   string
	quantity   int64
}

type lineItemFields struct {
	Name       string `validate:"required,max=250"`
	UnitAmount int64  `validate:"gt=0"`
	Currency   string `validate:"required,len=3,alpha,lowercase"`
	Quantity   int64  `validate:"gte=1"`
}

// NewLineItem 新しいLineItemを作成
//
// unitPriceは "20.00" のような10進数表記。通貨の補助単位より細かい値は拒否する。
func NewLineItem(name, unitPrice, currency string, quantity int64) (*LineItem, error) {
	currency = strings.ToLower(strings.TrimSpace(currency))

	price, err := decimal.NewFromString(strings.TrimSpace(unitPrice))
	if err != nil {
		return nil, fmt.Errorf("%w: unit price %q: %v", ErrInvalidLineItem, unitPrice, err)
	}

	minor := price.Shift(MinorUnitExponent(currency))
	if !minor.IsInteger() {
		return nil, fmt.Errorf("%w: unit price %s has more precision than %s allows", ErrInvalidLineItem, price, currency)
	}

	fields := lineItemFields{
		Name:       strings.TrimSpace(name),
		UnitAmount: minor.IntPart(),
		Currency:   currency,
		Quantity:   quantity,
	}
	if err := validate.Struct(fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLineItem, err)
	}

	return &LineItem{
		name:       fields.Name,
		unitAmount: fields.UnitAmount,
		currency:   fields.Currency,
		quantity:   fields.Quantity,
	}, nil
}

// MinorUnitExponent 通貨の補助単位の桁数を返す
func MinorUnitExponent(currency string) int32 {
	if _, ok := zeroDecimalCurrencies[strings.ToLower(currency)]; ok {
		return 0
	}
	return 2
}

// Name 商品名を返す
func (li *LineItem) Name() string {
	return li.name
}

// UnitAmount 単価（補助単位）を返す
func (li *LineItem) UnitAmount() int64 {
	return li.unitAmount
}

// Currency 通貨コードを返す
func (li *LineItem) Currency() string {
	return li.currency
}

// Quantity 数量を返す
func (li *LineItem) Quantity() int64 {
	return li.quantity
}

// UnitPrice 単価を10進数で返す
func (li *LineItem) UnitPrice() decimal.Decimal {
	return decimal.New(li.unitAmount, -MinorUnitExponent(li.currency))
}

// TotalAmount 合計金額（補助単位）を返す
func (li *LineItem) TotalAmount() int64 {
	return li.unitAmount * li.quantity
}
