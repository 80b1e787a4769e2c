package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var SupportedCurrencies = map[string]Currency{
	"SAR": {Code: "SAR", Symbol: "SAR", Name: "Saudi Riyal"},
	"AED": {Code: "AED", Symbol: "AED", Name: "UAE Dirham"},
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro"},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound"},
}

// FormatAmount renders an amount with exactly two decimal places, rounding half away from zero.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

func FormatCurrency(amount float64, currencyCode string) string {
	currency, exists := SupportedCurrencies[strings.ToUpper(currencyCode)]
	if !exists {
		return FormatAmount(amount)
	}

	if len(currency.Symbol) > 1 {
		return fmt.Sprintf("%s %s", FormatAmount(amount), currency.Symbol)
	}
	return fmt.Sprintf("%s%s", currency.Symbol, FormatAmount(amount))
}
