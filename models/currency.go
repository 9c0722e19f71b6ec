package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Currency is the enumerated currency of an account. It is stored as its
// integer value and exchanged over the wire as its string code.
type Currency int

const (
	Euro Currency = iota
	Pound
	Dollar
	Yen
	Franc
	Crown
)

var currencyCodes = [...]string{"EURO", "POUND", "DOLLAR", "YEN", "FRANC", "CROWN"}

var currencyLabels = [...]string{"Euro", "Pound Sterling", "US Dollar", "Yen", "Swiss Franc", "Swedish Crown"}

// CurrencyCodes lists the accepted wire codes, in enumeration order.
func CurrencyCodes() []string {
	return currencyCodes[:]
}

func ParseCurrency(code string) (Currency, error) {
	for i, c := range currencyCodes {
		if strings.EqualFold(code, c) {
			return Currency(i), nil
		}
	}
	return 0, fmt.Errorf("unknown currency %q", code)
}

func (c Currency) Valid() bool {
	return c >= 0 && int(c) < len(currencyCodes)
}

func (c Currency) Code() string {
	if !c.Valid() {
		return ""
	}
	return currencyCodes[c]
}

// Label is the human readable display name rendered in external views.
func (c Currency) Label() string {
	if !c.Valid() {
		return ""
	}
	return currencyLabels[c]
}

func (c Currency) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid currency value %d", int(c))
	}
	return json.Marshal(c.Code())
}

func (c *Currency) UnmarshalJSON(input []byte) error {
	var code string
	if err := json.Unmarshal(input, &code); err != nil {
		return err
	}
	parsed, err := ParseCurrency(code)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
