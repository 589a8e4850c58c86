package models

import "github.com/shopspring/decimal"

// Account is a connected bank account. The sum of all account balances is
// today's starting balance.
type Account struct {
	ID             string
	Name           string
	CurrentBalance decimal.Decimal
}

// CreditCard is a connected card. The sum of AvailableCredit across cards is
// the credit available now.
type CreditCard struct {
	ID              string
	Name            string
	AvailableCredit decimal.Decimal
}
