package core

import (
	"github.com/shopspring/decimal"
)

// Balances holds the pre- or post-operation balances of the two accounts a
// transfer touches.
type Balances struct {
	From decimal.Decimal
	To   decimal.Decimal
}

// ApplyTransfer moves amount from the source balance to the destination
// balance. No overdraft check: a source balance is allowed to go negative.
func ApplyTransfer(b Balances, amount decimal.Decimal) Balances {
	return Balances{
		From: b.From.Sub(amount),
		To:   b.To.Add(amount),
	}
}

// ReverseTransfer undoes a previously applied transfer: the amount returns
// to the source and leaves the destination. Apply followed by Reverse with
// the same amount restores the original balances exactly.
func ReverseTransfer(b Balances, amount decimal.Decimal) Balances {
	return Balances{
		From: b.From.Add(amount),
		To:   b.To.Sub(amount),
	}
}
