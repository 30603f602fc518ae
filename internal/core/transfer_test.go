package core

import (
	"testing"
)

func TestApplyTransfer_MovesAmount(t *testing.T) {
	balances := Balances{From: dec("500"), To: dec("200")}

	got := ApplyTransfer(balances, dec("150"))

	if !got.From.Equal(dec("350")) {
		t.Errorf("from = %s, want 350", got.From)
	}
	if !got.To.Equal(dec("350")) {
		t.Errorf("to = %s, want 350", got.To)
	}
}

func TestApplyTransfer_OverdraftAllowed(t *testing.T) {
	balances := Balances{From: dec("100"), To: dec("0")}

	got := ApplyTransfer(balances, dec("250"))

	if !got.From.Equal(dec("-150")) {
		t.Errorf("from = %s, want -150: overdraft is allowed", got.From)
	}
}

func TestTransferConservation(t *testing.T) {
	// Apply then reverse of the same amount restores both balances exactly
	// and the sum is invariant throughout.
	balances := Balances{From: dec("500"), To: dec("200")}
	sum := balances.From.Add(balances.To)

	applied := ApplyTransfer(balances, dec("150"))
	if !applied.From.Add(applied.To).Equal(sum) {
		t.Errorf("sum after apply = %s, want %s", applied.From.Add(applied.To), sum)
	}

	restored := ReverseTransfer(applied, dec("150"))
	if !restored.From.Equal(balances.From) || !restored.To.Equal(balances.To) {
		t.Errorf("reverse did not restore balances: got %s/%s, want %s/%s",
			restored.From, restored.To, balances.From, balances.To)
	}
}

func TestTransferUpdateAsReverseThenApply(t *testing.T) {
	// Editing a 150 transfer down to 50 reverses the old amount and applies
	// the new one: 350/350 becomes 450/250, sum unchanged.
	balances := Balances{From: dec("350"), To: dec("350")}

	reversed := ReverseTransfer(balances, dec("150"))
	updated := ApplyTransfer(reversed, dec("50"))

	if !updated.From.Equal(dec("450")) {
		t.Errorf("from = %s, want 450", updated.From)
	}
	if !updated.To.Equal(dec("250")) {
		t.Errorf("to = %s, want 250", updated.To)
	}
	if !updated.From.Add(updated.To).Equal(dec("700")) {
		t.Errorf("sum = %s, want 700", updated.From.Add(updated.To))
	}
}

func TestTransferFractionalAmounts(t *testing.T) {
	balances := Balances{From: dec("10.10"), To: dec("0.05")}

	applied := ApplyTransfer(balances, dec("0.15"))
	if !applied.From.Equal(dec("9.95")) || !applied.To.Equal(dec("0.20")) {
		t.Errorf("got %s/%s, want 9.95/0.20", applied.From, applied.To)
	}
}
