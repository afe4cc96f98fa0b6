package domain

import (
	"errors"
	"testing"
)

func TestRegisterDispatchesByKind(t *testing.T) {
	acc := newTestAccount()

	if err := NewDeposit(dec("250")).Register(acc); err != nil {
		t.Fatalf("deposit register: %v", err)
	}
	if err := NewWithdrawal(dec("50")).Register(acc); err != nil {
		t.Fatalf("withdrawal register: %v", err)
	}

	if !acc.Balance().Equal(dec("200")) {
		t.Errorf("balance = %s, want 200", acc.Balance())
	}
	if acc.WithdrawalsUsed() != 1 {
		t.Errorf("withdrawalsUsed = %d, want 1", acc.WithdrawalsUsed())
	}
}

func TestRegisterRejectsUnknownKind(t *testing.T) {
	acc := newTestAccount()

	var tx Transaction
	err := tx.Register(acc)

	var invalid *ErrInvalidTransaction
	if !errors.As(err, &invalid) {
		t.Fatalf("Register error = %v, want ErrInvalidTransaction", err)
	}
	if len(acc.History()) != 0 {
		t.Errorf("history length = %d, want 0", len(acc.History()))
	}
}

func TestKindLabel(t *testing.T) {
	if got := KindDeposit.Label(); got != "Depósito" {
		t.Errorf("deposit label = %q", got)
	}
	if got := KindWithdrawal.Label(); got != "Saque" {
		t.Errorf("withdrawal label = %q", got)
	}
}

func TestClientExecuteTransaction(t *testing.T) {
	client := newTestClient()
	acc := NewCurrentAccount(1, client, DefaultWithdrawalLimit, DefaultWithdrawalCap)
	client.AddAccount(acc)

	first, ok := client.FirstAccount()
	if !ok {
		t.Fatal("FirstAccount: no account")
	}
	if err := client.ExecuteTransaction(first, NewDeposit(dec("75"))); err != nil {
		t.Fatalf("ExecuteTransaction: %v", err)
	}
	if !acc.Balance().Equal(dec("75")) {
		t.Errorf("balance = %s, want 75", acc.Balance())
	}
}

func TestFirstAccountEmpty(t *testing.T) {
	client := newTestClient()
	if _, ok := client.FirstAccount(); ok {
		t.Error("FirstAccount on fresh client should report false")
	}
}
