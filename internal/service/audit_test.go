package service

import (
	"context"
	"testing"

	"github.com/mcoutinho/retail-ledger-go/internal/infra/observability"
	"github.com/mcoutinho/retail-ledger-go/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestOperatorContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := OperatorFromContext(ctx); got != "" {
		t.Errorf("operator on bare context = %q, want empty", got)
	}
	if got := OperatorFromContext(WithOperator(ctx, "operator")); got != "operator" {
		t.Errorf("operator = %q, want operator", got)
	}
}

func TestMutationAuditLogsCarryOperator(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewLedgerService(
		repository.NewMemory(),
		decimal.NewFromInt(500),
		3,
		observability.NewMetrics(),
		zap.New(core),
	)
	ctx := WithOperator(context.Background(), "operator")

	_, err := svc.CreateClient(ctx, &CreateClientRequest{
		FullName:   "Maria Souza",
		BirthDate:  "10-03-1990",
		NationalID: testCPF,
		Address:    "Rua A, 100",
	})
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	if _, err := svc.OpenAccount(ctx, testCPF); err != nil {
		t.Fatalf("OpenAccount: %v", err)
	}
	if _, err := svc.Deposit(ctx, testCPF, decimal.NewFromInt(100)); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	want := map[string]bool{
		"client created":      false,
		"account opened":      false,
		"transaction applied": false,
	}
	for _, entry := range logs.All() {
		if _, ok := want[entry.Message]; !ok {
			continue
		}
		for _, f := range entry.Context {
			if f.Key == "operator" && f.String == "operator" {
				want[entry.Message] = true
			}
		}
	}
	for msg, seen := range want {
		if !seen {
			t.Errorf("%q log missing operator field", msg)
		}
	}
}

func TestUnauthenticatedMutationOmitsOperatorField(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewLedgerService(
		repository.NewMemory(),
		decimal.NewFromInt(500),
		3,
		observability.NewMetrics(),
		zap.New(core),
	)

	_, err := svc.CreateClient(context.Background(), &CreateClientRequest{
		FullName:   "Maria Souza",
		BirthDate:  "10-03-1990",
		NationalID: testCPF,
	})
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	for _, entry := range logs.All() {
		for _, f := range entry.Context {
			if f.Key == "operator" {
				t.Errorf("%q log has unexpected operator field", entry.Message)
			}
		}
	}
}
