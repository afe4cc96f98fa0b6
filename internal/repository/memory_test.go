package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/mcoutinho/retail-ledger-go/internal/domain"
)

func newClient(cpf string) *domain.PersonClient {
	birth, _ := time.Parse("02-01-2006", "10-03-1990")
	return domain.NewPersonClient("Maria Souza", birth, cpf, "Rua A, 100")
}

func TestAddClientRejectsDuplicateCPF(t *testing.T) {
	reg := NewMemory()

	if err := reg.AddClient(newClient("52998224725")); err != nil {
		t.Fatalf("AddClient: %v", err)
	}

	err := reg.AddClient(newClient("52998224725"))
	var dup *domain.ErrDuplicateClient
	if !errors.As(err, &dup) {
		t.Fatalf("AddClient error = %v, want ErrDuplicateClient", err)
	}

	if clients, _ := reg.Counts(); clients != 1 {
		t.Errorf("clients = %d, want 1", clients)
	}
}

func TestClientByCPF(t *testing.T) {
	reg := NewMemory()
	reg.AddClient(newClient("52998224725"))

	if _, ok := reg.ClientByCPF("52998224725"); !ok {
		t.Error("registered client not found")
	}
	if _, ok := reg.ClientByCPF("00000000191"); ok {
		t.Error("unknown CPF reported as found")
	}
}

func TestNextAccountNumberIsMonotonic(t *testing.T) {
	reg := NewMemory()

	for want := 1; want <= 3; want++ {
		if got := reg.NextAccountNumber(); got != want {
			t.Errorf("NextAccountNumber = %d, want %d", got, want)
		}
	}
}

func TestAccountLookup(t *testing.T) {
	reg := NewMemory()
	client := newClient("52998224725")
	reg.AddClient(client)

	number := reg.NextAccountNumber()
	acc := domain.NewCurrentAccount(number, client, domain.DefaultWithdrawalLimit, domain.DefaultWithdrawalCap)
	reg.AddAccount(acc)

	got, ok := reg.AccountByNumber(number)
	if !ok {
		t.Fatalf("AccountByNumber(%d): not found", number)
	}
	if got.Number() != number {
		t.Errorf("number = %d, want %d", got.Number(), number)
	}
	if _, ok := reg.AccountByNumber(999); ok {
		t.Error("unknown account reported as found")
	}

	clients, accounts := reg.Counts()
	if clients != 1 || accounts != 1 {
		t.Errorf("Counts = (%d, %d), want (1, 1)", clients, accounts)
	}
}
