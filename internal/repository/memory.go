// Package repository holds the registry of clients and accounts. The
// registry is an explicit object passed into the service layer — there is
// no ambient global state.
package repository

import (
	"sync"

	"github.com/mcoutinho/retail-ledger-go/internal/domain"
)

// Registry is the store the ledger service operates against.
type Registry interface {
	// AddClient registers a client; fails with ErrDuplicateClient when the
	// CPF is already taken.
	AddClient(client *domain.PersonClient) error
	ClientByCPF(nationalID string) (*domain.PersonClient, bool)
	Clients() []*domain.PersonClient

	// NextAccountNumber hands out the next number from the monotonic
	// counter, starting at 1. Call it only when an account is actually
	// being created so numbers have no gaps.
	NextAccountNumber() int
	AddAccount(acc domain.Account)
	AccountByNumber(number int) (domain.Account, bool)
	Accounts() []domain.Account

	// Counts reports registered clients and accounts, for gauges.
	Counts() (clients, accounts int)
}

// Memory is the in-memory Registry. State lives only for the lifetime of
// the process; persistence across restarts is out of scope.
type Memory struct {
	mu          sync.RWMutex
	clients     []*domain.PersonClient
	clientByCPF map[string]*domain.PersonClient
	accounts    []domain.Account
	accountByNo map[int]domain.Account
	nextNumber  int
}

// NewMemory creates an empty registry.
func NewMemory() *Memory {
	return &Memory{
		clientByCPF: make(map[string]*domain.PersonClient),
		accountByNo: make(map[int]domain.Account),
		nextNumber:  1,
	}
}

func (m *Memory) AddClient(client *domain.PersonClient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clientByCPF[client.NationalID()]; ok {
		return &domain.ErrDuplicateClient{NationalID: client.NationalID()}
	}
	m.clients = append(m.clients, client)
	m.clientByCPF[client.NationalID()] = client
	return nil
}

func (m *Memory) ClientByCPF(nationalID string) (*domain.PersonClient, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	client, ok := m.clientByCPF[nationalID]
	return client, ok
}

func (m *Memory) Clients() []*domain.PersonClient {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.PersonClient, len(m.clients))
	copy(out, m.clients)
	return out
}

func (m *Memory) NextAccountNumber() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.nextNumber
	m.nextNumber++
	return n
}

func (m *Memory) AddAccount(acc domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = append(m.accounts, acc)
	m.accountByNo[acc.Number()] = acc
}

func (m *Memory) AccountByNumber(number int) (domain.Account, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acc, ok := m.accountByNo[number]
	return acc, ok
}

func (m *Memory) Accounts() []domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Account, len(m.accounts))
	copy(out, m.accounts)
	return out
}

func (m *Memory) Counts() (clients, accounts int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients), len(m.accounts)
}
