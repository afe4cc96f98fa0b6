package domain

import (
	"sync"
	"time"
)

// Client is the base client record: an address plus the accounts it holds.
// The account list is a bidirectional association — each account also
// back-references its owner, established at account construction time.
type Client struct {
	mu       sync.Mutex
	address  string
	accounts []Account
}

// Address returns the client's free-form address.
func (c *Client) Address() string { return c.address }

// Accounts returns a snapshot of the client's accounts, in creation order.
func (c *Client) Accounts() []Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// AddAccount appends to the client's account list. It does not re-validate
// the owner back-reference; that is set when the account is constructed.
func (c *Client) AddAccount(acc Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append(c.accounts, acc)
}

// FirstAccount returns the client's first account. Multi-account selection
// is out of scope: operations by CPF always target the first account.
func (c *Client) FirstAccount() (Account, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.accounts) == 0 {
		return nil, false
	}
	return c.accounts[0], true
}

// ExecuteTransaction applies tx to acc. It has no side effect beyond what
// the account itself performs during registration.
func (c *Client) ExecuteTransaction(acc Account, tx Transaction) error {
	return tx.Register(acc)
}

// PersonClient is the client variant for natural persons.
// The national ID (CPF) is stored normalized to bare digits; uniqueness
// across the registry is enforced by the repository that creates clients.
type PersonClient struct {
	Client
	fullName   string
	birthDate  time.Time
	nationalID string
}

// NewPersonClient creates a person client. The CPF must already be
// validated and normalized by the caller.
func NewPersonClient(fullName string, birthDate time.Time, nationalID, address string) *PersonClient {
	return &PersonClient{
		Client:     Client{address: address},
		fullName:   fullName,
		birthDate:  birthDate,
		nationalID: nationalID,
	}
}

func (p *PersonClient) FullName() string     { return p.fullName }
func (p *PersonClient) BirthDate() time.Time { return p.birthDate }
func (p *PersonClient) NationalID() string   { return p.nationalID }
