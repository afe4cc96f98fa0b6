// Package service provides the business logic layer (use cases).
// LedgerService orchestrates client registration, account opening and the
// deposit/withdraw/statement flows over the registry.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mcoutinho/retail-ledger-go/internal/cpf"
	"github.com/mcoutinho/retail-ledger-go/internal/domain"
	"github.com/mcoutinho/retail-ledger-go/internal/infra/observability"
	"github.com/mcoutinho/retail-ledger-go/internal/repository"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var ledgerTracer = otel.Tracer("service/ledger")

const (
	birthDateLayout     = "02-01-2006"
	statementTimeLayout = "02-01-2006 15:04:05"
)

// LedgerService holds the ledger use cases.
type LedgerService struct {
	registry      repository.Registry
	limit         decimal.Decimal
	withdrawalCap int
	metrics       *observability.Metrics
	logger        *zap.Logger
}

// NewLedgerService creates a ledger service. limit and withdrawalCap apply
// to every current account it opens.
func NewLedgerService(reg repository.Registry, limit decimal.Decimal, withdrawalCap int, metrics *observability.Metrics, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		registry:      reg,
		limit:         limit,
		withdrawalCap: withdrawalCap,
		metrics:       metrics,
		logger:        logger,
	}
}

// ============================================================
// Clients
// ============================================================

// CreateClientRequest carries the registration data for a person client.
type CreateClientRequest struct {
	FullName   string `json:"full_name"`
	BirthDate  string `json:"birth_date"` // dd-mm-yyyy
	NationalID string `json:"national_id"`
	Address    string `json:"address"`
}

// ClientView is the read model returned to callers.
type ClientView struct {
	FullName   string `json:"full_name"`
	BirthDate  string `json:"birth_date"`
	NationalID string `json:"national_id"`
	Address    string `json:"address"`
	Accounts   []int  `json:"accounts"`
}

// CreateClient registers a person client. The CPF is normalized to bare
// digits before validation and storage, so punctuated and bare forms refer
// to the same client.
func (s *LedgerService) CreateClient(ctx context.Context, req *CreateClientRequest) (*ClientView, error) {
	ctx, span := ledgerTracer.Start(ctx, "LedgerService.CreateClient")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("create_client", time.Since(start)) }()

	id := cpf.Digits(req.NationalID)
	if !cpf.Valid(id) {
		return nil, &domain.ErrInvalidNationalID{Value: req.NationalID}
	}

	birth, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return nil, &domain.ErrInvalidDate{Value: req.BirthDate}
	}

	client := domain.NewPersonClient(req.FullName, birth, id, req.Address)
	if err := s.registry.AddClient(client); err != nil {
		return nil, err
	}

	s.metrics.SetRegistrySizes(s.registry.Counts())
	s.logger.Info("client created",
		zap.String("national_id", id),
		zap.String("full_name", req.FullName),
		operatorField(ctx),
	)
	return clientView(client), nil
}

// FindClient looks up a client by CPF.
func (s *LedgerService) FindClient(ctx context.Context, nationalID string) (*ClientView, error) {
	_, span := ledgerTracer.Start(ctx, "LedgerService.FindClient")
	defer span.End()

	client, ok := s.registry.ClientByCPF(cpf.Digits(nationalID))
	if !ok {
		return nil, &domain.ErrClientNotFound{NationalID: nationalID}
	}
	return clientView(client), nil
}

func clientView(client *domain.PersonClient) *ClientView {
	accounts := client.Accounts()
	numbers := make([]int, 0, len(accounts))
	for _, acc := range accounts {
		numbers = append(numbers, acc.Number())
	}
	return &ClientView{
		FullName:   client.FullName(),
		BirthDate:  client.BirthDate().Format(birthDateLayout),
		NationalID: client.NationalID(),
		Address:    client.Address(),
		Accounts:   numbers,
	}
}

// ============================================================
// Accounts
// ============================================================

// AccountSummary is the display block for one account: branch, number,
// owner, balance, limit and remaining withdrawals.
type AccountSummary struct {
	Branch               string `json:"branch"`
	Number               int    `json:"number"`
	Owner                string `json:"owner"`
	Balance              string `json:"balance"`
	Limit                string `json:"limit,omitempty"`
	RemainingWithdrawals *int   `json:"remaining_withdrawals,omitempty"`
}

// OpenAccount creates a current account for the client, attaches it and
// registers it. Account numbers come from the registry's monotonic counter
// and only advance when an account is actually created.
func (s *LedgerService) OpenAccount(ctx context.Context, nationalID string) (*AccountSummary, error) {
	ctx, span := ledgerTracer.Start(ctx, "LedgerService.OpenAccount")
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration("open_account", time.Since(start)) }()

	client, ok := s.registry.ClientByCPF(cpf.Digits(nationalID))
	if !ok {
		return nil, &domain.ErrClientNotFound{NationalID: nationalID}
	}

	number := s.registry.NextAccountNumber()
	span.SetAttributes(attribute.Int("account.number", number))

	acc := domain.NewCurrentAccount(number, client, s.limit, s.withdrawalCap)
	client.AddAccount(acc)
	s.registry.AddAccount(acc)

	s.metrics.SetRegistrySizes(s.registry.Counts())
	s.logger.Info("account opened",
		zap.Int("number", number),
		zap.String("national_id", client.NationalID()),
		operatorField(ctx),
	)
	return summarize(acc), nil
}

// AccountByNumber returns the summary for one account.
func (s *LedgerService) AccountByNumber(ctx context.Context, number int) (*AccountSummary, error) {
	_, span := ledgerTracer.Start(ctx, "LedgerService.AccountByNumber")
	defer span.End()

	acc, ok := s.registry.AccountByNumber(number)
	if !ok {
		return nil, &domain.ErrAccountNotFound{Number: number}
	}
	return summarize(acc), nil
}

// ListAccounts returns a summary block per registered account.
func (s *LedgerService) ListAccounts(ctx context.Context) []*AccountSummary {
	_, span := ledgerTracer.Start(ctx, "LedgerService.ListAccounts")
	defer span.End()

	accounts := s.registry.Accounts()
	out := make([]*AccountSummary, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, summarize(acc))
	}
	return out
}

func summarize(acc domain.Account) *AccountSummary {
	summary := &AccountSummary{
		Branch:  acc.Branch(),
		Number:  acc.Number(),
		Owner:   acc.Owner().FullName(),
		Balance: acc.Balance().StringFixed(2),
	}
	if ca, ok := acc.(*domain.CurrentAccount); ok {
		remaining := ca.RemainingWithdrawals()
		summary.Limit = ca.Limit().StringFixed(2)
		summary.RemainingWithdrawals = &remaining
	}
	return summary
}

// ============================================================
// Transactions
// ============================================================

// Deposit applies a deposit transaction to the client's first account.
func (s *LedgerService) Deposit(ctx context.Context, nationalID string, amount decimal.Decimal) (*AccountSummary, error) {
	return s.apply(ctx, "deposit", nationalID, domain.NewDeposit(amount))
}

// Withdraw applies a withdrawal transaction to the client's first account.
func (s *LedgerService) Withdraw(ctx context.Context, nationalID string, amount decimal.Decimal) (*AccountSummary, error) {
	return s.apply(ctx, "withdraw", nationalID, domain.NewWithdrawal(amount))
}

func (s *LedgerService) apply(ctx context.Context, operation, nationalID string, tx domain.Transaction) (*AccountSummary, error) {
	ctx, span := ledgerTracer.Start(ctx, "LedgerService."+operation)
	defer span.End()

	start := time.Now()
	defer func() { s.metrics.RecordRequestDuration(operation, time.Since(start)) }()

	client, ok := s.registry.ClientByCPF(cpf.Digits(nationalID))
	if !ok {
		return nil, &domain.ErrClientNotFound{NationalID: nationalID}
	}

	acc, ok := client.FirstAccount()
	if !ok {
		return nil, &domain.ErrNoAccountForClient{NationalID: client.NationalID()}
	}
	span.SetAttributes(attribute.Int("account.number", acc.Number()))

	if err := client.ExecuteTransaction(acc, tx); err != nil {
		s.metrics.IncrOperation(operation, "error")
		s.logger.Warn("transaction rejected",
			zap.String("operation", operation),
			zap.Int("account", acc.Number()),
			zap.String("amount", tx.Amount().StringFixed(2)),
			operatorField(ctx),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.IncrOperation(operation, "success")
	s.logger.Info("transaction applied",
		zap.String("operation", operation),
		zap.Int("account", acc.Number()),
		zap.String("amount", tx.Amount().StringFixed(2)),
		zap.String("balance", acc.Balance().StringFixed(2)),
		operatorField(ctx),
	)
	return summarize(acc), nil
}

// operatorField resolves to a no-op when the request carried no token.
func operatorField(ctx context.Context) zap.Field {
	if op := OperatorFromContext(ctx); op != "" {
		return zap.String("operator", op)
	}
	return zap.Skip()
}

// ============================================================
// Statements
// ============================================================

// Statement is the display form of an account's history plus its balance.
type Statement struct {
	AccountNumber int      `json:"account_number"`
	Lines         []string `json:"lines"`
	Balance       string   `json:"balance"`
}

// StatementFor renders the statement for the client's first account: one
// line per history entry, then the current balance to two decimals.
func (s *LedgerService) StatementFor(ctx context.Context, nationalID string) (*Statement, error) {
	_, span := ledgerTracer.Start(ctx, "LedgerService.StatementFor")
	defer span.End()

	client, ok := s.registry.ClientByCPF(cpf.Digits(nationalID))
	if !ok {
		return nil, &domain.ErrClientNotFound{NationalID: nationalID}
	}
	acc, ok := client.FirstAccount()
	if !ok {
		return nil, &domain.ErrNoAccountForClient{NationalID: client.NationalID()}
	}

	entries := acc.History()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)",
			e.Kind.Label(),
			e.Amount.StringFixed(2),
			e.Timestamp.Format(statementTimeLayout),
		))
	}

	return &Statement{
		AccountNumber: acc.Number(),
		Lines:         lines,
		Balance:       acc.Balance().StringFixed(2),
	}, nil
}
