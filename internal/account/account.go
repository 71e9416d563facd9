// Package account is the transaction authority: the only mutation path
// into a ledger besides the opening record. It validates transactions
// against the non-negative-balance rule and orchestrates reports.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"khata/internal/core"
	"khata/internal/store"
)

// Opening record constants, written when an account is created.
const (
	openingCategory = "Credit"
	openingDesc     = "Initial amount credited"
	openingMode     = "UPI"
)

// ErrAlreadyOpened is returned when Open finds existing history in the
// account's namespace.
var ErrAlreadyOpened = errors.New("account already opened")

// Publisher announces committed records to external consumers. Optional;
// publish failures are logged and never fail a transaction.
type Publisher interface {
	PublishRecordCommitted(ctx context.Context, account string, r core.Record) error
}

// Account owns one ledger store and is its sole writer.
type Account struct {
	name   string
	store  store.Store
	pub    Publisher
	logger *slog.Logger
	now    func() core.Date
}

// Normalize derives the store namespace from the holder's full name by
// stripping spaces: "John Mitchell" -> "JohnMitchell".
func Normalize(holder string) string {
	return strings.ReplaceAll(holder, " ", "")
}

// New wraps a store for the named account. pub may be nil.
func New(holder string, st store.Store, pub Publisher, logger *slog.Logger) *Account {
	if logger == nil {
		logger = slog.Default()
	}
	return &Account{
		name:   Normalize(holder),
		store:  st,
		pub:    pub,
		logger: logger,
		now:    core.Today,
	}
}

// Name returns the normalized account name.
func (a *Account) Name() string {
	return a.name
}

// Store exposes the underlying ledger store for fixture seeding; the
// transaction path never bypasses the authority.
func (a *Account) Store() store.Store {
	return a.store
}

// Open seeds the account with its opening record, dated today. It fails
// if the namespace already holds history.
func (a *Account) Open(ctx context.Context, opening core.Money) error {
	if opening.Negative() {
		return fmt.Errorf("opening balance: %w", core.ErrInvalidAmount)
	}
	_, err := a.store.Last(ctx)
	switch {
	case err == nil:
		return ErrAlreadyOpened
	case !errors.Is(err, core.ErrEmptyHistory):
		return fmt.Errorf("check history: %w", err)
	}

	r := core.Record{
		Date:          a.now(),
		Category:      openingCategory,
		Desc:          openingDesc,
		ModeOfPayment: openingMode,
		Amount:        opening,
	}
	if err := a.store.Append(ctx, r); err != nil {
		return fmt.Errorf("seed opening record: %w", err)
	}

	a.logger.InfoContext(ctx, "Account opened",
		"account", a.name,
		"opening_balance", opening.String())

	a.publish(ctx, r)
	return nil
}

// Result reports the outcome of a transaction attempt. A rejection is a
// normal outcome, not an error: Committed is false, Reason names the
// rule that fired, and the store is untouched.
type Result struct {
	Committed bool
	Balance   core.Money
	Status    string
	Reason    error
}

// Transact applies one credit or debit: reads the last balance, derives
// the new one, and appends a record dated today unless the result would
// be negative.
func (a *Account) Transact(ctx context.Context, amount core.Money, category, desc, modeOfPayment string, credit bool) (Result, error) {
	if amount.Negative() {
		return Result{}, fmt.Errorf("transaction amount: %w", core.ErrInvalidAmount)
	}

	last, err := a.store.Last(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read previous balance: %w", err)
	}

	var balance core.Money
	if credit {
		balance = core.Credit(last.Amount, amount)
	} else {
		balance = core.Debit(last.Amount, amount)
	}

	if balance.Negative() {
		a.logger.InfoContext(ctx, "Transaction rejected",
			"account", a.name,
			"category", category,
			"amount", amount.String(),
			"balance", last.Amount.String())
		return Result{
			Balance: last.Amount,
			Status:  "Unable to make transaction",
			Reason:  core.ErrInsufficientFunds,
		}, nil
	}

	r := core.Record{
		Date:          a.now(),
		Category:      category,
		Desc:          desc,
		ModeOfPayment: modeOfPayment,
		Amount:        balance,
	}
	if err := a.store.Append(ctx, r); err != nil {
		return Result{}, fmt.Errorf("append record: %w", err)
	}

	a.logger.InfoContext(ctx, "Transaction committed",
		"account", a.name,
		"category", category,
		"credit", credit,
		"amount", amount.String(),
		"balance", balance.String())

	a.publish(ctx, r)

	return Result{
		Committed: true,
		Balance:   balance,
		Status:    "Transaction successful.",
	}, nil
}

// Balance returns the running balance: the last appended record's
// amount.
func (a *Account) Balance(ctx context.Context) (core.Money, error) {
	last, err := a.store.Last(ctx)
	if err != nil {
		return core.Money{}, err
	}
	return last.Amount, nil
}

func (a *Account) publish(ctx context.Context, r core.Record) {
	if a.pub == nil {
		return
	}
	if err := a.pub.PublishRecordCommitted(ctx, a.name, r); err != nil {
		// The ledger write already succeeded; the mirror catches up later.
		a.logger.ErrorContext(ctx, "Failed to publish record",
			"account", a.name, "error", err)
	}
}
