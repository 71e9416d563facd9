package core

import (
	"errors"
	"time"
)

var (
	// ErrEmptyHistory is returned when a last-record read is attempted
	// before the account has any record. Accounts are seeded on creation,
	// so hitting this indicates a usage error.
	ErrEmptyHistory = errors.New("empty history")

	// ErrInsufficientFunds marks a transaction that would drive the
	// balance below zero. The ledger is left untouched.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrMalformedRecord marks a stored row missing a field or carrying
	// an unparseable date or amount.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrStorageUnavailable marks a namespace or file that cannot be
	// created or accessed.
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

const dateLayout = "2006-01-02"

type (
	// Date is a calendar date with no time component.
	Date struct {
		time.Time
	}

	// Money is a 2-decimal fixed-point amount stored in cents.
	Money struct {
		Cents int64
	}

	// Record is one row of an account's history. Amount is the account
	// balance after the transaction was applied, not the transaction
	// delta. Records are immutable once appended.
	Record struct {
		Date          Date
		Category      string
		Desc          string
		ModeOfPayment string
		Amount        Money
	}
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String renders the date as YYYY-MM-DD, the serialized form of the
// durable record format.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Negative reports whether the amount is below zero.
func (m Money) Negative() bool {
	return m.Cents < 0
}

// Validate rejects negative amounts. Zero is legal: a debit may drain
// the balance exactly.
func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r Record) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	return nil
}
