package store

import (
	"context"

	"khata/internal/core"
)

// Ports for ledger storage backends.
type (
	// Appender durably adds one record to the end of an account's
	// history.
	Appender interface {
		Append(ctx context.Context, r core.Record) error
	}

	// HistoryReader returns the full history in append order.
	HistoryReader interface {
		All(ctx context.Context) ([]core.Record, error)
	}

	// LastReader returns the most recently appended record, or
	// core.ErrEmptyHistory when no record exists yet.
	LastReader interface {
		Last(ctx context.Context) (core.Record, error)
	}

	// Store is the full ledger store contract.
	Store interface {
		Appender
		HistoryReader
		LastReader
	}
)
