// Package worker replays committed ledger records from the message
// queue into the SQLite replica, keeping a queryable mirror of the
// per-account CSV ledgers.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"khata/internal/amqp"
	"khata/internal/core"
)

// RecordSink receives mirrored records for any account. Implemented by
// storage.SQLiteDB.
type RecordSink interface {
	AppendFor(ctx context.Context, account string, r core.Record) error
}

// MirrorWorker handles record-committed messages.
type MirrorWorker struct {
	sink RecordSink
}

func NewMirrorWorker(sink RecordSink) *MirrorWorker {
	return &MirrorWorker{sink: sink}
}

// HandleRecord appends one message's record into the replica. Errors
// propagate so the delivery is requeued.
func (w *MirrorWorker) HandleRecord(ctx context.Context, msg *amqp.RecordCommittedMessage) error {
	if msg.Account == "" {
		return fmt.Errorf("message without account: %w", core.ErrMalformedRecord)
	}
	rec, err := msg.Record()
	if err != nil {
		return fmt.Errorf("decode record for %s: %w", msg.Account, err)
	}

	if err := w.sink.AppendFor(ctx, msg.Account, rec); err != nil {
		return fmt.Errorf("mirror record for %s: %w", msg.Account, err)
	}

	slog.InfoContext(ctx, "Record mirrored",
		"account", msg.Account,
		"date", msg.Date,
		"category", msg.Category,
		"amount_cents", msg.AmountCents)
	return nil
}
