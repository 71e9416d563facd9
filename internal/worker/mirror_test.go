package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/amqp"
	"khata/internal/core"
)

type fakeSink struct {
	appended map[string][]core.Record
	fail     bool
}

func (s *fakeSink) AppendFor(_ context.Context, account string, r core.Record) error {
	if s.fail {
		return assert.AnError
	}
	if s.appended == nil {
		s.appended = make(map[string][]core.Record)
	}
	s.appended[account] = append(s.appended[account], r)
	return nil
}

func TestHandleRecord(t *testing.T) {
	sink := &fakeSink{}
	w := NewMirrorWorker(sink)

	rec := core.Record{
		Date:          core.NewDate(2024, 1, 5),
		Category:      "Food",
		Desc:          "groceries",
		ModeOfPayment: "UPI",
		Amount:        core.Money{Cents: 150000},
	}
	msg := amqp.NewRecordCommittedMessage("JohnMitchell", rec)

	require.NoError(t, w.HandleRecord(context.Background(), msg))
	require.Len(t, sink.appended["JohnMitchell"], 1)
	assert.Equal(t, rec, sink.appended["JohnMitchell"][0])
}

func TestHandleRecordMissingAccount(t *testing.T) {
	w := NewMirrorWorker(&fakeSink{})
	msg := &amqp.RecordCommittedMessage{Date: "2024-01-05"}
	require.ErrorIs(t, w.HandleRecord(context.Background(), msg), core.ErrMalformedRecord)
}

func TestHandleRecordBadDate(t *testing.T) {
	w := NewMirrorWorker(&fakeSink{})
	msg := &amqp.RecordCommittedMessage{Account: "A", Date: "garbage"}
	require.Error(t, w.HandleRecord(context.Background(), msg))
}

func TestHandleRecordSinkFailurePropagates(t *testing.T) {
	w := NewMirrorWorker(&fakeSink{fail: true})
	msg := amqp.NewRecordCommittedMessage("A", core.Record{
		Date:   core.NewDate(2024, 1, 1),
		Amount: core.Money{Cents: 1},
	})
	require.Error(t, w.HandleRecord(context.Background(), msg))
}
