package amqp

import (
	"encoding/json"
	"time"

	"khata/internal/core"
)

// RecordCommittedMessage announces one committed ledger record so the
// mirror worker can replay it into the SQLite replica. It carries the
// full row: the CSV ledger is the source of truth and the worker must
// not need to read it back.
type RecordCommittedMessage struct {
	Account       string    `json:"account"`
	Date          string    `json:"date"`
	Category      string    `json:"category"`
	Desc          string    `json:"desc"`
	ModeOfPayment string    `json:"mode_of_payment"`
	AmountCents   int64     `json:"amount_cents"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewRecordCommittedMessage builds a message from a committed record.
func NewRecordCommittedMessage(account string, r core.Record) *RecordCommittedMessage {
	return &RecordCommittedMessage{
		Account:       account,
		Date:          r.Date.String(),
		Category:      r.Category,
		Desc:          r.Desc,
		ModeOfPayment: r.ModeOfPayment,
		AmountCents:   r.Amount.Cents,
		Timestamp:     time.Now(),
	}
}

// Record converts the message back into a ledger record.
func (m *RecordCommittedMessage) Record() (core.Record, error) {
	date, err := core.ParseDate(m.Date)
	if err != nil {
		return core.Record{}, err
	}
	return core.Record{
		Date:          date,
		Category:      m.Category,
		Desc:          m.Desc,
		ModeOfPayment: m.ModeOfPayment,
		Amount:        core.Money{Cents: m.AmountCents},
	}, nil
}

// ToJSON converts the message to JSON bytes
func (m *RecordCommittedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordCommittedMessageFromJSON creates a message from JSON bytes
func RecordCommittedMessageFromJSON(data []byte) (*RecordCommittedMessage, error) {
	var msg RecordCommittedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
