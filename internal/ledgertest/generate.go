// Package ledgertest generates synthetic ledger histories for tests and
// for seeding demo accounts. It is a fixture collaborator, not part of
// the transaction path: generated rows bypass the transaction authority
// and may be non-chronological.
package ledgertest

import (
	"context"
	"math/rand"

	"khata/internal/core"
	"khata/internal/store"
)

// The fixed taxonomy used by generated data.
var (
	Categories   = []string{"Food", "Rent", "Credit", "Debit", "Fare", "Picnic"}
	PaymentModes = []string{"Net Banking", "Mobile Banking", "UPI", "Card Payment"}
)

// Generate produces years × 12 months × len(Categories) records for the
// years [today.Year-years, today.Year), one per category per month, with
// random day 1-28, random payment mode, and random amount below
// 10000.00. Deterministic for a seeded rng.
func Generate(years int, today core.Date, rng *rand.Rand) []core.Record {
	var records []core.Record
	for year := today.Year() - years; year < today.Year(); year++ {
		for month := 1; month <= 12; month++ {
			for _, category := range Categories {
				records = append(records, core.Record{
					Date:          core.NewDate(year, month, 1+rng.Intn(28)),
					Category:      category,
					Desc:          "Added " + category,
					ModeOfPayment: PaymentModes[rng.Intn(len(PaymentModes))],
					Amount:        core.Money{Cents: rng.Int63n(1000000)},
				})
			}
		}
	}
	return records
}

// Seed appends every record in order.
func Seed(ctx context.Context, st store.Appender, records []core.Record) error {
	for _, r := range records {
		if err := st.Append(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
