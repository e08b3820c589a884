package txlog

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bankcore-dev/bankcore/internal/ledgerstore"
	"github.com/bankcore-dev/bankcore/internal/model"
)

// Query answers read-only history searches over the transaction log.
type Query struct {
	store ledgerstore.Store
	log   zerolog.Logger
}

// NewQuery creates a Query.
func NewQuery(store ledgerstore.Store, log zerolog.Logger) *Query {
	return &Query{store: store, log: log}
}

// Search returns the customer's transactions dated within [startDate,
// endDate] inclusive ("2006-01-02" format), newest date-and-time first.
// A malformed range yields an empty result, never an error.
func (q *Query) Search(ctx context.Context, customerID, startDate, endDate string) ([]model.Details, error) {
	start, err := time.ParseInLocation(model.DateLayout, startDate, time.Local)
	if err != nil {
		q.log.Debug().Str("start", startDate).Msg("malformed search start date")
		return nil, nil
	}
	end, err := time.ParseInLocation(model.DateLayout, endDate, time.Local)
	if err != nil {
		q.log.Debug().Str("end", endDate).Msg("malformed search end date")
		return nil, nil
	}
	if end.Before(start) {
		return nil, nil
	}

	txns, err := q.store.TransactionsByCustomer(ctx, customerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("searching transactions for customer %s: %w", customerID, err)
	}

	details := make([]model.Details, len(txns))
	for i, txn := range txns {
		details[i] = txn.View()
	}
	return details, nil
}
