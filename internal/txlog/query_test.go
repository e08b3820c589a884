package txlog

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankcore-dev/bankcore/internal/ledgerstore"
	"github.com/bankcore-dev/bankcore/internal/model"
)

func seedLog(t *testing.T) *ledgerstore.MemoryStore {
	t.Helper()
	store := ledgerstore.NewMemoryStore()
	ctx := context.Background()

	entries := []struct {
		number string
		ts     time.Time
		cust   string
	}{
		{"10000001", time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local), "cust-1"},
		{"10000002", time.Date(2024, 1, 20, 9, 30, 0, 0, time.Local), "cust-1"},
		{"10000003", time.Date(2024, 1, 20, 16, 45, 0, 0, time.Local), "cust-1"},
		{"10000004", time.Date(2024, 1, 31, 23, 59, 59, 0, time.Local), "cust-1"},
		{"10000005", time.Date(2024, 2, 1, 0, 0, 1, 0, time.Local), "cust-1"},
		{"10000006", time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local), "cust-2"},
	}
	for _, e := range entries {
		require.NoError(t, store.InsertTransaction(ctx, model.Transaction{
			Number:     e.number,
			Type:       model.TxnDeposit,
			Amount:     dec("5"),
			ToAccount:  "CHK-1",
			CustomerID: e.cust,
			RecordedAt: e.ts,
		}))
	}
	return store
}

func TestSearch_InclusiveWindowNewestFirst(t *testing.T) {
	query := NewQuery(seedLog(t), zerolog.Nop())

	details, err := query.Search(context.Background(), "cust-1", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, details, 4)

	var numbers []string
	for _, d := range details {
		numbers = append(numbers, d.Number)
	}
	assert.Equal(t, []string{"10000004", "10000003", "10000002", "10000001"}, numbers)

	assert.Equal(t, "2024-01-31", details[0].Date)
	assert.Equal(t, "23:59:59", details[0].Time)
}

func TestSearch_OtherCustomerExcluded(t *testing.T) {
	query := NewQuery(seedLog(t), zerolog.Nop())

	details, err := query.Search(context.Background(), "cust-2", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "10000006", details[0].Number)
}

func TestSearch_MalformedRangeIsEmptyNotError(t *testing.T) {
	query := NewQuery(seedLog(t), zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		start, end string
	}{
		{"not-a-date", "2024-01-31"},
		{"2024-01-01", "31/01/2024"},
		{"", ""},
		{"2024-01-31", "2024-01-01"}, // inverted window
	}
	for _, tt := range tests {
		details, err := query.Search(ctx, "cust-1", tt.start, tt.end)
		require.NoError(t, err, "range %q..%q", tt.start, tt.end)
		assert.Empty(t, details, "range %q..%q", tt.start, tt.end)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	query := NewQuery(seedLog(t), zerolog.Nop())

	details, err := query.Search(context.Background(), "cust-1", "2020-01-01", "2020-12-31")
	require.NoError(t, err)
	assert.Empty(t, details)
}
