package txlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankcore-dev/bankcore/internal/model"
)

func TestWriteCSV(t *testing.T) {
	details := []model.Details{
		{
			Number:      "10000002",
			Type:        model.TxnTransfer,
			Amount:      dec("50"),
			Date:        "2024-01-20",
			Time:        "16:45:00",
			FromAccount: "CHK-1",
			ToAccount:   "SAV-1",
		},
		{
			Number:     "10000001",
			Type:       model.TxnDeposit,
			Amount:     dec("19.9"),
			Date:       "2024-01-01",
			Time:       "08:00:00",
			ToAccount:  "CHK-1",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, details))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, "10000002,Transfer,50.00,2024-01-20,16:45:00,CHK-1,SAV-1", lines[1])
	assert.Equal(t, "10000001,Deposit,19.90,2024-01-01,08:00:00,,CHK-1", lines[2])

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "10000002", got[0].Number)
	assert.True(t, got[1].Amount.Equal(dec("19.90")))
}
