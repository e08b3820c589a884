package txlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankcore-dev/bankcore/internal/model"
)

// Header is the CSV header for exported transaction history.
const Header = "transaction_number,type,amount,date,time,from_account,to_account"

const (
	numFields   = 7
	colNumber   = 0
	colType     = 1
	colAmount   = 2
	colDate     = 3
	colTime     = 4
	colFrom     = 5
	colTo       = 6
)

// MarshalDetails converts one transaction view to a CSV row.
func MarshalDetails(d model.Details) []string {
	row := make([]string, numFields)
	row[colNumber] = d.Number
	row[colType] = string(d.Type)
	row[colAmount] = d.Amount.StringFixed(2)
	row[colDate] = d.Date
	row[colTime] = d.Time
	row[colFrom] = d.FromAccount
	row[colTo] = d.ToAccount
	return row
}

// UnmarshalDetails converts a CSV row back to a transaction view.
func UnmarshalDetails(record []string) (model.Details, error) {
	if len(record) != numFields {
		return model.Details{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Details{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	return model.Details{
		Number:      record[colNumber],
		Type:        model.TransactionType(record[colType]),
		Amount:      amount,
		Date:        record[colDate],
		Time:        record[colTime],
		FromAccount: record[colFrom],
		ToAccount:   record[colTo],
	}, nil
}

// WriteCSV writes a header plus one row per transaction view.
func WriteCSV(w io.Writer, details []model.Details) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, d := range details {
		if err := cw.Write(MarshalDetails(d)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// ReadCSV reads transaction views written by WriteCSV.
func ReadCSV(r io.Reader) ([]model.Details, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}

	var details []model.Details
	for i, record := range records {
		if i == 0 && record[colNumber] == "transaction_number" {
			continue // header
		}
		d, err := UnmarshalDetails(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		details = append(details, d)
	}
	return details, nil
}
