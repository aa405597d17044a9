// Package backup renders the ledger to portable formats: a CSV of the
// transaction table and a JSON document that round-trips transactions and
// budget for full restore.
package backup

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"bilancio/internal/core"
)

// Document is the JSON backup payload. Absent fields mean "leave that
// part of the store alone" on import.
type Document struct {
	Transactions []core.Transaction `json:"transactions"`
	Budget       *core.Money        `json:"budget,omitempty"`
	ExportedAt   string             `json:"exportedAt"`
}

var csvHeader = []string{"Date", "Description", "Category", "Type", "Amount"}

// WriteCSV renders the transactions with a fixed column order: date,
// description, category, type, amount. The category column carries the
// active label, so income sources appear there too.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, tx := range txs {
		row := []string{
			tx.Date.Format("2006-01-02"),
			tx.Description,
			tx.Label(),
			string(tx.Type),
			tx.Amount.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON renders the full backup document. An unset budget is omitted
// so a restore of the document does not fabricate one.
func WriteJSON(w io.Writer, txs []core.Transaction, budget core.Budget, now time.Time) error {
	if txs == nil {
		txs = []core.Transaction{}
	}
	doc := Document{
		Transactions: txs,
		ExportedAt:   now.UTC().Format(time.RFC3339),
	}
	if budget.Set {
		doc.Budget = &budget.Amount
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// CSVFilename is deterministic given the active profile and current date.
func CSVFilename(profile string, now time.Time) string {
	return fmt.Sprintf("expenses_%s_%s.csv", profile, now.Format("2006-01-02"))
}

// JSONFilename is deterministic given the active profile and current date.
func JSONFilename(profile string, now time.Time) string {
	return fmt.Sprintf("backup_%s_%s.json", profile, now.Format("2006-01-02"))
}
