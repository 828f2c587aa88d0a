// Package export renders the transaction collection as a tabular dump
// for the download collaborator. The engine only hands over the data;
// file delivery happens elsewhere.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Glindemberg/Controle-Finaceiro-v2/internal/core"
)

var header = []string{"id", "date", "description", "category", "type", "amount"}

// WriteCSV writes all transactions as comma-separated rows. Fields
// containing commas come out quoted, per the csv package's rules.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, tx := range txs {
		row := []string{
			tx.ID,
			tx.Date.ISO(),
			tx.Description,
			string(tx.Category),
			string(tx.Type),
			formatAmount(tx.Amount),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", tx.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// formatAmount renders cents as a plain decimal, e.g. 123456 -> "1234.56".
func formatAmount(m core.Money) string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
