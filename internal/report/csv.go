package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV renders the summary as a flat CSV export. Figures are
// display-rounded; each record carries a section tag so the file can
// be split back apart in a spreadsheet.
func WriteCSV(w io.Writer, s *Summary) error {
	s = s.Rounded()
	cw := csv.NewWriter(w)

	records := [][]string{
		{"section", "field", "value", "extra1", "extra2"},
		{"summary", "from", s.From, "", ""},
		{"summary", "to", s.To, "", ""},
		{"summary", "currency", s.DisplayCurrency, "", ""},
		{"summary", "total_income", s.TotalIncome.String(), "", ""},
		{"summary", "total_expense", s.TotalExpense.String(), "", ""},
		{"summary", "total_savings", s.TotalSavings.String(), "", ""},
	}
	for _, c := range s.Categories {
		records = append(records, []string{
			"category", c.Category, c.Total.String(), c.Currency,
			c.Percentage.String(),
		})
	}
	for _, p := range s.Periods {
		records = append(records, []string{
			"period", p.Label, p.Income.String(), p.Expense.String(),
			p.Net.String(),
		})
	}
	for _, tx := range s.Transactions {
		records = append(records, []string{
			"transaction", tx.Date.String(), Round2(tx.Amount).String(),
			tx.Currency, string(tx.Type),
		})
	}
	for _, inv := range s.Investments {
		records = append(records, []string{
			"investment", inv.Category, Round2(inv.CurrentValue).String(),
			inv.Currency, Round2(inv.ProfitLoss).String(),
		})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
