package rest

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"spendsight/internal/core"
	"spendsight/internal/log"
)

type rawCategoryRow struct {
	Category        flexString `json:"category"`
	Currency        string     `json:"currency"`
	TotalSpent      flexDec    `json:"total_spent"`
	TotalSpentCamel flexDec    `json:"totalSpent"`
	Count           int        `json:"count"`
}

// CategoryReport implements upstream.CategoryReporter.
func (c *Client) CategoryReport(ctx context.Context, from, to core.Day, currency string) ([]core.CategoryRow, error) {
	query := url.Values{}
	query.Set("from_date", from.String())
	query.Set("to_date", to.String())
	if currency != "" {
		query.Set("currency", currency)
	}

	body, err := c.getJSON(ctx, "/reports/categories", query)
	if err != nil {
		return nil, err
	}

	var raws []rawCategoryRow
	if err := json.Unmarshal(unwrapData(body), &raws); err != nil {
		return nil, err
	}

	rows := make([]core.CategoryRow, 0, len(raws))
	for _, r := range raws {
		row := core.CategoryRow{
			Category:   string(r.Category),
			Currency:   r.Currency,
			TotalSpent: firstNonZero(r.TotalSpent, r.TotalSpentCamel),
			Count:      r.Count,
		}
		if err := row.Validate(); err != nil {
			c.logger.WarnContext(ctx, "Dropping invalid category row",
				log.FieldEndpoint, "/reports/categories",
				log.FieldError, err.Error())
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type rawMonthRow struct {
	Month    string  `json:"month"`
	Income   flexDec `json:"income"`
	Expenses flexDec `json:"expenses"`
	Savings  flexDec `json:"savings"`
}

// MonthlyReport implements upstream.MonthlyReporter.
func (c *Client) MonthlyReport(ctx context.Context, year int, currency string) ([]core.MonthRow, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))
	if currency != "" {
		query.Set("currency", currency)
	}

	body, err := c.getJSON(ctx, "/reports/monthly", query)
	if err != nil {
		return nil, err
	}

	var raws []rawMonthRow
	if err := json.Unmarshal(unwrapData(body), &raws); err != nil {
		return nil, err
	}

	rows := make([]core.MonthRow, 0, len(raws))
	for _, r := range raws {
		rows = append(rows, core.MonthRow{
			Month:    r.Month,
			Income:   r.Income.Decimal,
			Expenses: r.Expenses.Decimal,
			Savings:  r.Savings.Decimal,
		})
	}
	return rows, nil
}
