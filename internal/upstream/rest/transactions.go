package rest

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"spendsight/internal/core"
	"spendsight/internal/period"
)

type rawTransaction struct {
	ID          int64      `json:"id"`
	Type        string     `json:"type"`
	Amount      flexDec    `json:"amount"`
	Currency    string     `json:"currency"`
	Category    flexString `json:"category"`
	Notes       string     `json:"notes"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
}

// ListTransactions implements upstream.TransactionLister.
func (c *Client) ListTransactions(ctx context.Context, from, to core.Day, currency string, perPage int) ([]core.Transaction, error) {
	query := url.Values{}
	query.Set("from_date", from.String())
	query.Set("to_date", to.String())
	query.Set("per_page", strconv.Itoa(perPage))
	if currency != "" {
		query.Set("currency", currency)
	}

	body, err := c.getJSON(ctx, "/transactions", query)
	if err != nil {
		return nil, err
	}

	var raws []rawTransaction
	if err := json.Unmarshal(unwrapData(body), &raws); err != nil {
		return nil, err
	}

	today := core.Today(time.Now())
	txs := make([]core.Transaction, 0, len(raws))
	for _, r := range raws {
		tx := core.Transaction{
			ID:          r.ID,
			Type:        core.TransactionType(r.Type),
			Amount:      r.Amount.Decimal.Abs(),
			Currency:    r.Currency,
			Category:    string(r.Category),
			Description: firstNonEmpty(r.Notes, r.Description),
			Date:        period.DayOr(r.Date, today),
		}
		if tx.Type != core.Income && tx.Type != core.Expense {
			tx.Type = core.Expense
		}
		// Backend already filtered by currency, but a second pass here
		// keeps a misbehaving endpoint from leaking rows through.
		if currency != "" && tx.Currency != currency {
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
