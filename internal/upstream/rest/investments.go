package rest

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"spendsight/internal/core"
	"spendsight/internal/period"
)

type rawInvestment struct {
	ID                  int64      `json:"id"`
	InvestedAmount      flexDec    `json:"invested_amount"`
	InvestedAmountCamel flexDec    `json:"investedAmount"`
	CurrentValue        flexDec    `json:"current_value"`
	CurrentValueCamel   flexDec    `json:"currentValue"`
	Currency            string     `json:"currency"`
	Category            flexString `json:"category"`
	StartDate           string     `json:"start_date"`
	StartDateCamel      string     `json:"startDate"`
	Date                string     `json:"date"`
}

// ListInvestments implements upstream.InvestmentLister.
func (c *Client) ListInvestments(ctx context.Context, from, to core.Day, currency string, perPage int) ([]core.Investment, error) {
	query := url.Values{}
	query.Set("date_from", from.String())
	query.Set("date_to", to.String())
	query.Set("per_page", strconv.Itoa(perPage))
	if currency != "" {
		query.Set("currency", currency)
	}

	body, err := c.getJSON(ctx, "/investments", query)
	if err != nil {
		return nil, err
	}

	var raws []rawInvestment
	if err := json.Unmarshal(unwrapData(body), &raws); err != nil {
		return nil, err
	}

	today := core.Today(time.Now())
	invs := make([]core.Investment, 0, len(raws))
	for _, r := range raws {
		invested := firstNonZero(r.InvestedAmount, r.InvestedAmountCamel)
		current := firstNonZero(r.CurrentValue, r.CurrentValueCamel)
		profitLoss := current.Sub(invested)
		profitLossPercent := decimal.Zero
		if invested.IsPositive() {
			profitLossPercent = profitLoss.Div(invested).Mul(decimal.NewFromInt(100))
		}

		inv := core.Investment{
			ID:                r.ID,
			InvestedAmount:    invested,
			CurrentValue:      current,
			ProfitLoss:        profitLoss,
			ProfitLossPercent: profitLossPercent,
			Currency:          r.Currency,
			Category:          string(r.Category),
			StartDate:         period.DayOr(firstNonEmpty(r.StartDate, r.StartDateCamel, r.Date), today),
		}
		if currency != "" && inv.Currency != currency {
			continue
		}
		invs = append(invs, inv)
	}
	return invs, nil
}
