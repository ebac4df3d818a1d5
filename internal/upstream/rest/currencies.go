package rest

import (
	"context"
	"encoding/json"

	"spendsight/internal/core"
)

type rawCurrency struct {
	Code              string  `json:"code"`
	Symbol            string  `json:"symbol"`
	ExchangeRate      flexDec `json:"exchange_rate"`
	ExchangeRateCamel flexDec `json:"exchangeRate"`
}

// ListCurrencies implements upstream.CurrencyLister.
func (c *Client) ListCurrencies(ctx context.Context) ([]core.CurrencyInfo, error) {
	body, err := c.getJSON(ctx, "/currencies", nil)
	if err != nil {
		return nil, err
	}

	var raws []rawCurrency
	if err := json.Unmarshal(unwrapData(body), &raws); err != nil {
		return nil, err
	}

	list := make([]core.CurrencyInfo, 0, len(raws))
	for _, r := range raws {
		if r.Code == "" {
			continue
		}
		rate, _ := firstNonZero(r.ExchangeRate, r.ExchangeRateCamel).Float64()
		list = append(list, core.CurrencyInfo{
			Code:         r.Code,
			Symbol:       r.Symbol,
			ExchangeRate: rate,
		})
	}
	return list, nil
}
