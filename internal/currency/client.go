// Package currency is a thin gateway to an external exchange-rate provider.
package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/HarshaLokesh/phronetic-ai/internal/util"
)

var (
	// ErrUpstream covers unreachable or misbehaving providers; mapped to 502.
	ErrUpstream = errors.New("currency provider error")
	// ErrUnsupportedCurrency means the provider has no rate for the target
	// currency; mapped to 400.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// Conversion is the reshaped provider response.
type Conversion struct {
	OriginalAmount   float64 `json:"original_amount"`
	OriginalCurrency string  `json:"original_currency"`
	ConvertedAmount  float64 `json:"converted_amount"`
	TargetCurrency   string  `json:"target_currency"`
	Rate             float64 `json:"conversion_rate"`
	LastUpdated      string  `json:"last_updated"`
}

// Client calls the rate provider. The HTTP timeout bounds the only blocking
// I/O outside the store; no retries, that is the caller's call.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the provider at baseURL (e.g.
// "https://api.exchangerate-api.com/v4/latest").
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type ratesResponse struct {
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Convert converts amount from one currency to another. A same-currency
// conversion short-circuits to rate 1.0 without touching the network.
func (c *Client) Convert(ctx context.Context, amount float64, fromCurrency, toCurrency string) (*Conversion, error) {
	if err := util.ValidateAmount(amount); err != nil {
		return nil, err
	}
	from, err := util.ValidateCurrencyCode(fromCurrency)
	if err != nil {
		return nil, err
	}
	to, err := util.ValidateCurrencyCode(toCurrency)
	if err != nil {
		return nil, err
	}

	if from == to {
		return &Conversion{
			OriginalAmount:   amount,
			OriginalCurrency: from,
			ConvertedAmount:  round2(amount),
			TargetCurrency:   to,
			Rate:             1.0,
		}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+from, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("%w: empty rate table", ErrUpstream)
	}

	rate, ok := body.Rates[to]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, to)
	}

	return &Conversion{
		OriginalAmount:   amount,
		OriginalCurrency: from,
		ConvertedAmount:  round2(amount * rate),
		TargetCurrency:   to,
		Rate:             rate,
		LastUpdated:      body.Date,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
