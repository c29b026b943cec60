package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/config"
)

var (
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	ErrUnknownCurrency = errors.New("unknown currency")
)

// FxService converts amounts between currencies using an external rate API
// (open.er-api.com shaped: GET {base_url}/{BASE} returns a rates table).
// Rates are cached per base currency for CacheTTL; if a refresh fails the
// stale table keeps serving, so a flaky rate provider only delays updates.
type FxService struct {
	apiURL   string
	cacheTTL time.Duration
	client   *http.Client

	mu    sync.Mutex
	cache map[string]*rateTable
}

type rateTable struct {
	rates     map[string]decimal.Decimal
	fetchedAt time.Time
}

type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

func NewFxService(conf *config.FxConfig) *FxService {
	return &FxService{
		apiURL:   strings.TrimRight(conf.APIURL, "/"),
		cacheTTL: conf.CacheTTL,
		client:   &http.Client{Timeout: 15 * time.Second},
		cache:    make(map[string]*rateTable),
	}
}

func (s *FxService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	if from == to {
		return amount, nil
	}

	table, err := s.tableFor(ctx, from)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := table.rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUnknownCurrency, to)
	}

	return amount.Mul(rate), nil
}

func (s *FxService) tableFor(ctx context.Context, base string) (*rateTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached, ok := s.cache[base]
	if ok && time.Since(cached.fetchedAt) < s.cacheTTL {
		return cached, nil
	}

	fresh, err := s.fetch(ctx, base)
	if err != nil {
		if ok {
			zap.L().Warn("fx refresh failed, serving stale rates",
				zap.String("base", base),
				zap.Error(err))

			return cached, nil
		}

		return nil, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}

	s.cache[base] = fresh

	return fresh, nil
}

func (s *FxService) fetch(ctx context.Context, base string) (*rateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"/"+base, nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest -> %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("s.client.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API returned %v", resp.StatusCode)
	}

	var body ratesResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("json.Decode -> %w", err)
	}
	if body.Result != "success" || len(body.Rates) == 0 {
		return nil, fmt.Errorf("rate API result %q", body.Result)
	}

	table := &rateTable{
		rates:     make(map[string]decimal.Decimal, len(body.Rates)),
		fetchedAt: time.Now(),
	}
	for currency, rate := range body.Rates {
		table.rates[currency] = decimal.NewFromFloat(rate)
	}

	return table, nil
}
