package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rhushabh77/crowdfunding-backend/models"
)

// DefaultAPIURL is the public rate API consumed for the USD to INR rate.
const DefaultAPIURL = "https://api.exchangerate-api.com/v4/latest/USD"

// FallbackUSDToINR is used whenever the live source is unavailable.
const FallbackUSDToINR = 84.69

const (
	cacheKey     = "exchange_rate:usd_inr"
	defaultTTL   = time.Hour
	fetchTimeout = 10 * time.Second
)

// Provider fetches the USD to INR rate with at most one attempt per call and
// never fails: any error degrades to the fallback rate. A redis cache keeps
// one successful fetch per session window; fallback rates are never cached.
type Provider struct {
	APIURL   string
	Client   *http.Client
	Cache    *redis.Client
	CacheTTL time.Duration
}

// NewProvider builds a provider against apiURL. cache may be nil, in which
// case every call goes to the remote source.
func NewProvider(apiURL string, cache *redis.Client) *Provider {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Provider{
		APIURL:   apiURL,
		Client:   &http.Client{Timeout: fetchTimeout},
		Cache:    cache,
		CacheTTL: defaultTTL,
	}
}

// GetRate returns the current exchange rate. Callers can treat the provider
// as non-failing: on any fetch problem the fixed fallback is returned with
// IsFallback set, and the rate is always positive.
func (p *Provider) GetRate(ctx context.Context) models.ExchangeRate {
	if cached, ok := p.fromCache(ctx); ok {
		return cached
	}

	rate, err := p.fetch(ctx)
	if err != nil {
		log.Printf("exchange rate fetch failed, using fallback: %v", err)
		return models.ExchangeRate{
			USDToINR:   FallbackUSDToINR,
			FetchedAt:  time.Now(),
			IsFallback: true,
		}
	}

	p.toCache(ctx, rate)
	return rate
}

func (p *Provider) fetch(ctx context.Context) (models.ExchangeRate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.APIURL, nil)
	if err != nil {
		return models.ExchangeRate{}, err
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return models.ExchangeRate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ExchangeRate{}, fmt.Errorf("rate API returned %s", resp.Status)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.ExchangeRate{}, fmt.Errorf("malformed rate response: %w", err)
	}

	inr, ok := payload.Rates["INR"]
	if !ok || inr <= 0 {
		return models.ExchangeRate{}, fmt.Errorf("rate response missing positive INR rate")
	}

	return models.ExchangeRate{USDToINR: inr, FetchedAt: time.Now()}, nil
}

func (p *Provider) fromCache(ctx context.Context) (models.ExchangeRate, bool) {
	if p.Cache == nil {
		return models.ExchangeRate{}, false
	}

	data, err := p.Cache.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("exchange rate cache read failed: %v", err)
		}
		return models.ExchangeRate{}, false
	}

	var rate models.ExchangeRate
	if err := json.Unmarshal(data, &rate); err != nil || rate.USDToINR <= 0 {
		return models.ExchangeRate{}, false
	}
	return rate, true
}

func (p *Provider) toCache(ctx context.Context, rate models.ExchangeRate) {
	if p.Cache == nil {
		return
	}

	ttl := p.CacheTTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	data, err := json.Marshal(rate)
	if err != nil {
		return
	}
	if err := p.Cache.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		log.Printf("exchange rate cache write failed: %v", err)
	}
}
