// Package provider loads instrument definitions from trading venues
// into the risk engine's cache.
package provider

import (
	"context"
	"encoding/json"
	"fmt"

	bybit_api "github.com/bybit-exchange/bybit.go.api"
	"github.com/shopspring/decimal"

	"github.com/tradegate/pretrade/internal/cache"
	"github.com/tradegate/pretrade/internal/logger"
	"github.com/tradegate/pretrade/internal/model"
)

// BybitConfig holds the configuration for the Bybit instrument provider.
type BybitConfig struct {
	APIKey    string
	APISecret string
	Testnet   bool
	Category  string // "spot", "linear" or "inverse"
	Venue     model.Venue
}

// BybitInstrumentProvider fetches instrument definitions from the Bybit
// v5 market API and converts them into risk-checkable instruments. All
// filter values are carried as exact decimals.
type BybitInstrumentProvider struct {
	client   *bybit_api.Client
	category string
	venue    model.Venue
	log      *logger.Logger
}

// NewBybitInstrumentProvider creates a provider for the given category
// and venue label.
func NewBybitInstrumentProvider(cfg BybitConfig, log *logger.Logger) *BybitInstrumentProvider {
	baseURL := bybit_api.MAINNET
	if cfg.Testnet {
		baseURL = bybit_api.TESTNET
	}

	client := bybit_api.NewBybitHttpClient(
		cfg.APIKey,
		cfg.APISecret,
		bybit_api.WithBaseURL(baseURL),
	)

	category := cfg.Category
	if category == "" {
		category = "spot"
	}

	return &BybitInstrumentProvider{
		client:   client,
		category: category,
		venue:    cfg.Venue,
		log:      log,
	}
}

type bybitInstrumentItem struct {
	Symbol      string `json:"symbol"`
	Status      string `json:"status"`
	BaseCoin    string `json:"baseCoin"`
	QuoteCoin   string `json:"quoteCoin"`
	PriceFilter struct {
		MinPrice string `json:"minPrice"`
		MaxPrice string `json:"maxPrice"`
		TickSize string `json:"tickSize"`
	} `json:"priceFilter"`
	LotSizeFilter struct {
		MinNotionalValue string `json:"minNotionalValue"`
		MaxOrderQty      string `json:"maxOrderQty"`
		MinOrderQty      string `json:"minOrderQty"`
		QtyStep          string `json:"qtyStep"`
		BasePrecision    string `json:"basePrecision"`
	} `json:"lotSizeFilter"`
}

// LoadAll fetches every tradeable instrument in the configured category
// and adds it to the cache. Returns the number of instruments loaded.
func (p *BybitInstrumentProvider) LoadAll(ctx context.Context, c *cache.Cache) (int, error) {
	params := map[string]interface{}{
		"category": p.category,
	}

	result, err := p.client.NewUtaBybitServiceWithParams(params).GetInstrumentInfo(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch instrument info: %w", err)
	}

	items, err := parseInstrumentInfoResponse(result)
	if err != nil {
		return 0, fmt.Errorf("failed to parse instrument info: %w", err)
	}

	loaded := 0
	for _, item := range items {
		if item.Status != "Trading" {
			continue
		}
		instrument, err := p.toInstrument(item)
		if err != nil {
			p.log.Warning("Skipping instrument %s: %v", item.Symbol, err)
			continue
		}
		c.AddInstrument(instrument)
		loaded++
	}

	p.log.Info("Loaded %d %s instruments from %s", loaded, p.category, p.venue)
	return loaded, nil
}

func parseInstrumentInfoResponse(response interface{}) ([]bybitInstrumentItem, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return nil, fmt.Errorf("invalid response type %T", response)
	}
	if serverResp.RetCode != 0 {
		return nil, fmt.Errorf("API error: %s (code: %d)", serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	var instrumentResult struct {
		Category string                `json:"category"`
		List     []bybitInstrumentItem `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &instrumentResult); err != nil {
		return nil, fmt.Errorf("failed to unmarshal instrument result: %w", err)
	}

	return instrumentResult.List, nil
}

func (p *BybitInstrumentProvider) toInstrument(item bybitInstrumentItem) (*model.Instrument, error) {
	tickSize, err := decimal.NewFromString(item.PriceFilter.TickSize)
	if err != nil || !tickSize.IsPositive() {
		return nil, fmt.Errorf("invalid tick size %q", item.PriceFilter.TickSize)
	}

	sizeStep := item.LotSizeFilter.QtyStep
	if sizeStep == "" {
		sizeStep = item.LotSizeFilter.BasePrecision
	}
	qtyStep, err := decimal.NewFromString(sizeStep)
	if err != nil || !qtyStep.IsPositive() {
		return nil, fmt.Errorf("invalid quantity step %q", sizeStep)
	}

	instrument := &model.Instrument{
		ID:             model.NewInstrumentID(item.Symbol, p.venue),
		AssetClass:     model.AssetClassCrypto,
		IsCurrencyPair: p.category == "spot",
		BaseCurrency:   model.Currency(item.BaseCoin),
		QuoteCurrency:  model.Currency(item.QuoteCoin),
		PricePrecision: stepPrecision(tickSize),
		SizePrecision:  stepPrecision(qtyStep),
		TickSize:       tickSize,
		Multiplier:     decimal.NewFromInt(1),
	}

	if q, err := model.QuantityFromString(item.LotSizeFilter.MinOrderQty); err == nil && !q.IsZero() {
		instrument.MinQuantity = &q
	}
	if q, err := model.QuantityFromString(item.LotSizeFilter.MaxOrderQty); err == nil && !q.IsZero() {
		instrument.MaxQuantity = &q
	}
	if px, err := model.PriceFromString(item.PriceFilter.MinPrice); err == nil && px.IsPositive() {
		instrument.MinPrice = &px
	}
	if px, err := model.PriceFromString(item.PriceFilter.MaxPrice); err == nil && px.IsPositive() {
		instrument.MaxPrice = &px
	}
	if m, err := model.MoneyFromString(item.LotSizeFilter.MinNotionalValue, instrument.QuoteCurrency); err == nil && m.Amount.IsPositive() {
		instrument.MinNotional = &m
	}

	return instrument, nil
}

// stepPrecision derives decimal places from a filter step such as
// "0.001" (3) or "1" (0).
func stepPrecision(step decimal.Decimal) int32 {
	if exp := step.Exponent(); exp < 0 {
		return -exp
	}
	return 0
}
