package models

import (
	"github.com/shopspring/decimal"
)

// LotSize is the number of shares in one trading lot. Buy/sell cost
// projections are sized in whole lots.
const LotSize = 100

// Holding is a tracked position from the portfolio file. Holdings are
// immutable within a cycle; a config reload replaces the whole slice.
type Holding struct {
	Code   string
	Name   string
	Shares decimal.Decimal
	Cost   decimal.Decimal
}

// DisplayName prefers the configured name and falls back to the code.
func (h Holding) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.Code
}

// Settings holds everything from the portfolio file that is not a holding.
type Settings struct {
	Provider      string // quote backend id: "sina" or "tencent"
	Interval      int    // refresh interval, seconds
	TradingTime   bool   // only fetch quotes during the trading session
	Timezone      string // IANA zone name for the session gate and timestamps
	WechatWebhook string // optional WeChat Work webhook URL
	BuyLots       int    // lots used for the buy-side cost projection
	SellLots      int    // lots used for the sell-side cost projection
	UpColor       string // "red" (CN market convention, default) or "green"
}

// Quote is a point-in-time price snapshot for one symbol. Quotes are
// produced fresh each cycle and never persisted.
type Quote struct {
	Code          string
	Name          string
	Price         decimal.Decimal // last traded price
	Change        decimal.Decimal // absolute move vs previous close
	ChangePercent decimal.Decimal // relative move vs previous close, 2dp
	High          decimal.Decimal
	Low           decimal.Decimal
	Time          string // quote timestamp as reported by the provider
}

// ProfitFigures are the derived per-holding numbers, recomputed every cycle.
type ProfitFigures struct {
	MarketValue decimal.Decimal
	Profit      decimal.Decimal
	ProfitRate  decimal.Decimal // percent
}
