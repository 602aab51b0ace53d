package render

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/devchen-org/stock-monitor/internal/finance"
	"github.com/devchen-org/stock-monitor/internal/models"
)

// Row joins one holding with its quote and every figure derived from the
// pair. Rows live for a single frame.
type Row struct {
	Holding       models.Holding
	Quote         models.Quote
	Figures       models.ProfitFigures
	CostAfterBuy  decimal.Decimal
	CostAfterSell decimal.Decimal
}

// Totals aggregates the successfully joined rows. Failed holdings count
// toward RowCount but contribute no value.
type Totals struct {
	MarketValue decimal.Decimal
	Cost        decimal.Decimal
	Profit      decimal.Decimal
	ProfitRate  decimal.Decimal
	RowCount    int
}

// Report is the per-cycle join of holdings and quotes, sorted and totaled.
type Report struct {
	Rows   []Row            // sorted by change percent, descending
	Failed []models.Holding // holdings with no quote this cycle, file order
	Totals Totals
}

// BuildReport joins holdings with quotes, computes the derived figures,
// sorts rows by change percent (descending, stable for ties) and totals
// them up.
func BuildReport(holdings []models.Holding, quotes map[string]models.Quote, s models.Settings) Report {
	var rep Report
	for _, h := range holdings {
		q, ok := quotes[h.Code]
		if !ok {
			rep.Failed = append(rep.Failed, h)
			continue
		}
		rep.Rows = append(rep.Rows, Row{
			Holding:       h,
			Quote:         q,
			Figures:       finance.Profit(h, q.Price),
			CostAfterBuy:  finance.CostAfterBuy(h, q.Price, s.BuyLots),
			CostAfterSell: finance.CostAfterSell(h, s.SellLots),
		})
	}

	sort.SliceStable(rep.Rows, func(i, j int) bool {
		return rep.Rows[i].Quote.ChangePercent.GreaterThan(rep.Rows[j].Quote.ChangePercent)
	})

	totalMV := decimal.Zero
	totalCost := decimal.Zero
	for _, row := range rep.Rows {
		totalMV = totalMV.Add(row.Figures.MarketValue)
		totalCost = totalCost.Add(row.Holding.Shares.Mul(row.Holding.Cost).Round(3))
	}
	totalProfit := totalMV.Sub(totalCost).Round(3)
	totalRate := decimal.Zero
	if totalCost.IsPositive() {
		totalRate = totalProfit.Mul(decimal.NewFromInt(100)).Round(3).DivRound(totalCost, 3)
	}

	rep.Totals = Totals{
		MarketValue: totalMV,
		Cost:        totalCost,
		Profit:      totalProfit,
		ProfitRate:  totalRate,
		RowCount:    len(rep.Rows) + len(rep.Failed),
	}
	return rep
}
