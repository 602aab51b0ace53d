// Package finance holds the decimal-exact money math. Every intermediate
// step is rounded to 3 decimal places so repeated cost-basis recalculation
// never accumulates drift; binary floats are not used anywhere here.
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/devchen-org/stock-monitor/internal/models"
)

const scale = 3

var hundred = decimal.NewFromInt(100)

// Profit computes market value, absolute profit and profit rate (percent)
// for a holding at the given last price. The rate is 0 when the cost value
// is not positive.
func Profit(h models.Holding, price decimal.Decimal) models.ProfitFigures {
	marketValue := h.Shares.Mul(price).Round(scale)
	costValue := h.Shares.Mul(h.Cost).Round(scale)
	profit := marketValue.Sub(costValue).Round(scale)

	rate := decimal.Zero
	if costValue.IsPositive() {
		rate = profit.Mul(hundred).Round(scale).DivRound(costValue, scale)
	}
	return models.ProfitFigures{
		MarketValue: marketValue,
		Profit:      profit,
		ProfitRate:  rate,
	}
}

// CostAfterBuy projects the weighted-average cost basis after buying the
// given number of lots at price.
func CostAfterBuy(h models.Holding, price decimal.Decimal, lots int) decimal.Decimal {
	sharesToBuy := decimal.NewFromInt(int64(lots) * models.LotSize)
	newShares := h.Shares.Add(sharesToBuy)
	if !newShares.IsPositive() {
		return decimal.Zero
	}
	costValue := h.Shares.Mul(h.Cost).Round(scale)
	newCostValue := costValue.Add(sharesToBuy.Mul(price).Round(scale)).Round(scale)
	return newCostValue.DivRound(newShares, scale)
}

// CostAfterSell projects the cost basis after selling the given number of
// lots. Selling does not move a weighted-average cost basis, so the current
// price plays no part: the remaining shares simply carry the old cost value.
// Returns 0 when the sale would close or overclose the position.
func CostAfterSell(h models.Holding, lots int) decimal.Decimal {
	sharesToSell := decimal.NewFromInt(int64(lots) * models.LotSize)
	newShares := h.Shares.Sub(sharesToSell)
	if !newShares.IsPositive() {
		return decimal.Zero
	}
	costValue := h.Shares.Mul(h.Cost).Round(scale)
	return costValue.DivRound(newShares, scale)
}
