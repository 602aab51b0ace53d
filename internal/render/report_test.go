package render

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devchen-org/stock-monitor/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testSettings() models.Settings {
	return models.Settings{
		Provider: "sina",
		Interval: 5,
		Timezone: "Asia/Shanghai",
		BuyLots:  1,
		SellLots: 1,
		UpColor:  "red",
	}
}

func testHoldings() []models.Holding {
	return []models.Holding{
		{Code: "AAA", Shares: dec("100"), Cost: dec("10.000")},
		{Code: "BBB", Name: "NameB", Shares: dec("200"), Cost: dec("5.500")},
	}
}

func testQuotes() map[string]models.Quote {
	return map[string]models.Quote{
		"AAA": {
			Code: "AAA", Name: "StockA",
			Price: dec("11.0"), Change: dec("1.000"), ChangePercent: dec("10.00"),
			High: dec("11.2"), Low: dec("9.9"), Time: "15:00:03",
		},
		"BBB": {
			Code: "BBB", Name: "NameB",
			Price: dec("5.0"), Change: dec("-0.500"), ChangePercent: dec("-9.09"),
			High: dec("5.6"), Low: dec("4.9"), Time: "15:00:03",
		},
	}
}

func TestBuildReport_JoinComputeSortTotal(t *testing.T) {
	rep := BuildReport(testHoldings(), testQuotes(), testSettings())

	require.Len(t, rep.Rows, 2)
	assert.Empty(t, rep.Failed)

	// descending by change percent: the riser first
	assert.Equal(t, "AAA", rep.Rows[0].Holding.Code)
	assert.Equal(t, "BBB", rep.Rows[1].Holding.Code)

	assert.Equal(t, "1100.000", rep.Rows[0].Figures.MarketValue.StringFixed(3))
	assert.Equal(t, "100.000", rep.Rows[0].Figures.Profit.StringFixed(3))
	assert.Equal(t, "1000.000", rep.Rows[1].Figures.MarketValue.StringFixed(3))
	assert.Equal(t, "-100.000", rep.Rows[1].Figures.Profit.StringFixed(3))

	assert.Equal(t, "2100.000", rep.Totals.MarketValue.StringFixed(3))
	assert.Equal(t, "2100.000", rep.Totals.Cost.StringFixed(3))
	assert.Equal(t, "0.000", rep.Totals.Profit.StringFixed(3))
	assert.Equal(t, "0.000", rep.Totals.ProfitRate.StringFixed(3))
	assert.Equal(t, 2, rep.Totals.RowCount)
}

func TestBuildReport_MissingQuoteGoesToFailedBucket(t *testing.T) {
	holdings := append(testHoldings(), models.Holding{
		Code: "CCC", Shares: dec("50"), Cost: dec("20"),
	})

	rep := BuildReport(holdings, testQuotes(), testSettings())

	require.Len(t, rep.Rows, 2)
	require.Len(t, rep.Failed, 1)
	assert.Equal(t, "CCC", rep.Failed[0].Code)

	// failed holdings count in the row count but not in the money totals
	assert.Equal(t, 3, rep.Totals.RowCount)
	assert.Equal(t, "2100.000", rep.Totals.MarketValue.StringFixed(3))
}

func TestBuildReport_StableForEqualChangePercent(t *testing.T) {
	holdings := []models.Holding{
		{Code: "X1", Shares: dec("10"), Cost: dec("1")},
		{Code: "X2", Shares: dec("10"), Cost: dec("1")},
		{Code: "X3", Shares: dec("10"), Cost: dec("1")},
	}
	quotes := map[string]models.Quote{}
	for _, h := range holdings {
		quotes[h.Code] = models.Quote{Code: h.Code, Name: h.Code, Price: dec("1"), ChangePercent: dec("0")}
	}

	rep := BuildReport(holdings, quotes, testSettings())
	require.Len(t, rep.Rows, 3)
	assert.Equal(t, "X1", rep.Rows[0].Holding.Code)
	assert.Equal(t, "X2", rep.Rows[1].Holding.Code)
	assert.Equal(t, "X3", rep.Rows[2].Holding.Code)
}

func TestBuildReport_EmptyQuotes(t *testing.T) {
	rep := BuildReport(testHoldings(), nil, testSettings())
	assert.Empty(t, rep.Rows)
	require.Len(t, rep.Failed, 2)
	assert.Equal(t, 2, rep.Totals.RowCount)
	assert.True(t, rep.Totals.MarketValue.IsZero())
	assert.True(t, rep.Totals.ProfitRate.IsZero())
}
