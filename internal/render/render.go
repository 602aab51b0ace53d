// Package render turns one cycle's holdings, quotes and derived figures
// into the colored terminal frame and the plain-text webhook table.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/devchen-org/stock-monitor/internal/models"
	"github.com/devchen-org/stock-monitor/internal/notify"
)

const timestampLayout = "2006-01-02 15:04:05"

// Column geometry of the full table. Kept fixed so re-rendering the same
// data is byte-identical.
var columnWidths = []int{12, 14, 8, 8, 8, 8, 8, 8, 10, 14, 14, 12, 14, 14}

// plainColumns are the indices projected into the webhook table:
// name, change, change percent, last price, cost basis.
var plainColumns = []int{1, 2, 3, 6, 7}

// Frame is everything the terminal rendering of one cycle depends on.
type Frame struct {
	Holdings     []models.Holding
	Settings     models.Settings
	Now          time.Time
	Report       Report
	MarketClosed bool // trading_time gate on and the session is shut
	FetchFailed  bool // the provider returned nothing this cycle
	Notify       notify.Result
}

// Renderer formats frames. It owns the bounded width/format memos, so one
// Renderer should live as long as the monitor.
type Renderer struct {
	c *caches
}

func New() *Renderer {
	return &Renderer{c: newCaches()}
}

// PruneCaches resets any memo that outgrew its cap; the watcher calls this
// on every config reload.
func (r *Renderer) PruneCaches() { r.c.prune() }

func headers(s models.Settings) []string {
	return []string{
		"Code", "Name", "Change", "Chg%", "High", "Low", "Price", "Cost",
		fmt.Sprintf("Cost+%dL", s.BuyLots),
		fmt.Sprintf("Cost-%dL", s.SellLots),
		"Shares", "MktValue", "Profit", "Profit%",
	}
}

// Terminal renders the full ANSI frame, footer lines included. The caller
// owns clearing the screen beforehand.
func (r *Renderer) Terminal(f Frame) string {
	var sb strings.Builder

	sb.WriteString("\n")
	r.writeTitle(&sb, f)
	sb.WriteString("\n\n")

	r.writeBorder(&sb, columnWidths, true)
	r.writeRow(&sb, headers(f.Settings), columnWidths, Cyan)
	r.writeBorder(&sb, columnWidths, true)

	if f.MarketClosed {
		for _, h := range f.Holdings {
			r.writeRow(&sb, r.closedCells(h), columnWidths, Gray)
		}
	} else {
		for _, row := range f.Report.Rows {
			color := rowColor(row.Quote.ChangePercent.Sign(), f.Settings.UpColor)
			r.writeRow(&sb, r.rowCells(row), columnWidths, color)
		}
		for _, h := range f.Report.Failed {
			r.writeRow(&sb, failedCells(h), columnWidths, Yellow)
		}
	}

	r.writeBorder(&sb, columnWidths, true)
	r.writeTotals(&sb, f)
	r.writeBorder(&sb, columnWidths, true)

	sb.WriteString("\n")
	r.writeFooter(&sb, f)
	return sb.String()
}

// Plain renders the reduced-column table relayed to the webhook. No ANSI
// codes, same sort order as the terminal frame.
func (r *Renderer) Plain(rep Report, s models.Settings, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("Stock portfolio monitor - " + now.Format(timestampLayout) + "\n\n")

	hdr := headers(s)
	var cells []string
	var widths []int
	for _, i := range plainColumns {
		cells = append(cells, hdr[i])
		widths = append(widths, columnWidths[i])
	}

	r.writeBorder(&sb, widths, false)
	r.writeRow(&sb, cells, widths, "")
	r.writeBorder(&sb, widths, false)
	for _, row := range rep.Rows {
		full := r.rowCells(row)
		cells = cells[:0]
		for _, i := range plainColumns {
			cells = append(cells, full[i])
		}
		r.writeRow(&sb, cells, widths, "")
	}
	r.writeBorder(&sb, widths, false)
	return sb.String()
}

func (r *Renderer) writeTitle(sb *strings.Builder, f Frame) {
	sb.WriteString(Colorize(" Stock portfolio monitor", Cyan))
	sb.WriteString(Colorize(fmt.Sprintf(" (%s)", f.Settings.Provider), Yellow))
	if f.Settings.TradingTime {
		sb.WriteString(Colorize(" [trading hours only]", Gray))
	}
	sb.WriteString(Colorize(" - "+f.Now.Format(timestampLayout), White))
	sb.WriteString(Colorize(fmt.Sprintf("  interval: %ds (Ctrl+C to quit)", f.Settings.Interval), Gray))
}

func (r *Renderer) rowCells(row Row) []string {
	return []string{
		row.Holding.Code,
		row.Quote.Name,
		signPrefix(row.Quote.Change) + r.c.formatNumber(row.Quote.Change, 3),
		r.c.formatNumber(row.Quote.ChangePercent, 2) + "%",
		r.c.formatNumber(row.Quote.High, 3),
		r.c.formatNumber(row.Quote.Low, 3),
		r.c.formatNumber(row.Quote.Price, 3),
		r.c.formatNumber(row.Holding.Cost, 3),
		r.c.formatNumber(row.CostAfterBuy, 3),
		r.c.formatNumber(row.CostAfterSell, 3),
		r.c.formatNumber(row.Holding.Shares, 0),
		r.c.formatNumber(row.Figures.MarketValue, 3),
		signPrefix(row.Figures.Profit) + r.c.formatNumber(row.Figures.Profit, 3),
		r.c.formatNumber(row.Figures.ProfitRate, 3) + "%",
	}
}

func failedCells(h models.Holding) []string {
	cells := make([]string, len(columnWidths))
	cells[0] = h.Code
	cells[1] = "fetch failed"
	for i := 2; i < len(cells); i++ {
		cells[i] = "-"
	}
	return cells
}

func (r *Renderer) closedCells(h models.Holding) []string {
	cells := make([]string, len(columnWidths))
	for i := range cells {
		cells[i] = "--"
	}
	cells[0] = h.Code
	cells[1] = h.DisplayName()
	cells[7] = r.c.formatNumber(h.Cost, 3)
	cells[10] = r.c.formatNumber(h.Shares, 0)
	return cells
}

func (r *Renderer) writeBorder(sb *strings.Builder, widths []int, colored bool) {
	if colored {
		sb.WriteString(Gray)
	}
	sb.WriteString("+")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("+")
	}
	if colored {
		sb.WriteString(Reset)
	}
	sb.WriteString("\n")
}

func (r *Renderer) writeRow(sb *strings.Builder, cells []string, widths []int, color string) {
	sb.WriteString(color)
	sb.WriteString("|")
	for i, cell := range cells {
		sb.WriteString(" ")
		sb.WriteString(r.c.padRight(cell, widths[i]))
		sb.WriteString(" |")
	}
	if color != "" {
		sb.WriteString(Reset)
	}
	sb.WriteString("\n")
}

func (r *Renderer) writeTotals(sb *strings.Builder, f Frame) {
	t := f.Report.Totals
	rowCount := t.RowCount
	if f.MarketClosed {
		rowCount = len(f.Holdings)
	}

	cells := make([]string, len(columnWidths))
	cells[10] = fmt.Sprintf("Total (%d)", rowCount)
	cells[12] = signPrefix(t.Profit) + r.c.formatNumber(t.Profit, 3)
	cells[13] = r.c.formatNumber(t.ProfitRate, 3) + "%"

	sb.WriteString(Gray)
	sb.WriteString("|")
	for i, cell := range cells {
		padded := r.c.padRight(cell, columnWidths[i])
		if i == 10 && cell != "" {
			padded = Yellow + padded + Reset + Gray
		}
		sb.WriteString(" ")
		sb.WriteString(padded)
		sb.WriteString(" |")
	}
	sb.WriteString(Reset)
	sb.WriteString("\n")
}

func (r *Renderer) writeFooter(sb *strings.Builder, f Frame) {
	if !f.MarketClosed && (f.FetchFailed || len(f.Report.Failed) > 0) {
		sb.WriteString(Colorize("  quote fetch failed, check the network or switch provider", Yellow))
		sb.WriteString("\n")
	}

	t := f.Report.Totals
	profitLine := fmt.Sprintf("  P/L: %s%s (%s%%)",
		signPrefix(t.Profit), r.c.formatNumber(t.Profit, 3), r.c.formatNumber(t.ProfitRate, 3))
	switch t.Profit.Sign() {
	case 1:
		sb.WriteString(Colorize(profitLine, rowColor(1, f.Settings.UpColor)))
	case -1:
		sb.WriteString(Colorize(profitLine, rowColor(-1, f.Settings.UpColor)))
	default:
		sb.WriteString(Colorize(profitLine, White))
	}
	sb.WriteString("\n")

	if f.MarketClosed {
		sb.WriteString(Colorize("  market closed, quote updates paused", Yellow))
		sb.WriteString("\n")
		sb.WriteString(Colorize("  trading hours: Mon-Fri 09:30-11:30, 13:00-15:00", Yellow))
		sb.WriteString("\n")
	}

	if f.Notify.Message != "" {
		color := Red
		if f.Notify.Success {
			color = Green
		} else if f.Notify.Message == notify.NotConfiguredMessage() {
			color = Yellow
		}
		sb.WriteString(Colorize("  "+f.Notify.Message, color))
		sb.WriteString("\n")
	}
}

func signPrefix(d decimal.Decimal) string {
	if d.Sign() > 0 {
		return "+"
	}
	return ""
}
