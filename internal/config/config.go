package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/devchen-org/stock-monitor/internal/models"
)

// Defaults applied before the portfolio file is parsed.
const (
	DefaultProvider = "sina"
	DefaultInterval = 5
	DefaultTimezone = "Asia/Shanghai"
	DefaultUpColor  = "red"
)

// Config is one validated snapshot of the portfolio file. The watcher
// replaces it wholesale on every reload.
type Config struct {
	Settings models.Settings
	Holdings []models.Holding
}

// Load parses the portfolio file at path. It fails when the file is missing
// or when it yields no valid holdings; both are fatal to the process.
//
// Grammar, line by line (blank lines and #-comments skipped):
//
//	sina | tencent          selects the quote backend
//	key=value               a setting (interval, trading_time, timezone,
//	                        wechat_webhook, buy_lots, sell_lots, up_color)
//	code|shares|cost        a holding, display name empty
//	code|name|shares|cost   a holding with a display name
//
// Lines with any other |-field count are silently skipped. Duplicate codes
// are kept as-is; holding order is the file order.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open portfolio file: %w", err)
	}
	defer f.Close()

	cfg := &Config{
		Settings: models.Settings{
			Provider: DefaultProvider,
			Interval: DefaultInterval,
			Timezone: DefaultTimezone,
			BuyLots:  1,
			SellLots: 1,
			UpColor:  DefaultUpColor,
		},
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch strings.ToLower(line) {
		case "sina", "tencent":
			cfg.Settings.Provider = strings.ToLower(line)
			continue
		}

		if strings.Contains(line, "=") {
			applySetting(&cfg.Settings, line)
			continue
		}

		if h, ok := parseHolding(line); ok {
			cfg.Holdings = append(cfg.Holdings, h)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read portfolio file: %w", err)
	}

	if len(cfg.Holdings) == 0 {
		return nil, fmt.Errorf("portfolio file %s contains no valid holdings", path)
	}
	return cfg, nil
}

func applySetting(s *models.Settings, line string) {
	key, value, _ := strings.Cut(line, "=")
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	switch key {
	case "interval":
		if n, err := strconv.Atoi(value); err == nil && n >= 1 {
			s.Interval = n
		}
	case "trading_time":
		v := strings.ToLower(value)
		s.TradingTime = v == "true" || v == "1"
	case "timezone":
		if value != "" {
			s.Timezone = value
		}
	case "wechat_webhook":
		s.WechatWebhook = value
	case "buy_lots":
		s.BuyLots = atLeastOne(value)
	case "sell_lots":
		s.SellLots = atLeastOne(value)
	case "up_color":
		if v := strings.ToLower(value); v == "red" || v == "green" {
			s.UpColor = v
		}
	}
}

func atLeastOne(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func parseHolding(line string) (models.Holding, bool) {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var h models.Holding
	var sharesStr, costStr string
	switch len(parts) {
	case 3:
		h.Code, sharesStr, costStr = parts[0], parts[1], parts[2]
	case 4:
		h.Code, h.Name, sharesStr, costStr = parts[0], parts[1], parts[2], parts[3]
	default:
		return models.Holding{}, false
	}
	if h.Code == "" {
		return models.Holding{}, false
	}

	shares, err := decimal.NewFromString(sharesStr)
	if err != nil || shares.IsNegative() {
		return models.Holding{}, false
	}
	cost, err := decimal.NewFromString(costStr)
	if err != nil || cost.IsNegative() {
		return models.Holding{}, false
	}
	h.Shares, h.Cost = shares, cost
	return h, true
}
