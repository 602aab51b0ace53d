package market

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/devchen-org/stock-monitor/internal/models"
)

// Sina hqapi: one GET for the whole batch, response is one JS assignment
// per symbol:
//
//	var hq_str_sh600000="浦发银行,10.100,10.000,10.050,...";
//
// Fields are comma separated; a valid record has at least 32 of them.
// Field layout (0-based): 0 name, 2 previous close, 3 last price, 4 high,
// 5 low, 31 quote time. Change figures are not on the wire and are derived
// from the previous close.
const sinaBaseURL = "http://hq.sinajs.cn/list="

const sinaMinFields = 32

var sinaLineRe = regexp.MustCompile(`var hq_str_(\w+)="(.*)";`)

type SinaProvider struct {
	baseURL string
	client  *http.Client
}

func NewSinaProvider() *SinaProvider {
	return &SinaProvider{baseURL: sinaBaseURL, client: newHTTPClient()}
}

func (p *SinaProvider) Name() string { return "sina" }

func (p *SinaProvider) Fetch(ctx context.Context, codes []string) (map[string]models.Quote, error) {
	body, err := fetchBody(ctx, p.client, p.baseURL+strings.Join(codes, ","))
	if err != nil {
		return nil, err
	}
	return parseSina(string(body)), nil
}

func parseSina(body string) map[string]models.Quote {
	quotes := make(map[string]models.Quote)
	for _, line := range strings.Split(body, "\n") {
		m := sinaLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		code := m[1]
		fields := strings.Split(m[2], ",")
		if len(fields) < sinaMinFields || fields[0] == "" {
			continue
		}

		last, err := decimal.NewFromString(fields[3])
		if err != nil {
			continue
		}
		prevClose, err := decimal.NewFromString(fields[2])
		if err != nil {
			continue
		}
		high, err1 := decimal.NewFromString(fields[4])
		low, err2 := decimal.NewFromString(fields[5])
		if err1 != nil || err2 != nil {
			continue
		}

		change := last.Sub(prevClose).Round(3)
		changePercent := decimal.Zero
		if prevClose.IsPositive() {
			changePercent = change.Mul(decimal.NewFromInt(100)).DivRound(prevClose, 2)
		}

		quotes[code] = models.Quote{
			Code:          code,
			Name:          fields[0],
			Price:         last,
			Change:        change,
			ChangePercent: changePercent,
			High:          high,
			Low:           low,
			Time:          fields[31],
		}
	}
	return quotes
}
