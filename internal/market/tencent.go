package market

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/devchen-org/stock-monitor/internal/models"
)

// Tencent gtimg: one GET for the batch, GBK-encoded response with one JS
// assignment per symbol:
//
//	v_sh600000="1~浦发银行~600000~10.05~...";
//
// Fields are tilde separated; a valid record has at least 35 of them.
// Field layout (0-based): 1 name, 3 last price, 30 quote time, 31 change,
// 32 change percent, 33 high, 34 low. Unlike Sina, the change figures are
// already computed upstream and are used as-is.
const tencentBaseURL = "http://qt.gtimg.cn/q="

const tencentMinFields = 35

var tencentLineRe = regexp.MustCompile(`v_(\w+)="(.*)"`)

type TencentProvider struct {
	baseURL string
	client  *http.Client
}

func NewTencentProvider() *TencentProvider {
	return &TencentProvider{baseURL: tencentBaseURL, client: newHTTPClient()}
}

func (p *TencentProvider) Name() string { return "tencent" }

func (p *TencentProvider) Fetch(ctx context.Context, codes []string) (map[string]models.Quote, error) {
	body, err := fetchBody(ctx, p.client, p.baseURL+strings.Join(codes, ","))
	if err != nil {
		return nil, err
	}
	utf8Body, err := simplifiedchinese.GBK.NewDecoder().Bytes(body)
	if err != nil {
		return nil, err
	}
	return parseTencent(string(utf8Body)), nil
}

func parseTencent(body string) map[string]models.Quote {
	quotes := make(map[string]models.Quote)
	for _, line := range strings.Split(body, "\n") {
		m := tencentLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		code := m[1]
		fields := strings.Split(m[2], "~")
		if len(fields) < tencentMinFields || fields[1] == "" {
			continue
		}

		last, err := decimal.NewFromString(fields[3])
		if err != nil {
			continue
		}
		change, err := decimal.NewFromString(fields[31])
		if err != nil {
			continue
		}
		changePercent, err := decimal.NewFromString(fields[32])
		if err != nil {
			continue
		}
		high, err1 := decimal.NewFromString(fields[33])
		low, err2 := decimal.NewFromString(fields[34])
		if err1 != nil || err2 != nil {
			continue
		}

		quotes[code] = models.Quote{
			Code:          code,
			Name:          fields[1],
			Price:         last,
			Change:        change,
			ChangePercent: changePercent,
			High:          high,
			Low:           low,
			Time:          fields[30],
		}
	}
	return quotes
}
