package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// tencentLine builds one response line with the minimum field count,
// filling only the positions the parser reads.
func tencentLine(code, name, last, quoteTime, change, changePercent, high, low string) string {
	fields := make([]string, tencentMinFields)
	fields[1] = name
	fields[3] = last
	fields[30] = quoteTime
	fields[31] = change
	fields[32] = changePercent
	fields[33] = high
	fields[34] = low
	return fmt.Sprintf("v_%s=\"%s\"", code, strings.Join(fields, "~"))
}

func TestParseTencent(t *testing.T) {
	body := strings.Join([]string{
		tencentLine("sh600000", "浦发银行", "10.50", "20240108150003", "0.50", "5.00", "10.60", "9.90"),
		tencentLine("sz000001", "平安银行", "7.80", "20240108150000", "-0.20", "-2.50", "8.10", "7.75"),
	}, "\n")

	quotes := parseTencent(body)
	require.Len(t, quotes, 2)

	q := quotes["sh600000"]
	assert.Equal(t, "浦发银行", q.Name)
	assert.Equal(t, "10.500", q.Price.StringFixed(3))
	// upstream change figures are taken as-is, not recomputed
	assert.Equal(t, "0.500", q.Change.StringFixed(3))
	assert.Equal(t, "5.00", q.ChangePercent.StringFixed(2))
	assert.Equal(t, "10.600", q.High.StringFixed(3))
	assert.Equal(t, "9.900", q.Low.StringFixed(3))
	assert.Equal(t, "20240108150003", q.Time)
}

func TestParseTencent_SkipsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"too few fields", `v_sh600000="1~name~600000~10.5"`},
		{"empty name field", tencentLine("sh600000", "", "10.5", "t", "0", "0", "11", "10")},
		{"no assignment pattern", "pv_none=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, parseTencent(tt.body))
		})
	}
}

// The live endpoint answers in GBK; the provider must transcode before
// parsing so CJK names survive intact.
func TestTencentProvider_FetchTranscodesGBK(t *testing.T) {
	line := tencentLine("sh600000", "浦发银行", "10.50", "20240108150003", "0.50", "5.00", "10.60", "9.90")
	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(line + "\n"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(gbk)
	}))
	defer srv.Close()

	p := NewTencentProvider()
	p.baseURL = srv.URL + "/q="
	p.client = srv.Client()

	quotes, err := p.Fetch(context.Background(), []string{"sh600000"})
	require.NoError(t, err)
	require.Contains(t, quotes, "sh600000")
	assert.Equal(t, "浦发银行", quotes["sh600000"].Name)
}

func TestTencentProvider_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := srv.Client()
	srv.Close()

	p := NewTencentProvider()
	p.baseURL = srv.URL + "/q="
	p.client = client

	_, err := p.Fetch(context.Background(), []string{"sh600000"})
	assert.Error(t, err)
}
