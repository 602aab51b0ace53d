package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_NotConfigured(t *testing.T) {
	res := New("").Send(context.Background(), "hello")
	assert.False(t, res.Success)
	assert.Equal(t, NotConfiguredMessage(), res.Message)
}

func TestSend_Success(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		io.WriteString(w, `{"errcode":0,"errmsg":"ok"}`)
	}))
	defer srv.Close()

	res := New(srv.URL).Send(context.Background(), "收益表 +100.000")
	assert.True(t, res.Success)
	assert.Equal(t, "report sent to wechat", res.Message)

	var msg map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &msg))
	assert.Equal(t, "text", msg["msgtype"])
	assert.Equal(t, "收益表 +100.000", msg["text"].(map[string]any)["content"])
	// non-ASCII goes over the wire unescaped
	assert.Contains(t, string(gotBody), "收益表")
}

func TestSend_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"errcode":93000,"errmsg":"invalid webhook url"}`)
	}))
	defer srv.Close()

	res := New(srv.URL).Send(context.Background(), "x")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "invalid webhook url")
}

func TestSend_MalformedReply(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>gateway error</html>"},
		{"missing errcode", `{"errmsg":"ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			res := New(srv.URL).Send(context.Background(), "x")
			assert.False(t, res.Success)
			assert.True(t, strings.HasPrefix(res.Message, "wechat notification failed"))
		})
	}
}

func TestSend_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	res := New(srv.URL).Send(context.Background(), "x")
	assert.False(t, res.Success)
	assert.Equal(t, "wechat notification failed", res.Message)
}
