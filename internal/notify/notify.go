// Package notify relays the plain-text report to a WeChat Work group
// webhook. Delivery failures never interrupt the monitor; the outcome is
// shown in the next rendered frame instead.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const notConfiguredMessage = "wechat webhook not configured, notification skipped"

// Result is the user-visible outcome of one delivery attempt.
type Result struct {
	Success bool
	Message string
}

type Notifier struct {
	webhookURL string
	client     *http.Client
}

func New(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// message is the WeChat Work text envelope:
// {"msgtype":"text","text":{"content":"..."}}
type message struct {
	MsgType string `json:"msgtype"`
	Text    struct {
		Content string `json:"content"`
	} `json:"text"`
}

type reply struct {
	ErrCode *int   `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// Send posts text to the webhook. Success requires the provider to answer
// with errcode 0; a missing errcode counts as failure.
func (n *Notifier) Send(ctx context.Context, text string) Result {
	if n.webhookURL == "" {
		return Result{Success: false, Message: notConfiguredMessage}
	}

	msg := message{MsgType: "text"}
	msg.Text.Content = text

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(msg); err != nil {
		return Result{Success: false, Message: "wechat notification failed: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, &buf)
	if err != nil {
		return Result{Success: false, Message: "wechat notification failed: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return Result{Success: false, Message: "wechat notification failed"}
	}
	defer resp.Body.Close()

	var r reply
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil || r.ErrCode == nil {
		return Result{Success: false, Message: "wechat notification failed: unexpected reply"}
	}
	if *r.ErrCode != 0 {
		errMsg := r.ErrMsg
		if errMsg == "" {
			errMsg = "unknown error"
		}
		return Result{Success: false, Message: "wechat notification failed: " + errMsg}
	}
	return Result{Success: true, Message: "report sent to wechat"}
}

// NotConfiguredMessage exposes the fixed skip message so the renderer can
// distinguish "unconfigured" from a real delivery failure.
func NotConfiguredMessage() string { return notConfiguredMessage }
