// Package watcher runs the monitor cycle: reload config, gate on the
// trading session, fetch quotes, compute figures, render, notify, wait.
// Everything happens sequentially on one goroutine; the only suspension
// points are the network calls and the countdown sleep.
package watcher

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/devchen-org/stock-monitor/internal/config"
	"github.com/devchen-org/stock-monitor/internal/market"
	"github.com/devchen-org/stock-monitor/internal/notify"
	"github.com/devchen-org/stock-monitor/internal/render"
	"github.com/devchen-org/stock-monitor/internal/session"
)

type sender interface {
	Send(ctx context.Context, text string) notify.Result
}

type Watcher struct {
	portfolioPath string
	cfg           *config.Config
	renderer      *render.Renderer
	log           zerolog.Logger
	out           io.Writer

	// injection seams for tests
	providerFor func(id string) market.Provider
	notifierFor func(webhookURL string) sender

	shutdownOnce sync.Once
}

func New(portfolioPath string, cfg *config.Config, log zerolog.Logger, out io.Writer) *Watcher {
	return &Watcher{
		portfolioPath: portfolioPath,
		cfg:           cfg,
		renderer:      render.New(),
		log:           log,
		out:           out,
		providerFor:   market.ForID,
		notifierFor:   func(url string) sender { return notify.New(url) },
	}
}

// Run loops until ctx is cancelled. The only error it returns is a failed
// config reload, which is fatal to the process; every per-cycle failure is
// absorbed into the rendered frame.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		frame, clock := w.cycle(ctx)
		fmt.Fprint(w.out, render.ClearScreen)
		fmt.Fprint(w.out, frame)

		if ctx.Err() != nil || !w.countdown(ctx, clock) {
			w.shutdown()
			return nil
		}

		if err := w.reload(); err != nil {
			return err
		}
	}
}

// cycle produces one rendered frame. Fetch and notify failures are folded
// into the frame, never returned.
func (w *Watcher) cycle(ctx context.Context) (string, session.Clock) {
	s := w.cfg.Settings
	clock := session.NewClock(s.Timezone)
	now := clock.Now()

	frame := render.Frame{
		Holdings:     w.cfg.Holdings,
		Settings:     s,
		Now:          now,
		MarketClosed: s.TradingTime && !clock.IsOpen(now),
	}

	if !frame.MarketClosed {
		codes := make([]string, len(w.cfg.Holdings))
		for i, h := range w.cfg.Holdings {
			codes[i] = h.Code
		}

		provider := w.providerFor(s.Provider)
		quotes, err := provider.Fetch(ctx, codes)
		if err != nil {
			w.log.Warn().Err(err).Str("provider", provider.Name()).Msg("quote fetch failed")
		}
		frame.FetchFailed = err != nil || len(quotes) == 0
		frame.Report = render.BuildReport(w.cfg.Holdings, quotes, s)

		if len(frame.Report.Rows) > 0 {
			plain := w.renderer.Plain(frame.Report, s, now)
			frame.Notify = w.notifierFor(s.WechatWebhook).Send(ctx, plain)
			if !frame.Notify.Success {
				w.log.Debug().Str("result", frame.Notify.Message).Msg("notification not delivered")
			}
		}
	}

	return w.renderer.Terminal(frame), clock
}

// countdown sleeps for the refresh interval, drawing a per-second ticker
// on the countdown line. Returns false when ctx is cancelled mid-wait.
func (w *Watcher) countdown(ctx context.Context, clock session.Clock) bool {
	status := ""
	if w.cfg.Settings.TradingTime {
		if clock.IsOpen(clock.Now()) {
			status = "trading "
		} else {
			status = "off-hours "
		}
	}

	for i := w.cfg.Settings.Interval; i >= 1; i-- {
		fmt.Fprintf(w.out, "%s%snext refresh: %ds%s\r", render.Gray, status, i, render.Reset)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(time.Second):
		}
	}
	fmt.Fprint(w.out, strings.Repeat(" ", 100)+"\r")
	return true
}

// reload re-parses the portfolio file so edits apply on the next frame.
// A broken reload (missing file, zero holdings) terminates the monitor.
func (w *Watcher) reload() error {
	cfg, err := config.Load(w.portfolioPath)
	if err != nil {
		return fmt.Errorf("config reload: %w", err)
	}
	w.cfg = cfg
	w.renderer.PruneCaches()
	return nil
}

// shutdown clears the display and says goodbye. Runs at most once no
// matter where in the cycle the interrupt landed.
func (w *Watcher) shutdown() {
	w.shutdownOnce.Do(func() {
		fmt.Fprint(w.out, render.ClearScreen)
		fmt.Fprintln(w.out, "\n"+render.Colorize("  monitor stopped, thanks for using it!", render.Cyan)+"\n")
		w.log.Info().Msg("monitor stopped")
	})
}
