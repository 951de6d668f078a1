package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"TradeFolder/internal/calculator"
	"TradeFolder/internal/model"
)

// FormatRunSummary formats an export run into a Telegram HTML message.
func FormatRunSummary(req model.Request, root string, outcomes []model.Outcome, elapsed time.Duration) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📁 <b>%s</b> since %s\n", html.EscapeString(req.Ticker), req.ISODate()))
	b.WriteString(fmt.Sprintf("<code>%s</code>\n\n", html.EscapeString(root)))

	for _, o := range outcomes {
		switch o.Status {
		case model.StatusOK:
			b.WriteString(fmt.Sprintf("✅ %s: %d bars%s\n", o.Interval.Name, len(o.Bars), seriesStats(o.Bars)))
		case model.StatusEmpty:
			b.WriteString(fmt.Sprintf("➖ %s: no data\n", o.Interval.Name))
		case model.StatusFailed:
			b.WriteString(fmt.Sprintf("❌ %s: %s\n", o.Interval.Name, html.EscapeString(errText(o.Err))))
		}
	}

	ok, empty, failed := model.Counts(outcomes)
	b.WriteString(fmt.Sprintf("\n%d ok, %d empty, %d failed in %s", ok, empty, failed, elapsed.Round(time.Millisecond)))
	return b.String()
}

// seriesStats describes the price range and move of a series, or "" when it cannot.
func seriesStats(bars model.Series) string {
	high, low, err := calculator.Range(bars)
	if err != nil || high == 0 {
		return ""
	}
	s := fmt.Sprintf(", %.2f–%.2f", low, high)
	if chg, err := calculator.Change(bars); err == nil {
		s += fmt.Sprintf(" (%+.2f%%)", chg)
	}
	if pos, err := calculator.Position(bars[len(bars)-1].Close, high, low); err == nil {
		s += fmt.Sprintf(", close at %.0f%% of range", pos*100)
	}
	return s
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
