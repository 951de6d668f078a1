package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"TradeFolder/internal/model"
)

func init() {
	backoff = func(int) time.Duration { return time.Millisecond }
	pollRetryDelay = time.Millisecond
}

func TestTelegramNotifier_Send(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier(srv.URL, "123:ABC", "42", "")
	if err := tn.Notify(context.Background(), "<b>done</b>"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if gotPath != "/bot123:ABC/sendMessage" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotBody["chat_id"] != "42" || gotBody["parse_mode"] != "HTML" || gotBody["text"] != "<b>done</b>" {
		t.Errorf("unexpected payload: %v", gotBody)
	}
}

func TestTelegramNotifier_SendWithRetry(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier(srv.URL, "t", "c", "")
	if err := tn.SendWithRetry(context.Background(), "hi", 3); err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestTelegramNotifier_RetriesExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	err := NewTelegramNotifier(srv.URL, "t", "c", "").SendWithRetry(context.Background(), "hi", 1)
	if err == nil || !strings.Contains(err.Error(), "all 2 attempts exhausted") {
		t.Errorf("expected exhausted error, got %v", err)
	}
}

func TestTelegramNotifier_StartPolling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var replies []string
	served := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			mu.Lock()
			replies = append(replies, body["text"])
			mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true}`))
			cancel()
			return
		}
		mu.Lock()
		first := !served
		served = true
		mu.Unlock()
		if first {
			_, _ = w.Write([]byte(`{"ok":true,"result":[{"update_id":6,"message":{"text":"/export ../../etc 01/03/2024","chat":{"id":666}}},{"update_id":7,"message":{"text":" /export AAPL 01/03/2024 ","chat":{"id":42}}}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
	}))
	defer srv.Close()

	var got string
	handled := 0
	done := make(chan struct{})
	go func() {
		NewTelegramNotifier(srv.URL, "t", "42", "").StartPolling(ctx, func(cmd string) string {
			handled++
			got = cmd
			return "exported"
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop after cancel")
	}
	if handled != 1 {
		t.Errorf("only the configured chat should be handled, got %d commands", handled)
	}
	if got != "/export AAPL 01/03/2024" {
		t.Errorf("expected trimmed command, got %q", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(replies) != 1 || replies[0] != "exported" {
		t.Errorf("expected one reply, got %v", replies)
	}
}

func TestFormatRunSummary(t *testing.T) {
	req, _ := model.NewRequest("AAPL", "01/03/2024")
	outcomes := []model.Outcome{
		{Interval: model.OneMinute, Bars: model.Series{{Time: 1}, {Time: 2}}, Status: model.StatusOK},
		{Interval: model.Daily, Bars: model.Series{}, Status: model.StatusEmpty},
		{Interval: model.Weekly, Bars: model.Series{}, Status: model.StatusFailed, Err: errors.New("bad <symbol>")},
	}
	msg := FormatRunSummary(req, "out/AAPL_01-03-2024", outcomes, 1500*time.Millisecond)

	for _, want := range []string{
		"<b>AAPL</b> since 2024-03-01",
		"1min: 2 bars",
		"daily: no data",
		"weekly: bad &lt;symbol&gt;",
		"1 ok, 1 empty, 1 failed in 1.5s",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("summary missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatRunSummary_SeriesStats(t *testing.T) {
	req, _ := model.NewRequest("AAPL", "01/03/2024")
	bars := model.Series{
		{Time: 1, Open: 100, High: 105, Low: 95, Close: 104},
		{Time: 2, Open: 104, High: 112, Low: 102, Close: 110},
	}
	msg := FormatRunSummary(req, "AAPL_01-03-2024", []model.Outcome{
		{Interval: model.Daily, Bars: bars, Status: model.StatusOK},
	}, time.Second)
	want := "daily: 2 bars, 95.00–112.00 (+10.00%), close at 88% of range"
	if !strings.Contains(msg, want) {
		t.Errorf("expected %q in:\n%s", want, msg)
	}
}
