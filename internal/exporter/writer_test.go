package exporter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"TradeFolder/internal/model"
)

func outcomes(bars map[string]model.Series) []model.Outcome {
	var out []model.Outcome
	for _, iv := range model.DefaultIntervals() {
		b, ok := bars[iv.Name]
		st := model.StatusOK
		if !ok {
			b = model.Series{}
			st = model.StatusEmpty
		}
		out = append(out, model.Outcome{Interval: iv, Bars: b, Status: st})
	}
	return out
}

func TestDirName(t *testing.T) {
	tests := []struct {
		ticker, date, want string
	}{
		{"AAPL", "01/03/2024", "AAPL_01-03-2024"},
		{"MSFT", "1/3/2024", "MSFT_1-3-2024"},
		{"^GSPC", "15/12/2023", "^GSPC_15-12-2023"},
	}
	for _, tt := range tests {
		if got := DirName(tt.ticker, tt.date); got != tt.want {
			t.Errorf("DirName(%q, %q): expected %q, got %q", tt.ticker, tt.date, tt.want, got)
		}
	}
}

func TestWrite_Layout(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base, "")
	daily := model.Series{
		{Time: 1709251200, Open: 179.55, High: 180.53, Low: 177.38, Close: 179.66},
		{Time: 1709510400, Open: 176.15, High: 176.9, Low: 173.79, Close: 175.1},
	}
	arts, err := w.Write("AAPL", "01/03/2024", outcomes(map[string]model.Series{"daily": daily}))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(arts) != 5 {
		t.Fatalf("expected 5 artifact pairs, got %d", len(arts))
	}

	root := filepath.Join(base, "AAPL_01-03-2024")
	for _, name := range []string{"1min", "5min", "15min", "daily", "weekly"} {
		if _, err := os.Stat(filepath.Join(root, name+".html")); err != nil {
			t.Errorf("missing viewer %s: %v", name, err)
		}
		if _, err := os.Stat(filepath.Join(root, "data", name+".json")); err != nil {
			t.Errorf("missing data %s: %v", name, err)
		}
	}
	entries, err := os.ReadDir(filepath.Join(root, "data"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 {
		t.Errorf("expected exactly 5 data files, got %d", len(entries))
	}
}

func TestWrite_EmptySeriesIsExactlyBrackets(t *testing.T) {
	base := t.TempDir()
	outs := outcomes(nil)
	outs[4].Bars = nil // a nil series must still be written as []
	if _, err := NewWriter(base, "").Write("AAPL", "01/03/2024", outs); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"1min", "weekly"} {
		data, err := os.ReadFile(filepath.Join(base, "AAPL_01-03-2024", "data", name+".json"))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "[]" {
			t.Errorf("%s: expected [], got %q", name, data)
		}
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	base := t.TempDir()
	in := model.Series{
		{Time: 1709301600, Open: 180.1, High: 181.0049999, Low: 179.5, Close: 180.7},
		{Time: 1709301660, Open: 180.3, High: 181.2, Low: 179.9, Close: 0.000123456789},
		{Time: 1709301660, Open: 1e6, High: 1e6, Low: 1e6, Close: 1e6},
	}
	arts, err := NewWriter(base, "").Write("AAPL", "01/03/2024", outcomes(map[string]model.Series{"1min": in}))
	if err != nil {
		t.Fatal(err)
	}
	out, err := ReadSeries(arts[0].DataPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d bars, got %d", len(in), len(out))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("bar %d: expected %+v, got %+v", i, in[i], out[i])
		}
	}
	if !out.IsChronological() {
		t.Error("written series must be chronological")
	}

	raw, _ := os.ReadFile(arts[0].DataPath)
	first := string(raw)
	order := []string{`"time"`, `"open"`, `"high"`, `"low"`, `"close"`}
	last := -1
	for _, k := range order {
		idx := strings.Index(first, k)
		if idx <= last {
			t.Fatalf("key %s out of order in %s", k, first)
		}
		last = idx
	}
	if !strings.Contains(first, "\n    {\n        \"time\": 1709301600,") {
		t.Errorf("expected 4-space indentation, got:\n%s", first)
	}
}

func TestWrite_ViewerReferencesData(t *testing.T) {
	base := t.TempDir()
	if _, err := NewWriter(base, "").Write("AAPL", "01/03/2024", outcomes(nil)); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"1min", "5min", "15min", "daily", "weekly"} {
		data, err := os.ReadFile(filepath.Join(base, "AAPL_01-03-2024", name+".html"))
		if err != nil {
			t.Fatal(err)
		}
		page := string(data)
		if !strings.Contains(page, `data-src="./data/`+name+`.json"`) {
			t.Errorf("%s viewer does not reference ./data/%s.json", name, name)
		}
		if !strings.Contains(page, "<title>"+name+" Chart - AAPL</title>") {
			t.Errorf("%s viewer has wrong title", name)
		}
	}
}

func TestWrite_IdempotentAndOverwrites(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base, "")
	first := model.Series{{Time: 1, Open: 1, High: 1, Low: 1, Close: 1}, {Time: 2, Open: 2, High: 2, Low: 2, Close: 2}}
	if _, err := w.Write("AAPL", "01/03/2024", outcomes(map[string]model.Series{"daily": first})); err != nil {
		t.Fatal(err)
	}
	arts, err := w.Write("AAPL", "01/03/2024", outcomes(nil))
	if err != nil {
		t.Fatalf("second run over existing folder: %v", err)
	}
	got, err := ReadSeries(arts[3].DataPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("re-run should overwrite daily data, still has %d bars", len(got))
	}
}

func TestWrite_FilesystemFault(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "AAPL_01-03-2024")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := NewWriter(base, "").Write("AAPL", "01/03/2024", outcomes(nil))
	if err == nil {
		t.Fatal("expected error when the trade folder path is a file")
	}
	var pathErr *os.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("expected wrapped *os.PathError, got %T: %v", err, err)
	}
}

func TestWrite_RejectsTickerOutsideBase(t *testing.T) {
	parent := t.TempDir()
	base := filepath.Join(parent, "out")
	w := NewWriter(base, "")

	for _, ticker := range []string{"../../ESCAPED/X", `..\X`, "A/B"} {
		_, err := w.Write(ticker, "01/03/2024", outcomes(nil))
		if !errors.Is(err, ErrUnsafeName) {
			t.Errorf("%q: expected ErrUnsafeName, got %v", ticker, err)
		}
	}
	entries, err := os.ReadDir(parent)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("nothing should be created, found %d entries", len(entries))
	}
}
