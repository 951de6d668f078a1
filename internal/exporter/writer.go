package exporter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"TradeFolder/internal/model"
)

const (
	dataDir  = "data"
	dirPerm  = 0755
	filePerm = 0644
)

// ErrUnsafeName is returned when a ticker would place the trade folder outside BaseDir.
var ErrUnsafeName = errors.New("ticker must not contain path separators")

// Artifacts lists the files written for one interval.
type Artifacts struct {
	Interval   model.Interval
	DataPath   string
	ViewerPath string
	Bars       int
}

// Writer lays out a trade folder under BaseDir.
type Writer struct {
	BaseDir   string
	ScriptURL string // charting library loaded by the viewer pages
}

// NewWriter creates a Writer rooted at baseDir.
func NewWriter(baseDir, scriptURL string) *Writer {
	if baseDir == "" {
		baseDir = "."
	}
	if scriptURL == "" {
		scriptURL = DefaultScriptURL
	}
	return &Writer{BaseDir: baseDir, ScriptURL: scriptURL}
}

// DirName returns the trade folder name, e.g. AAPL_01-03-2024.
func DirName(ticker, dateLabel string) string {
	return fmt.Sprintf("%s_%s", ticker, strings.ReplaceAll(dateLabel, "/", "-"))
}

// Root returns the trade folder path for a ticker and date label.
func (w *Writer) Root(ticker, dateLabel string) string {
	return filepath.Join(w.BaseDir, DirName(ticker, dateLabel))
}

// safeRoot returns Root when it is a direct child of BaseDir.
func (w *Writer) safeRoot(ticker, dateLabel string) (string, error) {
	name := DirName(ticker, dateLabel)
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeName, ticker)
	}
	root := w.Root(ticker, dateLabel)
	rel, err := filepath.Rel(filepath.Clean(w.BaseDir), root)
	if err != nil || rel != name {
		return "", fmt.Errorf("%w: %q", ErrUnsafeName, ticker)
	}
	return root, nil
}

// Write creates the folder tree and writes one JSON data file and one viewer
// page per outcome, in outcome order. Existing files are overwritten. The first
// filesystem fault is returned; files written before it are left in place.
func (w *Writer) Write(ticker, dateLabel string, outcomes []model.Outcome) ([]Artifacts, error) {
	root, err := w.safeRoot(ticker, dateLabel)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(root, dataDir), dirPerm); err != nil {
		return nil, fmt.Errorf("create trade folder: %w", err)
	}

	written := make([]Artifacts, 0, len(outcomes))
	for _, o := range outcomes {
		a := Artifacts{
			Interval:   o.Interval,
			DataPath:   filepath.Join(root, dataDir, o.Interval.Name+".json"),
			ViewerPath: filepath.Join(root, o.Interval.Name+".html"),
			Bars:       len(o.Bars),
		}
		if err := w.writeViewer(a.ViewerPath, ticker, o.Interval.Name); err != nil {
			return written, fmt.Errorf("write %s viewer: %w", o.Interval.Name, err)
		}
		if err := WriteSeries(a.DataPath, o.Bars); err != nil {
			return written, fmt.Errorf("write %s data: %w", o.Interval.Name, err)
		}
		written = append(written, a)
	}
	return written, nil
}

// WriteSeries writes bars as an indented JSON array. A nil or empty series is written as [].
func WriteSeries(path string, bars model.Series) error {
	if bars == nil {
		bars = model.Series{}
	}
	data, err := json.MarshalIndent(bars, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, filePerm)
}

// ReadSeries parses a data file written by WriteSeries.
func ReadSeries(path string) (model.Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bars model.Series
	if err := json.Unmarshal(data, &bars); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return bars, nil
}
