package cli

import (
	"fmt"
	"log"

	"TradeFolder/internal/collector"
	"TradeFolder/internal/config"
	"TradeFolder/internal/exporter"
	"TradeFolder/internal/notifier"
	"TradeFolder/internal/recorder"
	"TradeFolder/internal/runner"
)

// components holds everything a command needs; close releases the ledger.
type components struct {
	collector *collector.Collector
	runner    *runner.Runner
	recorder  recorder.Recorder
	telegram  *notifier.TelegramNotifier // nil when not configured
}

func (c *components) close() {
	if err := c.recorder.Close(); err != nil {
		log.Printf("[WARN] close recorder: %v", err)
	}
}

func newProvider(cfg *config.Config) collector.Provider {
	ds := cfg.DataSource
	if ds.Provider == "rest" {
		return collector.NewRESTProvider(ds.BaseURL, ds.APIKey, cfg.Proxy, ds.RequestTimeout)
	}
	return collector.NewYahooProvider(ds.BaseURL, cfg.Proxy, ds.RequestTimeout)
}

func (a *App) build(cfg *config.Config, outDir string) (*components, error) {
	intervals, err := cfg.SelectedIntervals()
	if err != nil {
		return nil, err
	}

	provider := a.Provider
	if provider == nil {
		provider = newProvider(cfg)
	}
	log.Printf("[INFO] data source: %s", provider.Name())
	col := collector.NewCollector(provider, intervals, cfg.DataSource.PriceDecimals)

	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	w := exporter.NewWriter(outDir, cfg.Output.ScriptURL)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	c := &components{collector: col, recorder: rec}
	var n notifier.Notifier = notifier.NoopNotifier{}
	if cfg.Telegram.BotToken != "" {
		c.telegram = notifier.NewTelegramNotifier(cfg.Telegram.BaseURL, cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = c.telegram
	}
	c.runner = runner.New(col, w, rec, n)
	return c, nil
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}
