package cli

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"TradeFolder/internal/scheduler"
)

func (a *App) scheduleCommand() *cobra.Command {
	var spec string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Export now, then refresh the same trade folder on a cron schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.configPath)
			if err != nil {
				return err
			}
			if spec == "" {
				spec = cfg.Schedule.RefreshCron
			}
			req, err := a.request(cmd)
			if err != nil {
				return err
			}
			c, err := a.build(cfg, a.outDir)
			if err != nil {
				return err
			}
			defer c.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched := scheduler.NewScheduler(ctx, c.runner)
			if err := sched.Register(spec, req); err != nil {
				return err
			}
			if _, err := sched.RunNow(req); err != nil {
				return err
			}
			sched.Start()

			var polling sync.WaitGroup
			if c.telegram != nil {
				polling.Add(1)
				go func() {
					defer polling.Done()
					c.telegram.StartPolling(ctx, sched.HandleCommand)
				}()
				log.Println("[INFO] Telegram polling started")
			}

			log.Println("[INFO] TradeFolder is running. Press Ctrl+C to stop.")
			<-ctx.Done()
			log.Println("[INFO] shutdown signal received, stopping...")
			polling.Wait()
			sched.Stop()
			return nil
		},
	}
	cmd.Flags().StringVar(&spec, "cron", "", "six-field cron spec with seconds (default from config)")
	return cmd
}
