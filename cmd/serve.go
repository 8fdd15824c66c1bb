package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vidyasetu/scholar-cli/internal/reminder"
	"github.com/vidyasetu/scholar-cli/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scholarship API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		sweeper := reminder.NewSweeper(env.Store, nil, cfg.Reminder)
		sched := reminder.NewScheduler(sweeper)
		if err := sched.Start(ctx, cfg.Reminder.Schedule); err != nil {
			return err
		}
		defer sched.Stop()
		zap.L().Info("reminder sweep scheduled", zap.String("spec", cfg.Reminder.Schedule))

		return server.New(env.Store, env.Advisor, cfg).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
