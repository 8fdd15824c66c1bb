package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/vidyasetu/scholar-cli/internal/insight"
)

var intelligenceCmd = &cobra.Command{
	Use:   "intelligence",
	Short: "Generate market intelligence over the scholarship corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		scholarships, err := env.Store.ListScholarships(ctx)
		if err != nil {
			return err
		}

		market := insight.BuildMarket(scholarships, time.Now())
		env.Advisor.EnrichMarket(ctx, &market)

		out, err := json.MarshalIndent(market, "", "  ")
		if err != nil {
			return eris.Wrap(err, "encode market")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(intelligenceCmd)
}
