package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/vidyasetu/scholar-cli/internal/match"
)

var (
	matchUser  string
	matchLimit int
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank eligible scholarships for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if matchUser == "" {
			return eris.New("--user is required")
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		profile, err := loadProfile(ctx, env.Store, matchUser)
		if err != nil {
			return err
		}
		scholarships, err := env.Store.ListScholarships(ctx)
		if err != nil {
			return err
		}

		results := match.Rank(scholarships, profile, matchLimit)
		if len(results) == 0 {
			fmt.Println("No eligible scholarships found.")
			return nil
		}

		fmt.Printf("%-45s %-10s %6s %6s  %s\n", "NAME", "TYPE", "SCORE", "PROB", "AMOUNT")
		for _, r := range results {
			fmt.Printf("%-45.45s %-10s %5d%% %5d%%  Rs %d-%d\n",
				r.Scholarship.Name,
				r.Scholarship.Type,
				r.MatchScore,
				r.SuccessProbability,
				r.Scholarship.Amount.Min,
				r.Scholarship.Amount.Max,
			)
		}
		return nil
	},
}

func init() {
	f := matchCmd.Flags()
	f.StringVar(&matchUser, "user", "", "user ID to match against")
	f.IntVar(&matchLimit, "limit", 10, "maximum results")
	rootCmd.AddCommand(matchCmd)
}
