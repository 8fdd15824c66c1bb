package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/vidyasetu/scholar-cli/internal/match"
	"github.com/vidyasetu/scholar-cli/internal/stacking"
)

var stackingUser string

var stackingCmd = &cobra.Command{
	Use:   "stacking",
	Short: "Build an optimal scholarship stacking plan for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if stackingUser == "" {
			return eris.New("--user is required")
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		profile, err := loadProfile(ctx, env.Store, stackingUser)
		if err != nil {
			return err
		}
		scholarships, err := env.Store.ListScholarships(ctx)
		if err != nil {
			return err
		}

		eligible := match.FilterEligible(scholarships, profile)
		plan := stacking.NewOptimizer(nil, cfg.Stacking).Optimize(eligible, profile)
		plan.Recommendations = env.Advisor.StackingRecommendations(ctx, *profile, plan)

		out, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return eris.Wrap(err, "encode plan")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	stackingCmd.Flags().StringVar(&stackingUser, "user", "", "user ID to plan for")
	rootCmd.AddCommand(stackingCmd)
}
