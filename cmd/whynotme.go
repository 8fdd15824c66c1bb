package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/vidyasetu/scholar-cli/internal/match"
)

var whyNotMeUser string

var whyNotMeCmd = &cobra.Command{
	Use:   "whynotme",
	Short: "Explain which scholarships a user almost qualifies for",
	Long: `Finds scholarships where the user meets some but not all eligibility
criteria and explains what is missing and what could close the gap.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if whyNotMeUser == "" {
			return eris.New("--user is required")
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		profile, err := loadProfile(ctx, env.Store, whyNotMeUser)
		if err != nil {
			return err
		}
		scholarships, err := env.Store.ListScholarships(ctx)
		if err != nil {
			return err
		}

		misses, err := match.NearMisses(scholarships, profile, cfg.NearMiss)
		if err != nil {
			return err
		}
		misses = match.Explain(ctx, env.Advisor, *profile, misses)

		if len(misses) == 0 {
			fmt.Println("No near misses found.")
			return nil
		}

		for _, nm := range misses {
			fmt.Printf("%s (%s): %.0f%% match, missing %s\n",
				nm.Scholarship.Name,
				nm.Scholarship.Type,
				nm.MatchPercentage,
				strings.Join(nm.MissedCriteria, ", "),
			)
			for _, line := range nm.Explanation {
				fmt.Printf("  - %s\n", line)
			}
		}
		return nil
	},
}

func init() {
	whyNotMeCmd.Flags().StringVar(&whyNotMeUser, "user", "", "user ID to analyze")
	rootCmd.AddCommand(whyNotMeCmd)
}
