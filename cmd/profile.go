package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vidyasetu/scholar-cli/internal/model"
)

var profileDoc model.ProfileDoc

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage applicant profiles",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update an applicant profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if profileDoc.UserID == "" {
			return eris.New("--user is required")
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Store.PutProfile(ctx, profileDoc); err != nil {
			return err
		}
		p := profileDoc.Canonical()
		zap.L().Info("profile saved",
			zap.String("user", p.UserID),
			zap.Int("completeness", p.Completeness()),
		)
		return nil
	},
}

var profileShowUser string

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print an applicant profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if profileShowUser == "" {
			return eris.New("--user is required")
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		p, err := loadProfile(ctx, env.Store, profileShowUser)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return eris.Wrap(err, "encode profile")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	f := profileSetCmd.Flags()
	f.StringVar(&profileDoc.UserID, "user", "", "user ID")
	f.StringVar(&profileDoc.Category, "category", "", "reservation category (SC, ST, OBC, General, Minority)")
	f.Int64Var(&profileDoc.Income, "income", 0, "annual family income in rupees")
	f.Float64Var(&profileDoc.Percentage, "percentage", 0, "academic percentage")
	f.StringVar(&profileDoc.State, "state", "", "home state")
	f.StringVar(&profileDoc.Gender, "gender", "", "gender")
	f.StringVar(&profileDoc.Level, "level", "", "study level (ug, pg)")
	f.StringVar(&profileDoc.Course, "course", "", "course of study")
	f.StringVar(&profileDoc.Institution, "institution", "", "institution name")

	profileShowCmd.Flags().StringVar(&profileShowUser, "user", "", "user ID")

	profileCmd.AddCommand(profileSetCmd, profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}
