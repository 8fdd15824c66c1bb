package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/vidyasetu/scholar-cli/internal/match"
)

var (
	exportUser   string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ranked matches for a user to XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if exportUser == "" {
			return eris.New("--user is required")
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		profile, err := loadProfile(ctx, env.Store, exportUser)
		if err != nil {
			return err
		}
		scholarships, err := env.Store.ListScholarships(ctx)
		if err != nil {
			return err
		}

		results := match.Rank(scholarships, profile, 0)

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Matches")
		if err != nil {
			return eris.Wrap(err, "add sheet")
		}

		header := sheet.AddRow()
		for _, h := range []string{"Name", "Provider", "Type", "Min Amount", "Max Amount", "Deadline", "Match Score", "Success Probability"} {
			header.AddCell().SetString(h)
		}

		for _, r := range results {
			row := sheet.AddRow()
			row.AddCell().SetString(r.Scholarship.Name)
			row.AddCell().SetString(r.Scholarship.Provider)
			row.AddCell().SetString(string(r.Scholarship.Type))
			row.AddCell().SetInt64(r.Scholarship.Amount.Min)
			row.AddCell().SetInt64(r.Scholarship.Amount.Max)
			if r.Scholarship.Deadline.IsZero() {
				row.AddCell().SetString("")
			} else {
				row.AddCell().SetString(r.Scholarship.Deadline.Format("2006-01-02"))
			}
			row.AddCell().SetInt(r.MatchScore)
			row.AddCell().SetInt(r.SuccessProbability)
		}

		if err := file.Save(exportOutput); err != nil {
			return eris.Wrapf(err, "save %s", exportOutput)
		}

		zap.L().Info("export complete",
			zap.String("user", exportUser),
			zap.String("output", exportOutput),
			zap.Int("rows", len(results)),
		)
		return nil
	},
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportUser, "user", "", "user ID to export matches for")
	f.StringVar(&exportOutput, "output", "matches.xlsx", "output file path")
	rootCmd.AddCommand(exportCmd)
}
