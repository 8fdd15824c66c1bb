package main

import (
	_ "embed"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vidyasetu/scholar-cli/internal/model"
)

//go:embed data/scholarships.yaml
var defaultDataset []byte

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a scholarship dataset into the store",
	Long: `Loads scholarships from a YAML dataset into the configured store.
Without --file the embedded starter dataset is used. Records with unknown
scholarship types are counted and skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		data := defaultDataset
		if seedFile != "" {
			var err error
			data, err = os.ReadFile(seedFile)
			if err != nil {
				return eris.Wrapf(err, "read dataset %s", seedFile)
			}
		}

		var docs []model.ScholarshipDoc
		if err := yaml.Unmarshal(data, &docs); err != nil {
			return eris.Wrap(err, "parse dataset")
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		seeded, skipped := 0, 0
		for _, doc := range docs {
			sch, ok := doc.Canonical()
			if !ok {
				skipped++
				continue
			}
			if err := env.Store.UpsertScholarship(ctx, sch); err != nil {
				return err
			}
			seeded++
		}

		zap.L().Info("seed complete",
			zap.Int("seeded", seeded),
			zap.Int("skipped", skipped),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "YAML dataset path (default: embedded dataset)")
	rootCmd.AddCommand(seedCmd)
}
