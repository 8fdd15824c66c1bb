package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vidyasetu/scholar-cli/internal/portal"
)

var (
	scrapeNational  bool
	scrapeStates    bool
	scrapeCorporate bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape scholarship portals into the store",
	Long: `Fetches scholarship listings from the configured portals, normalizes
them into canonical records, and upserts them into the store. Portals that
fail are logged and skipped.

Examples:
  # Scrape only the national portals
  scrape --national

  # Scrape everything
  scrape --national --states --corporate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if !scrapeNational && !scrapeStates && !scrapeCorporate {
			scrapeNational = true
			scrapeStates = true
		}

		var portals []portal.Portal
		if scrapeNational {
			portals = append(portals, portal.NationalPortals()...)
		}
		if scrapeStates {
			portals = append(portals, portal.StatePortals()...)
		}
		if scrapeCorporate {
			portals = append(portals, portal.CorporateSources()...)
		}

		fetchCfg := portal.FetchConfig{
			Timeout:           time.Duration(cfg.Portal.TimeoutSecs) * time.Second,
			MaxRetries:        cfg.Portal.MaxRetries,
			RequestsPerSecond: cfg.Portal.RequestsPerSec,
			UserAgents:        cfg.Portal.UserAgents,
		}
		scraper := portal.NewScraper(fetchCfg)

		found := scraper.ScrapeAll(ctx, portals)
		for _, sch := range found {
			if err := env.Store.UpsertScholarship(ctx, sch); err != nil {
				return err
			}
		}

		zap.L().Info("scrape complete",
			zap.Int("portals", len(portals)),
			zap.Int("scholarships", len(found)),
		)
		return nil
	},
}

func init() {
	f := scrapeCmd.Flags()
	f.BoolVar(&scrapeNational, "national", false, "scrape national portals")
	f.BoolVar(&scrapeStates, "states", false, "scrape state portals")
	f.BoolVar(&scrapeCorporate, "corporate", false, "scrape corporate sources")
	rootCmd.AddCommand(scrapeCmd)
}
