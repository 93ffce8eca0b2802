package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/semio-community/semio-community.github.io-sub001/internal/hubsync"
)

var (
	dryRun  bool
	noPrune bool
	pushAll bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronizes shared content between this site and the content hub",
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Copies hub entries published to this site and prunes withdrawn ones",
	Long: `pull writes every hub entry whose "sites" list contains this site into the
local collections, exactly as the hub has it. Local entries carrying a "sites"
key that the hub no longer publishes to this site are removed. Entries without
a "sites" key are site-local and left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPull(cmd.Context())
	},
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Merges this site's shared entries into the content hub",
	Long: `push merges every local entry carrying a "sites" key into the hub. Fields
and body come from the site; "sites" and "overrides" are unioned with what the
hub already has. With --all every sibling site listed in the config is merged,
in canonical site order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		roots := map[string]string{appConfig.Site: appConfig.SiteContentRoot()}
		if pushAll {
			roots = appConfig.SiteRoots()
		}
		report, err := hubsync.Push(cmd.Context(), appConfig.HubContentRoot(), roots, syncOptions())
		if err != nil {
			return err
		}
		log.Info().Str("hub", appConfig.Hub).Bool("dry_run", dryRun).Msg("push complete: " + report.String())
		return nil
	},
}

func runPull(ctx context.Context) error {
	report, err := hubsync.Pull(ctx, appConfig.HubContentRoot(), appConfig.SiteContentRoot(), appConfig.Site, syncOptions())
	if err != nil {
		return err
	}
	log.Info().Str("site", appConfig.Site).Bool("dry_run", dryRun).Msg("pull complete: " + report.String())
	return nil
}

func syncOptions() hubsync.Options {
	return hubsync.Options{
		Collections: appConfig.Collections,
		NoPrune:     noPrune,
		DryRun:      dryRun,
	}
}

func init() {
	syncCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "report planned changes without writing")
	pullCmd.Flags().BoolVar(&noPrune, "no-prune", false, "keep local copies the hub no longer publishes")
	pushCmd.Flags().BoolVar(&pushAll, "all", false, "push every sibling site listed in the config")
	syncCmd.AddCommand(pullCmd, pushCmd)
	rootCmd.AddCommand(syncCmd)
}
