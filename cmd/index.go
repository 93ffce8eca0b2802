package cmd

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/semio-community/semio-community.github.io-sub001/internal/content"
	"github.com/semio-community/semio-community.github.io-sub001/internal/index"
	"github.com/semio-community/semio-community.github.io-sub001/internal/schema"
)

var indexOutput string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Exports this site's published content as JSON data",
	Long: `index reads the local collections, keeps the published entries visible to
this site, applies the site's overrides, renders Markdown bodies to HTML and
writes one JSON file per collection plus site.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := schema.Default().Select(appConfig.Collections)
		if err != nil {
			return err
		}
		cols, err := content.LoadAll(cmd.Context(), appConfig.SiteContentRoot(), registry.Names())
		if err != nil {
			return err
		}
		data, err := index.NewBuilder(appConfig.Site, registry).Build(cols, time.Now())
		if err != nil {
			return err
		}

		out := appConfig.Index.Output
		if indexOutput != "" {
			out = indexOutput
		}
		if err := index.Write(out, data); err != nil {
			return err
		}
		log.Info().Str("path", out).Interface("counts", data.Counts).Msg("wrote content index")
		return nil
	},
}

func init() {
	indexCmd.Flags().StringVarP(&indexOutput, "output", "o", "", "output directory (default from config index.output)")
	rootCmd.AddCommand(indexCmd)
}
