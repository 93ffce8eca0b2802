package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/semio-community/semio-community.github.io-sub001/internal/cms"
	"github.com/semio-community/semio-community.github.io-sub001/internal/schema"
)

var (
	cmsOutput string
	cmsStdout bool
)

var cmsCmd = &cobra.Command{
	Use:   "cms",
	Short: "Generates the Decap CMS config.yml from the content schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := schema.Default().Select(appConfig.Collections)
		if err != nil {
			return err
		}
		data, err := cms.Generate(registry, schema.Sites(), cms.Options{
			Backend:      appConfig.CMS.Backend,
			Repo:         appConfig.CMS.Repo,
			Branch:       appConfig.CMS.Branch,
			MediaFolder:  appConfig.CMS.MediaFolder,
			PublicFolder: appConfig.CMS.PublicFolder,
			SiteURL:      appConfig.CMS.SiteURL,
			LocalBackend: appConfig.CMS.LocalBackend,
			ContentDir:   appConfig.ContentDir,
		})
		if err != nil {
			return err
		}
		if cmsStdout {
			_, err := os.Stdout.Write(data)
			return err
		}

		out := appConfig.CMS.Output
		if cmsOutput != "" {
			out = cmsOutput
		}
		if err := cms.Write(out, data); err != nil {
			return err
		}
		log.Info().Str("path", out).Int("collections", len(registry)).Msg("wrote decap config")
		return nil
	},
}

func init() {
	cmsCmd.Flags().StringVarP(&cmsOutput, "output", "o", "", "output path (default from config cms.output)")
	cmsCmd.Flags().BoolVar(&cmsStdout, "stdout", false, "print the config instead of writing it")
	rootCmd.AddCommand(cmsCmd)
}
