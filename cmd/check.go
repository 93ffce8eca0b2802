package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/semio-community/semio-community.github.io-sub001/internal/check"
	"github.com/semio-community/semio-community.github.io-sub001/internal/content"
	"github.com/semio-community/semio-community.github.io-sub001/internal/schema"
)

var checkHub bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validates content frontmatter against the content schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		root := appConfig.SiteContentRoot()
		if checkHub {
			root = appConfig.HubContentRoot()
		}
		registry, err := schema.Default().Select(appConfig.Collections)
		if err != nil {
			return err
		}
		cols, err := content.LoadAll(cmd.Context(), root, registry.Names())
		if err != nil {
			return err
		}

		findings := check.Run(cols, registry, schema.Sites())
		for _, f := range findings {
			ev := log.Warn()
			if f.Severity == schema.SeverityError {
				ev = log.Error()
			}
			ev.Str("file", f.Path).Str("field", f.Field).Msg(f.Message)
		}
		errs := check.CountErrors(findings)
		log.Info().Int("errors", errs).Int("warnings", len(findings)-errs).Msg("check complete")
		if errs > 0 {
			return fmt.Errorf("%d content error(s) in %s", errs, root)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkHub, "hub", false, "check the content hub instead of this site")
	rootCmd.AddCommand(checkCmd)
}
