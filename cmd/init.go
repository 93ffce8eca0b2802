package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/semio-community/semio-community.github.io-sub001/internal/config"
	"github.com/semio-community/semio-community.github.io-sub001/internal/schema"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:         "init",
	Short:       "Writes a starter sitehub.yaml",
	Annotations: map[string]string{annotationNoConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if siteFlag == "" {
			return fmt.Errorf("--site is required")
		}
		if err := schema.CheckSite(siteFlag); err != nil {
			return err
		}
		path := defaultConfigName + ".yaml"
		if cfgFile != "" {
			path = cfgFile
		}
		if err := config.WriteTemplate(path, siteFlag, initForce); err != nil {
			return err
		}
		log.Info().Str("path", path).Str("site", siteFlag).Msg("wrote config")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}
