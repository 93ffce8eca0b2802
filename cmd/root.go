package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/semio-community/semio-community.github.io-sub001/internal/config"
	"github.com/semio-community/semio-community.github.io-sub001/internal/logging"
	"github.com/semio-community/semio-community.github.io-sub001/internal/schema"
)

const defaultConfigName = "sitehub"

var (
	cfgFile   string
	siteFlag  string
	logLevel  string
	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sitehub",
	Short: "Content tooling for the Semio, Quori and Vizij sites",
	Long: `sitehub keeps the sibling sites' content collections in step with the shared
content hub, validates frontmatter against the content schema, generates the
Decap CMS configuration and exports the data the page templates read.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// annotationNoConfig marks commands that run without a loaded config.
const annotationNoConfig = "sitehub/no-config"

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle (initializeConfig refers to rootCmd).
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if _, err := logging.Init("sitehub", logLevel); err != nil {
			return err
		}
		if cmd.Annotations[annotationNoConfig] == "true" {
			return nil
		}
		return initializeConfig(cmd)
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sitehub.yaml)")
	rootCmd.PersistentFlags().StringVar(&siteFlag, "site", "", "site key, overrides the config ("+strings.Join(schema.Sites(), ", ")+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

func initializeConfig(_ *cobra.Command) error {
	v := viper.New()

	v.SetDefault("contentDir", "src/content")
	v.SetDefault("hub", "../content-hub")
	v.SetDefault("cms.backend", "github")
	v.SetDefault("cms.branch", "main")
	v.SetDefault("cms.mediaFolder", "public/images/uploads")
	v.SetDefault("cms.publicFolder", "/images/uploads")
	v.SetDefault("cms.output", "public/admin/config.yml")
	v.SetDefault("index.output", "public/data")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SITEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
		log.Debug().Msg("no sitehub.yaml found, using defaults and environment")
	} else {
		log.Debug().Str("path", v.ConfigFileUsed()).Msg("using config file")
	}

	if err := v.BindPFlag("site", rootCmd.PersistentFlags().Lookup("site")); err != nil {
		return err
	}
	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if appConfig.Site == "" {
		return fmt.Errorf("no site configured: set site in sitehub.yaml, SITEHUB_SITE or --site")
	}
	return appConfig.Validate()
}
