// Package cmd implements the CLI commands for SmartURL using Cobra.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/smarturl/core/fetch"
	"github.com/gaurav-prasanna/smarturl/core/service"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "smarturl",
	Short: "SmartURL: save web pages as keyword-named Internet Shortcuts",
	Long: `SmartURL analyzes a web page, picks its most characteristic keywords and
saves a Windows Internet Shortcut (.url) named after them.

Usage:
  smarturl analyze <url>
  smarturl save <url> [--name N] [--format url|json|yaml|markdown|pdf] [--all]
  smarturl link <url> [--text T]
  smarturl settings list|get|set|reset
  smarturl history`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() {
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./config.yaml or <user config dir>/smarturl/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.String("store", "", "settings database (default <user config dir>/smarturl/smarturl.db)")
	pf.String("download-dir", "", "folder shortcuts are saved to (default: current directory)")

	_ = viper.BindPFlag("store.path", pf.Lookup("store"))
	_ = viper.BindPFlag("download.dir", pf.Lookup("download-dir"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("scan.timeout", service.DefaultScanTimeout)
	viper.SetDefault("fetch.timeout", fetch.DefaultTimeout)
	viper.SetDefault("fetch.user_agent", fetch.DefaultUserAgent)
}

// initConfig reads the config file and SMARTURL_* environment variables.
// A missing default config file is fine; a missing --config file is not.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "smarturl"))
		}
	}

	viper.SetEnvPrefix("SMARTURL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	setupLogging()
	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug().Str("file", used).Msg("loaded config")
	}
	return nil
}

func setupLogging() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	level, err := zerolog.ParseLevel(viper.GetString("log.level"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}
