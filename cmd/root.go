package cmd

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sChintamani/reflectcfg/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "reflectcfg",
	Short:        "Generate GraalVM reflection configuration from annotated Java sources",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default .reflectcfg.yaml in the working directory)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log as JSON")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".reflectcfg")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("REFLECTCFG")
	viper.AutomaticEnv()

	// a missing config file is fine, flags and defaults cover everything
	_ = viper.ReadInConfig()
}

func newLogger() *charmlog.Logger {
	return logging.New(logging.Config{
		Level: viper.GetString("log.level"),
		JSON:  viper.GetBool("log.json"),
	})
}
