package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/endorses/cdcat/cmd/parse"
	"github.com/endorses/cdcat/cmd/towers"
	"github.com/endorses/cdcat/internal/pkg/logger"
	"github.com/endorses/cdcat/internal/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	logFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:     "cdcat",
	Short:   "cdcat reads CDC dumps for you",
	Long:    `cdcat parses lawful-intercept CDC dump files, correlates the records into call and message timelines, and resolves cell identifiers against tower tables.`,
	Version: version.Full(),
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func addSubCommandPalattes() {
	rootCmd.AddCommand(parse.ParseCmd)
	rootCmd.AddCommand(towers.TowersCmd)
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	addSubCommandPalattes()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cdcat.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to a rotating file instead of stderr")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".cdcat")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func initLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if logFile == "" {
		logFile = viper.GetString("cdc.log_file")
	}
	logger.InitializeWithOptions(logger.Options{Level: level, File: logFile})
}
