/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "boomer",
	Short: "Boomerverse web services",
	Long: `boomer runs the Boomerverse web services.

  radio     Boomer FM station page with now playing, up next and top tracks
  lore      Boomerverse lore site, tagged image search and Telegram webhook
  roulette  Content Bob image roulette and data URL converter

Each service runs with 'boomer serve <service>'. Secrets are read from the
environment or a .env file in the working directory.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
