package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lumenlabs/lumen-cli/cmd/auth"
	"github.com/lumenlabs/lumen-cli/cmd/chat"
	"github.com/lumenlabs/lumen-cli/cmd/code"
	configcmd "github.com/lumenlabs/lumen-cli/cmd/config"
	"github.com/lumenlabs/lumen-cli/cmd/history"
	"github.com/lumenlabs/lumen-cli/cmd/image"
	"github.com/lumenlabs/lumen-cli/cmd/media"
	"github.com/lumenlabs/lumen-cli/cmd/onboard"
	"github.com/lumenlabs/lumen-cli/cmd/text"
	"github.com/lumenlabs/lumen-cli/cmd/trip"
	appConfig "github.com/lumenlabs/lumen-cli/internal/config"
	"github.com/lumenlabs/lumen-cli/internal/logging"
)

var (
	cfgFile string
	debug   bool
	output  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Lumen CLI - multimodal AI playground client",
	Long: `Lumen CLI drives a remote AI gateway from the command line: text,
image, video and speech generation, image and video analysis, a code
assistant, chat sessions and a trip planner.

Every invocation is recorded in a local history store that can be listed
and replayed. Sign in first with 'lumen auth login' and complete the
onboarding wizard with 'lumen onboard'.`,
	Version: "1.0.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize configuration
		if err := appConfig.Initialize(cfgFile); err != nil {
			return fmt.Errorf("failed to initialize configuration: %w", err)
		}

		if debug {
			appConfig.SetDebug(true)
		}
		if err := logging.Init(debug); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		if output != "" {
			appConfig.SetOutputFormat(output)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lumen-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format (table, json, yaml, text)")

	// Add subcommands
	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(onboard.OnboardCmd)
	rootCmd.AddCommand(text.TextCmd)
	rootCmd.AddCommand(image.ImageCmd)
	rootCmd.AddCommand(code.CodeCmd)
	rootCmd.AddCommand(chat.ChatCmd)
	rootCmd.AddCommand(trip.TripCmd)
	rootCmd.AddCommand(media.MediaCmd)
	rootCmd.AddCommand(history.HistoryCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".lumen-cli" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lumen-cli")
	}

	// Environment variables
	viper.SetEnvPrefix("LUMEN")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && debug {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
