package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appConfig "github.com/lumenlabs/lumen-cli/internal/config"
	"github.com/lumenlabs/lumen-cli/internal/format"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change CLI configuration",
	Long: `Show or change settings in the config file
(default $HOME/.lumen-cli.yaml).

Keys use dotted paths, e.g. 'gateway.url' or 'format.default'.`,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runShow,
}

// getCmd represents the config get command
var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

// setCmd represents the config set command
var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runSet,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := appConfig.Get()

	storePath, err := appConfig.StorePath()
	if err != nil {
		return err
	}

	fmt.Printf("gateway.url:     %s\n", cfg.Gateway.URL)
	fmt.Printf("gateway.timeout: %s\n", cfg.Gateway.Timeout)
	fmt.Printf("store.path:      %s\n", storePath)
	fmt.Printf("format.default:  %s\n", cfg.Format.Default)
	if cfg.Auth.UID != "" {
		fmt.Printf("auth.email:      %s\n", cfg.Auth.Email)
		fmt.Printf("auth.uid:        %s\n", cfg.Auth.UID)
	} else {
		fmt.Println("auth:            not logged in")
	}
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !viper.IsSet(key) {
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	fmt.Println(viper.GetString(key))
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	// Session fields are managed by 'lumen auth', not by hand.
	if key == "auth.session_token" || key == "auth.uid" {
		return fmt.Errorf("%s is managed by 'lumen auth login'", key)
	}
	if !viper.IsSet(key) {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	viper.Set(key, value)
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("could not save configuration: %w", err)
	}

	format.PrintSuccess("✓ %s = %s", key, value)
	return nil
}

func init() {
	ConfigCmd.AddCommand(showCmd)
	ConfigCmd.AddCommand(getCmd)
	ConfigCmd.AddCommand(setCmd)
}
