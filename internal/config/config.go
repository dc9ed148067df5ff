package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Gateway GatewayConfig `yaml:"gateway"`
	Auth    AuthConfig    `yaml:"auth"`
	Store   StoreConfig   `yaml:"store"`
	Format  FormatConfig  `yaml:"format"`
	Admin   AdminConfig   `yaml:"admin"`
}

// GatewayConfig contains AI gateway connection settings
type GatewayConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

// AuthConfig contains the persisted session of the signed-in principal
type AuthConfig struct {
	Email        string `yaml:"email"`
	UID          string `yaml:"uid"`
	DisplayName  string `yaml:"display_name"`
	SessionToken string `yaml:"session_token"`
}

// StoreConfig contains local history store settings
type StoreConfig struct {
	Path string `yaml:"path"`
}

// FormatConfig contains output formatting settings
type FormatConfig struct {
	Default    string `yaml:"default"`
	Colors     bool   `yaml:"colors"`
	Timestamps bool   `yaml:"timestamps"`
}

// AdminConfig contains the elevated-access allow-list. This is a UI
// affordance only; the gateway enforces real authorization.
type AdminConfig struct {
	Emails []string `yaml:"emails"`
}

var (
	globalConfig *Config
	debug        bool
	outputFormat string
)

// Initialize loads the configuration from file
func Initialize(configFile string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get home directory: %w", err)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lumen-cli")
	}

	// Set defaults
	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create default config
			if err := createDefaultConfig(); err != nil {
				return fmt.Errorf("could not create default config: %w", err)
			}
		} else {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}

	// Unmarshal config
	globalConfig = &Config{}
	if err := viper.Unmarshal(globalConfig); err != nil {
		return fmt.Errorf("could not unmarshal config: %w", err)
	}

	// Workaround: manually sync session fields from viper
	globalConfig.Auth.Email = viper.GetString("auth.email")
	globalConfig.Auth.UID = viper.GetString("auth.uid")
	globalConfig.Auth.DisplayName = viper.GetString("auth.display_name")
	globalConfig.Auth.SessionToken = viper.GetString("auth.session_token")

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("gateway.url", "http://localhost:8080/api/ai")
	viper.SetDefault("gateway.timeout", "60s")
	viper.SetDefault("auth.email", "")
	viper.SetDefault("auth.uid", "")
	viper.SetDefault("auth.display_name", "")
	viper.SetDefault("auth.session_token", "")
	viper.SetDefault("store.path", "")
	viper.SetDefault("format.default", "table")
	viper.SetDefault("format.colors", true)
	viper.SetDefault("format.timestamps", true)
	viper.SetDefault("admin.emails", []string{})
}

// createDefaultConfig creates a default configuration file
func createDefaultConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(home, ".lumen-cli.yaml")

	defaultConfig := Config{
		Gateway: GatewayConfig{
			URL:     "http://localhost:8080/api/ai",
			Timeout: "60s",
		},
		Auth:  AuthConfig{},
		Store: StoreConfig{},
		Format: FormatConfig{
			Default:    "table",
			Colors:     true,
			Timestamps: true,
		},
		Admin: AdminConfig{Emails: []string{}},
	}

	data, err := yaml.Marshal(defaultConfig)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		globalConfig = &Config{}
	}
	return globalConfig
}

// Save saves the current configuration to file
func Save() error {
	if globalConfig == nil {
		return fmt.Errorf("no configuration to save")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(home, ".lumen-cli.yaml")

	data, err := yaml.Marshal(globalConfig)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// SetDebug sets the debug mode
func SetDebug(enabled bool) {
	debug = enabled
}

// IsDebug returns whether debug mode is enabled
func IsDebug() bool {
	return debug
}

// SetOutputFormat sets the output format
func SetOutputFormat(format string) {
	outputFormat = format
}

// GetOutputFormat returns the current output format
func GetOutputFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if globalConfig != nil && globalConfig.Format.Default != "" {
		return globalConfig.Format.Default
	}
	return "table"
}

// StorePath resolves the local history database path, defaulting to
// $HOME/.lumen-cli.db when unset.
func StorePath() (string, error) {
	cfg := Get()
	if cfg.Store.Path != "" {
		return cfg.Store.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lumen-cli.db"), nil
}

// GatewayTimeout parses the configured gateway timeout, falling back to
// 60s on bad input.
func GatewayTimeout() time.Duration {
	cfg := Get()
	d, err := time.ParseDuration(cfg.Gateway.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// UpdateAuth persists the signed-in session
func UpdateAuth(email, uid, displayName, sessionToken string) error {
	if globalConfig == nil {
		return fmt.Errorf("configuration not initialized")
	}

	// Update both viper and globalConfig
	viper.Set("auth.email", email)
	viper.Set("auth.uid", uid)
	viper.Set("auth.display_name", displayName)
	viper.Set("auth.session_token", sessionToken)

	globalConfig.Auth.Email = email
	globalConfig.Auth.UID = uid
	globalConfig.Auth.DisplayName = displayName
	globalConfig.Auth.SessionToken = sessionToken

	// Save using viper to ensure consistency
	return viper.WriteConfig()
}

// ClearAuth clears the persisted session
func ClearAuth() error {
	if globalConfig == nil {
		return fmt.Errorf("configuration not initialized")
	}

	viper.Set("auth.email", "")
	viper.Set("auth.uid", "")
	viper.Set("auth.display_name", "")
	viper.Set("auth.session_token", "")

	globalConfig.Auth = AuthConfig{}

	return viper.WriteConfig()
}
