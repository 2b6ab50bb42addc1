package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mudithakuruppu/employeemanagement-ui/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configDir string
)

var rootCmd = &cobra.Command{
	Use:           "empdir",
	Short:         "Employee Directory",
	Long:          `List, add, edit and delete employees, and build department reports, against the employee REST API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// reportedError marks errors the user has already been shown, as a
// notification or as field messages.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var shown reportedError
		if !errors.As(err, &shown) {
			if appErr, ok := internal.IsAppError(err); ok {
				fmt.Fprintln(os.Stderr, appErr.GetDetailedMessage())
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	if os.Getenv("APP_ENV") == "production" {
		// Load configuration from environment variables only
		cfg := internal.LoadConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("EMPDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_env", "development")
	v.SetDefault("api.base_url", internal.DefaultAPIBaseURL)
	v.SetDefault("api.timeout", internal.DefaultAPITimeout)
	v.SetDefault("session.path", internal.DefaultSessionPath())
	v.SetDefault("session.key", internal.DefaultSessionKey)
	v.SetDefault("observability.logging.level", "warn")
	v.SetDefault("observability.logging.format", "text")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = internal.DefaultAPITimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}
	return &cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "directory containing config.yml")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
