package cmd

import (
	"fmt"

	"github.com/fiffeek/displayflip/internal/display"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate the configuration file for syntax errors and logical consistency.
When --display-devices-override is given the device fixture is validated too.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.WithField("config_path", configPath).Debug("Validating configuration")

		if _, err := loadConfig(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}

		if displayDevicesOverride != "" {
			if _, err := display.LoadStaticBackend(displayDevicesOverride); err != nil {
				return fmt.Errorf("display devices validation failed: %w", err)
			}
		}

		logrus.Info("Configuration is valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
