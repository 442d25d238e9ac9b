package cmd

import (
	"context"
	"fmt"

	"github.com/fiffeek/displayflip/internal/display"
	"github.com/fiffeek/displayflip/internal/policy"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	monitorIndex int
	modeWidth    int
	modeHeight   int
	modeFreq     int
	modeFlag     string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the resolution and refresh rate of one monitor",
	Long: `Set the resolution and refresh rate of the monitor with the given number as printed by list.

The mode is tested first and only committed when the display driver accepts it. Without
--frequency the current refresh rate is kept. When only --monitor is missing the monitor
is asked for and the given mode is kept. When the resolution is missing everything is
asked for interactively.`,
	Example: `  displayflip set --monitor 1 --mode 3840x2160@60
  displayflip set --monitor 2 --width 1920 --height 1080 --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := display.Mode{Width: modeWidth, Height: modeHeight, Frequency: modeFreq}
		if modeFlag != "" {
			parsed, err := display.ParseMode(modeFlag)
			if err != nil {
				return fmt.Errorf("invalid --mode: %w", err)
			}
			mode = parsed
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		application, err := newApplication(cmd, cfg)
		if err != nil {
			return err
		}

		var selector policy.Policy
		hasResolution := mode.Width != 0 && mode.Height != 0
		switch {
		case monitorIndex != 0 && hasResolution:
			selector = policy.NewExplicitPolicy(monitorIndex, mode)
		case hasResolution:
			logrus.Debug("Monitor not given, asking for it")
			selector = policy.NewPromptedMonitorPolicy(newPrompter(cmd), mode)
		default:
			logrus.Debug("Target not fully given, asking interactively")
			selector = policy.NewInteractivePolicy(newPrompter(cmd))
		}

		return withSignals(cmd.Context(), func(ctx context.Context) error {
			if _, err := application.Run(ctx, selector); err != nil {
				return fmt.Errorf("set failed: %w", err)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	addChangeFlags(setCmd)
	setCmd.Flags().IntVar(&monitorIndex, "monitor", 0, "Monitor number as printed by list (1-based)")
	setCmd.Flags().IntVar(&modeWidth, "width", 0, "Target width in pixels")
	setCmd.Flags().IntVar(&modeHeight, "height", 0, "Target height in pixels")
	setCmd.Flags().IntVar(&modeFreq, "frequency", 0, "Target refresh rate in Hz, 0 keeps the current one")
	setCmd.Flags().StringVar(&modeFlag, "mode", "", "Target mode as WIDTHxHEIGHT@FREQUENCY")
	setCmd.MarkFlagsMutuallyExclusive("mode", "width")
	setCmd.MarkFlagsMutuallyExclusive("mode", "height")
	setCmd.MarkFlagsMutuallyExclusive("mode", "frequency")
}
