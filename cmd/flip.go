package cmd

import (
	"context"
	"fmt"

	"github.com/fiffeek/displayflip/internal/policy"
	"github.com/spf13/cobra"
)

var flipCmd = &cobra.Command{
	Use:   "flip",
	Short: "Toggle the first monitor between the low and high resolution",
	Long: `Toggle the first monitor running the low resolution (1920x1080 by default) to the high
one (3840x2160 by default) or back, keeping its refresh rate.

When no monitor runs either resolution the monitor and the target mode are asked for
interactively. Both resolutions can be changed in the [toggle] section of the configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		application, err := newApplication(cmd, cfg)
		if err != nil {
			return err
		}

		selector := policy.NewFallbackPolicy(
			policy.NewTogglePolicy(
				policy.Resolution{Width: cfg.Toggle.Low.Width, Height: cfg.Toggle.Low.Height},
				policy.Resolution{Width: cfg.Toggle.High.Width, Height: cfg.Toggle.High.Height},
			),
			policy.NewInteractivePolicy(newPrompter(cmd)),
		)

		return withSignals(cmd.Context(), func(ctx context.Context) error {
			if _, err := application.Run(ctx, selector); err != nil {
				return fmt.Errorf("flip failed: %w", err)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(flipCmd)
	addChangeFlags(flipCmd)
}
