package cmd

import (
	"github.com/fiffeek/displayflip/internal/app"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List monitors attached to the desktop",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}

		_, err = app.NewApplication(backend, nil, nil, cmd.OutOrStdout(), app.Options{}).List(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
