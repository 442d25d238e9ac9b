// Package cmd provides the entry point for the displayflip application.
// It lists display devices and switches their resolution and refresh rate.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/fiffeek/displayflip/internal/config"
	"github.com/fiffeek/displayflip/internal/errs"
	"github.com/fiffeek/displayflip/internal/signal"
	"github.com/fiffeek/displayflip/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	Version    = "dev"
	Commit     = "none"
	BuildDate  = "unknown"
	BinaryName = "displayflip"
)

var (
	debug                  bool
	verbose                bool
	enableJSONLogsFormat   bool
	configPath             string
	displayDevicesOverride string
	rootCmd                = &cobra.Command{
		Use:              BinaryName,
		Short:            "Flip monitors between resolutions",
		Long:             "DisplayFlip lists the monitors attached to the desktop and switches one of them to another resolution and refresh rate, testing the mode before committing it.",
		Version:          fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		PersistentPreRun: setupLogger,
		SilenceErrors:    true,
		SilenceUsage:     true,
	}
)

func Execute() {
	cmd, _, err := rootCmd.Find(os.Args[1:])

	if err == nil && cmd.Use == rootCmd.Use && !errors.Is(cmd.Flags().Parse(os.Args[1:]), pflag.ErrHelp) &&
		!slices.Contains(os.Args[1:], "--version") && !slices.Contains(os.Args[1:], "-v") {
		args := append([]string{flipCmd.Use}, os.Args[1:]...)
		rootCmd.SetArgs(args)
	}

	err = rootCmd.Execute()
	var target *signal.Interrupted
	if errors.As(err, &target) {
		logrus.WithError(err).Info("Interrupted")
		os.Exit(target.ExitCode())
	}
	if errors.Is(err, errs.ErrUnsupportedPlatform) {
		logrus.Warn(`Changing display modes needs the Win32 display API.
On other platforms pass a device fixture with --display-devices-override to try the tool out.`)
	}
	if err != nil {
		utils.PrettyPrintError(os.Stderr, err)
		logrus.WithError(err).Fatal("Command failed")
	}
	logrus.Debug("Exiting...")
}

func setupLogger(cmd *cobra.Command, args []string) {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	if verbose {
		logrus.SetReportCaller(true)
	}

	if enableJSONLogsFormat {
		logrus.SetFormatter(&logrus.JSONFormatter{
			DisableTimestamp: false,
			TimestampFormat:  time.RFC3339Nano,
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: false,
			DisableColors:    false,
			TimestampFormat:  time.RFC3339Nano,
			FullTimestamp:    true,
			ForceQuote:       true,
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				fn := filepath.Base(f.Function)
				file := fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
				return fn, file
			},
		})
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(
		&configPath,
		"config",
		config.DefaultPath,
		"Path to configuration file",
	)
	rootCmd.PersistentFlags().BoolVar(&enableJSONLogsFormat, "enable-json-logs-format", false, "Enable structured logging")
	rootCmd.PersistentFlags().StringVar(
		&displayDevicesOverride,
		"display-devices-override",
		"",
		"Path to a JSON display device fixture used instead of the OS display API",
	)
}
