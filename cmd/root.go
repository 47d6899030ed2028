package main

import (
	"github.com/spf13/cobra"
)

const (
	appName = "Pomonotify"
	appID   = "io.github.pomonotify"
)

// issueURL is offered on issue notifications. Set it at build time with
// -ldflags "-X main.issueURL=...".
var issueURL string

type appOptions struct {
	configPath string
	logLevel   string
	noTray     bool
}

func newRootCommand() *cobra.Command {
	var options appOptions

	rootCmd := &cobra.Command{
		Use:           "pomonotify",
		Short:         "Pomodoro timer with desktop notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd.Context(), options)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&options.configPath, "config", "c", "", "Settings file path")
	rootCmd.Flags().StringVar(&options.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&options.noTray, "no-tray", false, "Run without the system tray and start the timer right away")

	rootCmd.AddCommand(newAutostartCommand())

	return rootCmd
}
